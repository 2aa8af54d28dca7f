// Package mesen is a touch-first image censoring editor core for
// [Ebitengine].
//
// Mesen turns a raw pointer/touch stream into censoring-bar edits on an
// image: one continuous gesture decides, through timed dwell states, whether
// the user is panning the view, aiming with a magnified loupe, drawing a new
// bar, or moving an existing one, while pinch, wheel, and double-tap zoom
// keep the screen-to-image mapping consistent throughout.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	img, _ := mosaic.Open("photo.jpg")
//	app := mesen.NewApp(img, mesen.Size{W: 1024, H: 768})
//	mesen.Run(app, mesen.RunConfig{
//		Title: "mesen", Width: 1024, Height: 768,
//	})
//
// For full control, implement [ebiten.Game] yourself: poll input through an
// [InputAdapter], advance the editor with [Editor.Step], and render from
// [DrawingSession.Strokes], [ViewportTransform], and [Editor.Loupe].
//
// # Components
//
// [ViewportTransform] owns the affine mapping between screen and image
// pixels: fit-to-container, exclusive-drag panning, zoom about a point,
// wheel zoom, and eased animated transitions (via [gween]).
//
// [DrawingSession] owns the committed strokes, the in-progress stroke, hit
// testing, thickness cycling, and a full-snapshot undo history.
//
// [GestureStateMachine] disambiguates the contact stream: a ~100ms dwell
// classifies a press into panning, stroke-moving, or positioning; a ~1s
// stationary dwell turns positioning into drawing; two fingers pinch or pan;
// quick releases become taps and double-taps.
//
// [Editor] bundles the three, routes input around transform animations, and
// derives [LoupeState] for rendering. [PlaceLoupe] picks which side of the
// finger the magnifier goes on.
//
// All stroke geometry lives in image space, so bars survive any amount of
// panning and zooming unchanged, and can be flattened onto the source pixels
// by the mosaic package for export.
//
// # Scripting and diagnostics
//
// [InputAdapter.InjectFrame] and its helpers queue synthetic contacts that
// replace real input one frame at a time, and [Replay] sequences whole
// gesture scripts from JSON, so interactions can be reproduced without a
// touchscreen. [App.Screenshot] captures labeled frames, and the machine's
// Debug flag traces every classification decision to stderr.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package mesen
