// Command mesen is a touch-first image censoring tool. It opens a photo,
// lets you draw black bars or mosaic over the sensitive parts with the same
// gestures a phone app would use, and saves the flattened result.
//
// Keys:
//
//	Z / Y  undo / redo
//	X      delete the bar under the cursor
//	F      detect faces and bar the eyes (needs -cascade)
//	T      detect text and cover it (needs a Tesseract install)
//	Tab    toggle fill / mosaic output
//	S      save the censored image
//	P      save a single-page PDF next to it
//	C      copy the censored PNG to the clipboard
//	R      reset the view to fit
//	F12    capture a screenshot
package main

import (
	"flag"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/Arahabica/mesen"
	"github.com/Arahabica/mesen/facedet"
	"github.com/Arahabica/mesen/mosaic"
	"github.com/Arahabica/mesen/textdet"
)

const (
	windowW = 1024
	windowH = 768
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("mesen: ")

	imagePath := flag.String("image", "", "image to censor (png or jpeg)")
	cascade := flag.String("cascade", "", "Haar cascade XML for face detection (F key)")
	lang := flag.String("lang", "eng", "Tesseract language codes for text detection (T key)")
	block := flag.Int("block", mosaic.DefaultBlock, "mosaic cell size in pixels")
	out := flag.String("out", "", "output path (default: <image>_censored.png)")
	showFPS := flag.Bool("fps", false, "show a status readout")
	debug := flag.Bool("debug", false, "trace gesture classification to stderr")
	replayPath := flag.String("replay", "", "run a JSON gesture script and exit")
	shots := flag.String("shots", "", "directory for screenshots (default: screenshots)")
	flag.Parse()

	if *imagePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	src, err := mosaic.Open(*imagePath)
	if err != nil {
		log.Fatal(err)
	}

	outPath := *out
	if outPath == "" {
		outPath = withExt(*imagePath, "_censored.png")
	}

	app := mesen.NewApp(src, mesen.Size{W: windowW, H: windowH})
	app.SetMosaicPreview(mosaic.Pixelate(src, *block))
	app.Editor.Machine().Debug = *debug
	if *shots != "" {
		app.ScreenshotDir = *shots
	}
	if *replayPath != "" {
		data, err := os.ReadFile(*replayPath)
		if err != nil {
			log.Fatal(err)
		}
		r, err := mesen.LoadReplay(data)
		if err != nil {
			log.Fatal(err)
		}
		r.ExitWhenDone = true
		app.SetReplay(r)
	}

	t := &tool{
		app:     app,
		src:     src,
		outPath: outPath,
		cascade: *cascade,
		lang:    *lang,
		opts:    mosaic.Options{Mode: mosaic.ModeFill, Block: *block},
	}
	t.clipboardOK = clipboard.Init() == nil
	app.OnUpdate = t.handleKeys

	err = mesen.Run(app, mesen.RunConfig{
		Title:   "mesen - " + filepath.Base(*imagePath),
		Width:   windowW,
		Height:  windowH,
		ShowFPS: *showFPS,
	})
	if err != nil {
		log.Fatal(err)
	}
}

// tool holds everything the key bindings touch: the running app, the
// original pixels, and the output settings.
type tool struct {
	app         *mesen.App
	src         image.Image
	outPath     string
	cascade     string
	lang        string
	opts        mosaic.Options
	clipboardOK bool

	faces *facedet.Detector
}

func (t *tool) handleKeys(dt float64) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		t.app.Editor.Session().Undo()
	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		t.app.Editor.Session().Redo()
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		t.deleteUnderCursor()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		t.app.Editor.Reset()
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		t.toggleMode()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		t.detectFaces()
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		t.detectText()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		t.save()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		t.savePDF()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		t.copyToClipboard()
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		t.app.Screenshot("manual")
	}
}

func (t *tool) deleteUnderCursor() {
	x, y := ebiten.CursorPosition()
	p := t.app.Editor.Viewport().ToImageSpace(mesen.Point{X: float64(x), Y: float64(y)})
	s := t.app.Editor.Session()
	if i := s.HitTest(p); i >= 0 {
		s.DeleteStroke(i)
	}
}

func (t *tool) toggleMode() {
	if t.opts.Mode == mosaic.ModeFill {
		t.opts.Mode = mosaic.ModeMosaic
		log.Print("output: mosaic")
	} else {
		t.opts.Mode = mosaic.ModeFill
		log.Print("output: fill")
	}
	t.app.PreviewMosaic = t.opts.Mode == mosaic.ModeMosaic
}

func (t *tool) detectFaces() {
	if t.cascade == "" {
		log.Print("face detection needs -cascade")
		return
	}
	if t.faces == nil {
		cfg := facedet.DefaultConfig()
		cfg.CascadeFile = t.cascade
		det, err := facedet.NewDetector(cfg)
		if err != nil {
			log.Printf("face detection: %v", err)
			return
		}
		t.faces = det
	}
	faces, err := t.faces.Detect(t.src)
	if err != nil {
		log.Printf("face detection: %v", err)
		return
	}
	n := t.app.Editor.Session().AddStrokes(facedet.EyeBars(faces))
	log.Printf("faces: %d found, %d bar(s) added", len(faces), n)
}

func (t *tool) detectText() {
	cfg := textdet.DefaultConfig()
	cfg.Lang = t.lang
	regions, err := textdet.Detect(t.src, cfg)
	if err != nil {
		log.Printf("text detection: %v", err)
		return
	}
	n := t.app.Editor.Session().AddStrokes(textdet.CoverBars(regions))
	log.Printf("text: %d region(s), %d bar(s) added", len(regions), n)
}

func (t *tool) flatten() (image.Image, error) {
	return mosaic.Flatten(t.src, t.app.Editor.Session().Strokes(), t.opts)
}

func (t *tool) save() {
	img, err := t.flatten()
	if err != nil {
		log.Printf("save: %v", err)
		return
	}
	if err := mosaic.Save(t.outPath, img); err != nil {
		log.Printf("save: %v", err)
		return
	}
	log.Printf("saved %s", t.outPath)
}

func (t *tool) savePDF() {
	img, err := t.flatten()
	if err != nil {
		log.Printf("pdf: %v", err)
		return
	}
	path := withExt(t.outPath, ".pdf")
	f, err := os.Create(path)
	if err != nil {
		log.Printf("pdf: %v", err)
		return
	}
	defer f.Close()
	if err := mosaic.WritePDF(f, img); err != nil {
		log.Printf("pdf: %v", err)
		return
	}
	log.Printf("saved %s", path)
}

func (t *tool) copyToClipboard() {
	if !t.clipboardOK {
		log.Print("clipboard unavailable")
		return
	}
	img, err := t.flatten()
	if err != nil {
		log.Printf("clipboard: %v", err)
		return
	}
	data, err := mosaic.EncodePNG(img)
	if err != nil {
		log.Printf("clipboard: %v", err)
		return
	}
	clipboard.Write(clipboard.FmtImage, data)
	log.Print("copied censored image to clipboard")
}

// withExt replaces the extension of path with ext, which may carry a suffix
// before the dot, e.g. "_censored.png".
func withExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
