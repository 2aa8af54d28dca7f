package mesen

import (
	"encoding/json"
	"fmt"
)

// replayStep represents a single action in a replay script.
type replayStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	FromDist float64 `json:"fromDist,omitempty"`
	ToDist   float64 `json:"toDist,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// replayScript is the top-level JSON structure for a replay script.
type replayScript struct {
	Steps []replayStep `json:"steps"`
}

// Replay sequences injected gestures and screenshots across frames for
// automated visual testing. Attach to an App via SetReplay.
//
// Supported actions: "tap", "drag", "hold", "release", "pinch", "wait" and
// "screenshot". A hold step presses without releasing, so a following drag
// or release step continues the same gesture.
type Replay struct {
	// ExitWhenDone makes App.Update return ebiten.Termination once the
	// script has finished and any queued screenshots have been written.
	ExitWhenDone bool

	steps     []replayStep
	cursor    int
	waitCount int
	done      bool
}

// LoadReplay parses a JSON replay script and returns a Replay ready to be
// attached to an App via SetReplay.
func LoadReplay(jsonData []byte) (*Replay, error) {
	var script replayScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse replay script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse replay script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tap", "drag", "hold", "release", "pinch", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse replay script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Replay{steps: script.Steps}, nil
}

// SetReplay attaches a replay script to the app. The replay's step method is
// called from App.Update before input polling each frame.
func (a *App) SetReplay(r *Replay) {
	a.replay = r
}

// Done reports whether all steps in the replay script have been executed.
func (r *Replay) Done() bool {
	return r.done
}

// step advances the replay by one frame. Called from App.Update.
func (r *Replay) step(app *App) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if app.Input.InjectPending() {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		app.Screenshot(st.Label)
	case "tap":
		app.Input.InjectTap(st.X, st.Y)
	case "drag":
		app.Input.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "hold":
		app.Input.InjectHold(st.X, st.Y, st.Frames)
	case "release":
		app.Input.InjectRelease()
	case "pinch":
		app.Input.InjectPinch(st.X, st.Y, st.FromDist, st.ToDist, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	// A final step that queued nothing finishes the script this frame.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && !app.Input.InjectPending() {
		r.done = true
	}
}
