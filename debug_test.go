package mesen

import (
	"bytes"
	"strings"
	"testing"
)

func captureDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := debugWriter
	debugWriter = &buf
	t.Cleanup(func() { debugWriter = old })
	return &buf
}

func TestDebugTracesPanClassification(t *testing.T) {
	buf := captureDebug(t)
	_, _, g := testRig()
	g.Debug = true

	g.Begin(one(100, 100), tAt(0))
	g.Update(one(160, 100), tAt(50))
	g.Update(one(165, 100), tAt(120))
	g.End(nil, tAt(200))

	out := buf.String()
	if !strings.Contains(out, "[mesen] classify: pan") {
		t.Fatalf("trace missing pan classification:\n%s", out)
	}
}

func TestDebugTracesDrawCycle(t *testing.T) {
	buf := captureDebug(t)
	_, _, g := testRig()
	g.Debug = true

	g.Begin(one(200, 200), tAt(0))
	g.Update(one(200, 200), tAt(120))
	g.Update(one(200, 200), tAt(1200))
	g.Update(one(280, 200), tAt(1220))
	g.End(nil, tAt(1300))

	out := buf.String()
	for _, want := range []string{
		"classify: position",
		"draw: open bar",
		"end: bar committed=true",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("trace missing %q:\n%s", want, out)
		}
	}
}

func TestDebugSilentByDefault(t *testing.T) {
	buf := captureDebug(t)
	_, _, g := testRig()

	g.Begin(one(100, 100), tAt(0))
	g.Update(one(160, 100), tAt(50))
	g.Update(one(165, 100), tAt(120))
	g.End(nil, tAt(200))

	if buf.Len() != 0 {
		t.Fatalf("unexpected trace output: %s", buf.String())
	}
}
