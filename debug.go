package mesen

import (
	"fmt"
	"io"
	"os"
)

// debugWriter receives gesture trace lines. Tests swap it for a buffer.
var debugWriter io.Writer = os.Stderr

// debugf prints one gesture trace line when the machine's Debug flag is set.
// Lines record classification outcomes and commit results, which is usually
// enough to see why a gesture was interpreted the way it was.
func (g *GestureStateMachine) debugf(format string, args ...any) {
	if !g.Debug {
		return
	}
	_, _ = fmt.Fprintf(debugWriter, "[mesen] "+format+"\n", args...)
}
