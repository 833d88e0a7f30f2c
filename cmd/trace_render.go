package cmd

import (
	"fmt"
	"io"

	"github.com/inference-sim/disk-sim/sim/trace"
)

// newTraceSink returns a sink that writes one line per event to w at the
// events level, and discards everything otherwise.
func newTraceSink(level trace.TraceLevel, w io.Writer) trace.Sink {
	if level != trace.TraceLevelEvents {
		return trace.Discard
	}
	return trace.SinkFunc(func(e trace.Event) {
		fmt.Fprintln(w, e.String())
	})
}
