package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"spvdecomp/internal/pipeline"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printStageTimings writes "read 0.1 ms, decode 0.4 ms, ..." for the stages
// that ran.
func printStageTimings(out io.Writer, timings pipeline.Timings) {
	if out == nil {
		return
	}
	first := true
	for _, st := range pipeline.Stages {
		if !timings.Has(st) {
			continue
		}
		if !first {
			fmt.Fprint(out, ", ")
		}
		fmt.Fprintf(out, "%s %.1f ms", st, toMillis(timings.Duration(st)))
		first = false
	}
	fmt.Fprintf(out, " (total %.1f ms)\n", toMillis(timings.Sum()))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
