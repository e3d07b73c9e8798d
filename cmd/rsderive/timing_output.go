package main

import (
	"fmt"
	"io"
	"time"

	"rsderive/internal/pipeline"
)

func printStageTimings(out io.Writer, timings pipeline.Timings) error {
	if out == nil {
		return nil
	}
	for _, st := range []struct {
		stage pipeline.Stage
		label string
	}{
		{pipeline.StageLoad, "loaded"},
		{pipeline.StageParse, "parsed"},
		{pipeline.StageExpand, "expanded"},
		{pipeline.StageWrite, "written"},
	} {
		if !timings.Has(st.stage) {
			continue
		}
		if _, err := fmt.Fprintf(out, "%s %.1f ms\n", st.label, toMillis(timings.Duration(st.stage))); err != nil {
			return err
		}
	}
	return nil
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
