package orchestrator

import (
	"math"

	"github.com/maastricht-university/labgrid/label"
	"github.com/maastricht-university/labgrid/textgrid"
)

func summarize(l *label.Label) *Summary {
	if len(l.Segments) == 0 {
		return nil
	}
	start, end := l.Span()
	total := 0.0
	for _, s := range l.Segments {
		total += math.Max(0, s.End-s.Start)
	}
	return &Summary{
		Segments:     len(l.Segments),
		Start:        start,
		End:          end,
		MeanDuration: total / float64(len(l.Segments)),
	}
}

func matchKeywords(entries []textgrid.Interval, keywords []string) []textgrid.Interval {
	want := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		want[k] = true
	}
	var out []textgrid.Interval
	for _, e := range entries {
		if want[e.Text] {
			out = append(out, e)
		}
	}
	return out
}
