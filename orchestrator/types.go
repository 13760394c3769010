package orchestrator

import "errors"

var (
	ErrNoSourceTier = errors.New("source tier not found")
	ErrNoKeywords   = errors.New("no keywords found")
)

// FileResult describes one written output.
type FileResult struct {
	Input   string   `json:"input"`
	Output  string   `json:"output"`
	Summary *Summary `json:"summary,omitempty"`
}

// Summary of the segments written for one label file.
type Summary struct {
	Segments     int     `json:"segments"`
	Start        float64 `json:"start"` // sec
	End          float64 `json:"end"`   // sec
	MeanDuration float64 `json:"mean_duration"`
}

type Skip struct {
	Input  string `json:"input"`
	Reason string `json:"reason"`
	Err    error  `json:"-"`
}

type Report struct {
	Processed []FileResult `json:"processed"`
	Skipped   []Skip       `json:"skipped"`
}
