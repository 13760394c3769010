package orchestrator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

type PersistBundle struct {
	RunID       string    `json:"run_id"`
	Mode        string    `json:"mode"`
	GeneratedAt time.Time `json:"generated_at"`
	Report
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func persist(path, mode string, rep *Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	now := time.Now()
	bundle := PersistBundle{
		RunID:       "run_" + now.Format("20060102-150405"),
		Mode:        mode,
		GeneratedAt: now,
		Report:      *rep,
	}
	return writeJSON(path, bundle)
}
