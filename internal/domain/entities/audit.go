package entities

import "time"

// Run actions written to the run log.
const (
	RunCandidates = "candidates"
	RunIngest     = "ingest"
	RunClassify   = "classify"
	RunPrune      = "prune"
	RunImages     = "images"
	RunIndex      = "index"
)

// RunEntry is one logged pipeline step.
type RunEntry struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
