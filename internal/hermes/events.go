package hermes

import "time"

type DatasetCreatedEvent struct {
	DatasetID string   `json:"dataset_id"`
	Name      string   `json:"name"`
	Labels    []string `json:"labels,omitempty"`
	Items     int      `json:"items"`
}

type DatasetDeletedEvent struct {
	DatasetID string `json:"dataset_id"`
}

// RunRequestEvent asks the service to queue a run. Zero values fall back to
// the configured filter defaults.
type RunRequestEvent struct {
	DatasetID       string `json:"dataset_id"`
	Mode            string `json:"mode,omitempty"`
	ReferenceIndex  *int   `json:"reference_index,omitempty"`
	Smoothness      int    `json:"smoothness,omitempty"`
	TieBreak        string `json:"tie_break,omitempty"`
	StrictDominance *bool  `json:"strict_dominance,omitempty"`
}

type RunRequestedEvent struct {
	RunID     string `json:"run_id"`
	DatasetID string `json:"dataset_id"`
	Mode      string `json:"mode"`
}

type RunCompletedEvent struct {
	RunID      string   `json:"run_id"`
	DatasetID  string   `json:"dataset_id"`
	Mode       string   `json:"mode"`
	Front      []string `json:"front"`
	Items      int      `json:"items"`
	DurationMs int64    `json:"duration_ms"`
}

type RunFailedEvent struct {
	RunID     string `json:"run_id"`
	DatasetID string `json:"dataset_id"`
	Error     string `json:"error"`
}

type StatsEvent struct {
	Datasets  int       `json:"datasets"`
	Pending   int       `json:"pending"`
	Completed int       `json:"completed"`
	Failed    int       `json:"failed"`
	AvgMs     float64   `json:"avg_duration_ms"`
	Timestamp time.Time `json:"timestamp"`
}
