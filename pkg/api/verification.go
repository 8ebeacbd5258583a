package api

import "time"

// SweepResultResponse is the per-run summary returned by the scheduled
// verification trigger. Failures are keyed by domain slug so one broken
// domain never hides the rest of the batch.
type SweepResultResponse struct {
	Checked   int               `json:"checked"`
	Verified  int               `json:"verified"`
	Failed    int               `json:"failed"`
	Failures  map[string]string `json:"failures,omitempty"`
	StartedAt time.Time         `json:"started_at"`
	Elapsed   string            `json:"elapsed"`
}
