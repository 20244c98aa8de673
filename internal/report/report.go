package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Outcome classifies the result of a single zone attempt.
type Outcome string

const (
	// OutcomeCreated means the instance was created and verified.
	OutcomeCreated Outcome = "created"
	// OutcomeQuotaDenied means the API refused the request for quota or
	// permission reasons (HTTP 403).
	OutcomeQuotaDenied Outcome = "quota-denied"
	// OutcomeGPUUnavailable means the requested GPU type does not exist in
	// the zone (HTTP 400).
	OutcomeGPUUnavailable Outcome = "gpu-unavailable"
	// OutcomeZoneExhausted means the zone had no capacity (HTTP 503).
	OutcomeZoneExhausted Outcome = "zone-exhausted"
	// OutcomeConflict means an instance with the same name already exists
	// (HTTP 409).
	OutcomeConflict Outcome = "conflict"
	// OutcomeBootstrapFailed means the instance came up but driver install
	// or GPU verification failed.
	OutcomeBootstrapFailed Outcome = "bootstrap-failed"
	// OutcomeError covers everything else.
	OutcomeError Outcome = "error"
)

// ZoneResult records one zone attempt.
type ZoneResult struct {
	Zone     string        `json:"zone"`
	Instance string        `json:"instance,omitempty"`
	Outcome  Outcome       `json:"outcome"`
	IP       string        `json:"ip,omitempty"`
	Image    string        `json:"image,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`

	// DriverInfo / CUDAInfo hold the verification output for created
	// instances.
	DriverInfo string `json:"driver_info,omitempty"`
	CUDAInfo   string `json:"cuda_info,omitempty"`
}

// Report is the full record of a sweep run.
type Report struct {
	Project    string       `json:"project"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Zones      []ZoneResult `json:"zones"`
	Summary    Summary      `json:"summary"`
}

// Summary aggregates outcomes across zones.
type Summary struct {
	Attempted int             `json:"attempted"`
	Created   int             `json:"created"`
	Failed    int             `json:"failed"`
	ByOutcome map[Outcome]int `json:"by_outcome"`
}

// New creates an empty report for a project, stamped with the start time.
func New(project string) *Report {
	return &Report{
		Project:   project,
		StartedAt: time.Now().UTC(),
	}
}

// Add appends a zone result.
func (r *Report) Add(result ZoneResult) {
	r.Zones = append(r.Zones, result)
}

// Finalize stamps the finish time and computes the summary.
func (r *Report) Finalize() {
	r.FinishedAt = time.Now().UTC()

	summary := Summary{
		Attempted: len(r.Zones),
		ByOutcome: make(map[Outcome]int),
	}
	for _, z := range r.Zones {
		summary.ByOutcome[z.Outcome]++
		if z.Outcome == OutcomeCreated {
			summary.Created++
		} else {
			summary.Failed++
		}
	}
	r.Summary = summary
}

// Marshal renders the report as indented JSON.
func (r *Report) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// WriteFile writes the report JSON to the given path.
func (r *Report) WriteFile(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", path, err)
	}
	return nil
}
