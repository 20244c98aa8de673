// Package tui provides a Bubble Tea-based terminal UI for zone sweeps.
package tui

import "github.com/rahilkadakia/gcevm/internal/report"

// ZoneStartedMsg reports that a zone attempt has begun.
type ZoneStartedMsg struct {
	Zone string
}

// ZoneFinishedMsg reports the outcome of a zone attempt.
type ZoneFinishedMsg struct {
	Zone     string
	Outcome  report.Outcome
	Instance string
	Err      string
}

// LogMsg carries a log line for the activity pane.
type LogMsg struct {
	Line string
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the sweep is complete.
type DoneMsg struct {
	Report *report.Report
}
