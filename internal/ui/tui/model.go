package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rahilkadakia/gcevm/internal/report"
)

const maxLogLines = 6

// ZoneStatus is the display state of a zone row.
type ZoneStatus int

const (
	// ZonePending means the zone has not been attempted yet.
	ZonePending ZoneStatus = iota
	// ZoneActive means the zone attempt is in progress.
	ZoneActive
	// ZoneFinished means the attempt completed (any outcome).
	ZoneFinished
)

// ZoneRow is one zone in the sweep display.
type ZoneRow struct {
	Zone     string
	Status   ZoneStatus
	Outcome  report.Outcome
	Instance string
	Detail   string
}

// Model is the Bubble Tea model for the sweep dashboard.
type Model struct {
	Project string
	Rows    []ZoneRow
	Logs    []string

	Report *report.Report

	StartTime    time.Time
	SpinnerFrame int

	Width  int
	Height int
	Err    error
	Done   bool
}

// NewSweepModel creates a model for the sweep command TUI.
func NewSweepModel(project string, zones []string) Model {
	rows := make([]ZoneRow, len(zones))
	for i, zone := range zones {
		rows[i] = ZoneRow{Zone: zone, Status: ZonePending}
	}
	return Model{
		Project:   project,
		Rows:      rows,
		StartTime: time.Now(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case ZoneStartedMsg:
		m.setZoneActive(msg.Zone)

	case ZoneFinishedMsg:
		m.finishZone(msg)

	case LogMsg:
		m.Logs = append(m.Logs, msg.Line)
		if len(m.Logs) > maxLogLines {
			m.Logs = m.Logs[len(m.Logs)-maxLogLines:]
		}

	case TickMsg:
		m.SpinnerFrame++
		return m, tickCmd()

	case ErrMsg:
		m.Err = msg.Err
		return m, tea.Quit

	case DoneMsg:
		m.Done = true
		m.Report = msg.Report
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) setZoneActive(zone string) {
	for i := range m.Rows {
		if m.Rows[i].Zone == zone {
			m.Rows[i].Status = ZoneActive
			return
		}
	}
}

func (m *Model) finishZone(msg ZoneFinishedMsg) {
	for i := range m.Rows {
		if m.Rows[i].Zone == msg.Zone {
			m.Rows[i].Status = ZoneFinished
			m.Rows[i].Outcome = msg.Outcome
			m.Rows[i].Instance = msg.Instance
			m.Rows[i].Detail = msg.Err
			return
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View implements tea.Model.
func (m Model) View() string {
	return renderView(m)
}
