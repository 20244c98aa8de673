package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rahilkadakia/gcevm/internal/provisioning"
	"github.com/rahilkadakia/gcevm/internal/report"
)

// sender is the message sink, satisfied by *tea.Program.
type sender interface {
	Send(msg tea.Msg)
}

// ProgramObserver translates provisioning events into Bubble Tea messages
// so the sweep can drive the dashboard.
type ProgramObserver struct {
	program sender
	fields  map[string]string
}

// NewProgramObserver wraps a running program.
func NewProgramObserver(program sender) *ProgramObserver {
	return &ProgramObserver{
		program: program,
		fields:  make(map[string]string),
	}
}

// Printf implements the provisioning.Logger interface.
func (o *ProgramObserver) Printf(format string, v ...interface{}) {
	o.program.Send(LogMsg{Line: fmt.Sprintf(format, v...)})
}

// Event implements the provisioning.Observer interface.
func (o *ProgramObserver) Event(event provisioning.Event) {
	zone := event.Fields["zone"]
	if zone == "" {
		zone = o.fields["zone"]
	}

	switch event.Type {
	case provisioning.EventZoneStarted:
		o.program.Send(ZoneStartedMsg{Zone: zone})
	case provisioning.EventZoneCompleted:
		o.program.Send(ZoneFinishedMsg{
			Zone:     zone,
			Outcome:  report.Outcome(event.Fields["outcome"]),
			Instance: event.Resource,
		})
	default:
		o.program.Send(LogMsg{Line: event.Message})
	}
}

// Progress implements the provisioning.Observer interface.
func (o *ProgramObserver) Progress(phase string, current, total int) {
	o.program.Send(LogMsg{Line: fmt.Sprintf("[%s] %d/%d", phase, current, total)})
}

// WithFields implements the provisioning.Observer interface.
func (o *ProgramObserver) WithFields(fields map[string]string) provisioning.Observer {
	newFields := make(map[string]string)
	for k, v := range o.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}
	return &ProgramObserver{
		program: o.program,
		fields:  newFields,
	}
}
