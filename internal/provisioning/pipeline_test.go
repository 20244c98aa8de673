package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahilkadakia/gcevm/internal/config"
	"github.com/rahilkadakia/gcevm/internal/platform/gce"
)

// stubPhase records provisioning calls and optionally fails.
type stubPhase struct {
	name   string
	err    error
	called *[]string
}

func (p *stubPhase) Name() string { return p.name }

func (p *stubPhase) Provision(_ *Context) error {
	*p.called = append(*p.called, p.name)
	return p.err
}

func pipelineContext() *Context {
	ctx := NewContext(context.Background(), &config.Config{}, gce.NewMockClient(), nil)
	ctx.Observer = NewMockObserver()
	return ctx
}

// phaseEvents filters the mock's events down to phase transitions.
func phaseEvents(m *MockObserver) []Event {
	var out []Event
	for _, e := range m.events {
		switch e.Type {
		case EventPhaseStarted, EventPhaseCompleted, EventPhaseFailed:
			out = append(out, e)
		}
	}
	return out
}

func TestRunPhases_Sequential(t *testing.T) {
	var called []string
	phases := []Phase{
		&stubPhase{name: "instance", called: &called},
		&stubPhase{name: "bootstrap", called: &called},
	}

	ctx := pipelineContext()
	err := RunPhases(ctx, phases)
	require.NoError(t, err)
	assert.Equal(t, []string{"instance", "bootstrap"}, called)

	events := phaseEvents(ctx.Observer.(*MockObserver))
	require.Len(t, events, 4)
	assert.Equal(t, EventPhaseStarted, events[0].Type)
	assert.Equal(t, "instance", events[0].Phase)
	assert.Equal(t, EventPhaseCompleted, events[1].Type)
	assert.Equal(t, EventPhaseStarted, events[2].Type)
	assert.Equal(t, "bootstrap", events[2].Phase)
	assert.Equal(t, EventPhaseCompleted, events[3].Type)
}

func TestRunPhases_StopsOnFailure(t *testing.T) {
	var called []string
	phases := []Phase{
		&stubPhase{name: "instance", err: errors.New("zone exhausted"), called: &called},
		&stubPhase{name: "bootstrap", called: &called},
	}

	ctx := pipelineContext()
	err := RunPhases(ctx, phases)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instance phase failed")
	assert.Contains(t, err.Error(), "zone exhausted")
	assert.Equal(t, []string{"instance"}, called)

	events := phaseEvents(ctx.Observer.(*MockObserver))
	require.Len(t, events, 2)
	assert.Equal(t, EventPhaseStarted, events[0].Type)
	assert.Equal(t, EventPhaseFailed, events[1].Type)
	assert.Contains(t, events[1].Message, "zone exhausted")
}

func TestRunPhases_Empty(t *testing.T) {
	assert.NoError(t, RunPhases(pipelineContext(), nil))
}
