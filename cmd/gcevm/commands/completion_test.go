package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	cmd := Completion()

	require.NotNil(t, cmd)
	assert.Equal(t, "completion [bash|zsh|fish|powershell]", cmd.Use)
	assert.Equal(t, "Generate shell completion scripts", cmd.Short)
	assert.Contains(t, cmd.Long, "Generate shell completion scripts")
}

func TestCompletion_ValidArgs(t *testing.T) {
	cmd := Completion()
	assert.Equal(t, []string{"bash", "zsh", "fish", "powershell"}, cmd.ValidArgs)
	assert.True(t, cmd.DisableFlagsInUseLine)
	assert.NotNil(t, cmd.Args)
	assert.NotNil(t, cmd.RunE)
}
