package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	cmd := NewRootCommand()

	names := []string{}
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate"}, names)
	assert.NotNil(t, cmd.RunE)
}

func TestMigrateRejectsUnknownDirection(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"migrate", "sideways"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")
}

func TestMigrateRequiresDirection(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"migrate"})

	assert.Error(t, cmd.Execute())
}
