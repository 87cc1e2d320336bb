package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roksva123/go-clickup-bridge/internal/model"
)

func findCommand(t *testing.T, commands []CommandDefinition, name string) CommandDefinition {
	t.Helper()
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not in schema", name)
	return CommandDefinition{}
}

func subcommandNames(cmd CommandDefinition) []string {
	names := make([]string, len(cmd.Options))
	for i, opt := range cmd.Options {
		names[i] = opt.Name
	}
	return names
}

func TestCommandsSurface(t *testing.T) {
	commands := Commands()
	require.Len(t, commands, 5)

	assert.Equal(t, []string{"hierarchy"}, subcommandNames(findCommand(t, commands, "workspace")))
	assert.Equal(t, []string{"create", "get", "update", "delete"}, subcommandNames(findCommand(t, commands, "task")))
	assert.Equal(t, []string{"get", "tasks", "create"}, subcommandNames(findCommand(t, commands, "list")))
	assert.Equal(t, []string{"list", "create", "add", "remove"}, subcommandNames(findCommand(t, commands, "tag")))
	assert.Equal(t, []string{"tags", "status"}, subcommandNames(findCommand(t, commands, "search")))
}

func TestCommandsPriorityChoices(t *testing.T) {
	task := findCommand(t, Commands(), "task")
	create := task.Options[0]
	require.Equal(t, "create", create.Name)

	var priority *OptionDefinition
	for i := range create.Options {
		if create.Options[i].Name == "priority" {
			priority = &create.Options[i]
		}
	}
	require.NotNil(t, priority)
	assert.Equal(t, model.OptionInteger, priority.Type)
	assert.Equal(t, []Choice{
		{Name: "Urgent", Value: 1},
		{Name: "High", Value: 2},
		{Name: "Normal", Value: 3},
		{Name: "Low", Value: 4},
	}, priority.Choices)
}

func TestCommandsRequiredOptions(t *testing.T) {
	task := findCommand(t, Commands(), "task")
	create := task.Options[0]

	required := map[string]bool{}
	for _, opt := range create.Options {
		required[opt.Name] = opt.Required
	}
	assert.True(t, required["list"])
	assert.True(t, required["name"])
	assert.False(t, required["description"])
	assert.False(t, required["priority"])
	assert.False(t, required["due_date"])
}

func TestCommandsSchemaSerializes(t *testing.T) {
	payload, err := json.Marshal(Commands())
	require.NoError(t, err)

	// Unset fields must not leak into the registration payload.
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	workspace := decoded[0]
	sub := workspace["options"].([]any)[0].(map[string]any)
	assert.NotContains(t, sub, "required")
	assert.NotContains(t, sub, "choices")
	assert.EqualValues(t, model.OptionSubCommand, sub["type"])
}
