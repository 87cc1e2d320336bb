package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenOptionsLeaves(t *testing.T) {
	options := []CommandOption{
		{Name: "list", Type: OptionString, Value: "Backlog"},
		{Name: "priority", Type: OptionInteger, Value: float64(2)},
		{Name: "include_closed", Type: OptionBoolean, Value: true},
	}

	got := FlattenOptions(options)
	assert.Equal(t, map[string]any{
		"list":           "Backlog",
		"priority":       float64(2),
		"include_closed": true,
	}, got)

	// Decoding the same flat list again yields the same mapping.
	assert.Equal(t, got, FlattenOptions(options))
}

func TestFlattenOptionsSubcommand(t *testing.T) {
	options := []CommandOption{
		{
			Name: "create",
			Type: OptionSubCommand,
			Options: []CommandOption{
				{Name: "list", Type: OptionString, Value: "Backlog"},
				{Name: "name", Type: OptionString, Value: "Ship it"},
			},
		},
	}

	got := FlattenOptions(options)
	assert.Equal(t, "create", got[SubcommandKey])
	assert.Equal(t, "Backlog", got["list"])
	assert.Equal(t, "Ship it", got["name"])
	assert.Len(t, got, 3)
}

func TestFlattenOptionsEmpty(t *testing.T) {
	assert.Empty(t, FlattenOptions(nil))
	assert.Empty(t, FlattenOptions([]CommandOption{}))
}
