package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Priority
	}{
		{"number", `1`, 1},
		{"numeric string", `"4"`, 4},
		{"null", `null`, 0},
		{"object with id", `{"id":"2","priority":"high"}`, 2},
		{"non-numeric string", `"high"`, 0},
		{"out of range passes through", `7`, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Priority
			require.NoError(t, json.Unmarshal([]byte(tt.in), &p))
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestTaskUnmarshal(t *testing.T) {
	raw := `{
		"id": "abc123",
		"name": "Fix login",
		"description": "Users cannot log in",
		"status": {"status": "in progress", "color": "#4194f6"},
		"priority": {"id": "1", "priority": "urgent"},
		"due_date": "1700000000000",
		"subtasks": [{"id": "sub1", "name": "Repro"}],
		"url": "https://app.clickup.com/t/abc123",
		"list": {"id": "l1", "name": "Bugs"}
	}`
	var task Task
	require.NoError(t, json.Unmarshal([]byte(raw), &task))
	assert.Equal(t, "abc123", task.ID)
	assert.Equal(t, Priority(1), task.Priority)
	assert.Equal(t, "in progress", task.Status.Status)
	assert.Equal(t, "1700000000000", task.DueDate)
	require.Len(t, task.Subtasks, 1)
	assert.Equal(t, "Repro", task.Subtasks[0].Name)
	assert.Equal(t, "Bugs", task.List.Name)
}
