package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/roksva123/go-clickup-bridge/internal/model"
)

// CommandDefinition is one top-level slash command in the registration
// schema.
type CommandDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Options     []OptionDefinition `json:"options,omitempty"`
}

// OptionDefinition is a typed option or sub-command in the registration
// schema.
type OptionDefinition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Type        int                `json:"type"`
	Required    bool               `json:"required,omitempty"`
	Choices     []Choice           `json:"choices,omitempty"`
	Options     []OptionDefinition `json:"options,omitempty"`
}

// Choice is a named enumeration value for an option.
type Choice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

var priorityChoices = []Choice{
	{Name: "Urgent", Value: 1},
	{Name: "High", Value: 2},
	{Name: "Normal", Value: 3},
	{Name: "Low", Value: 4},
}

// Commands returns the full slash-command schema as static data. The command
// surface, option names, types and choice values are a fixed contract with
// the registered Discord application.
func Commands() []CommandDefinition {
	return []CommandDefinition{
		{
			Name:        "workspace",
			Description: "Get ClickUp workspace information",
			Options: []OptionDefinition{
				{Name: "hierarchy", Description: "Get the workspace hierarchy", Type: model.OptionSubCommand},
			},
		},
		{
			Name:        "task",
			Description: "Manage ClickUp tasks",
			Options: []OptionDefinition{
				{
					Name: "create", Description: "Create a new task", Type: model.OptionSubCommand,
					Options: []OptionDefinition{
						{Name: "list", Description: "The list to create the task in", Type: model.OptionString, Required: true},
						{Name: "name", Description: "The name of the task", Type: model.OptionString, Required: true},
						{Name: "description", Description: "The description of the task", Type: model.OptionString},
						{Name: "priority", Description: "The priority of the task (1-4)", Type: model.OptionInteger, Choices: priorityChoices},
						{Name: "due_date", Description: "The due date of the task (natural language, e.g., \"tomorrow at 5pm\")", Type: model.OptionString},
					},
				},
				{
					Name: "get", Description: "Get task details", Type: model.OptionSubCommand,
					Options: []OptionDefinition{
						{Name: "task", Description: "The name or ID of the task", Type: model.OptionString, Required: true},
						{Name: "list", Description: "The list containing the task (for disambiguation)", Type: model.OptionString},
					},
				},
				{
					Name: "update", Description: "Update a task", Type: model.OptionSubCommand,
					Options: []OptionDefinition{
						{Name: "task", Description: "The name or ID of the task", Type: model.OptionString, Required: true},
						{Name: "name", Description: "The new name of the task", Type: model.OptionString},
						{Name: "description", Description: "The new description of the task", Type: model.OptionString},
						{Name: "status", Description: "The new status of the task", Type: model.OptionString},
						{Name: "priority", Description: "The new priority of the task (1-4)", Type: model.OptionInteger, Choices: priorityChoices},
						{Name: "due_date", Description: "The new due date of the task (natural language)", Type: model.OptionString},
					},
				},
				{
					Name: "delete", Description: "Delete a task", Type: model.OptionSubCommand,
					Options: []OptionDefinition{
						{Name: "task", Description: "The name or ID of the task", Type: model.OptionString, Required: true},
						{Name: "list", Description: "The list containing the task (for disambiguation)", Type: model.OptionString},
					},
				},
			},
		},
		{
			Name:        "list",
			Description: "Manage ClickUp lists",
			Options: []OptionDefinition{
				{
					Name: "get", Description: "Get list details", Type: model.OptionSubCommand,
					Options: []OptionDefinition{
						{Name: "list", Description: "The name or ID of the list", Type: model.OptionString, Required: true},
					},
				},
				{
					Name: "tasks", Description: "Get tasks from a list", Type: model.OptionSubCommand,
					Options: []OptionDefinition{
						{Name: "list", Description: "The name or ID of the list", Type: model.OptionString, Required: true},
						{Name: "include_closed", Description: "Include closed tasks", Type: model.OptionBoolean},
					},
				},
				{
					Name: "create", Description: "Create a new list", Type: model.OptionSubCommand,
					Options: []OptionDefinition{
						{Name: "space", Description: "The space to create the list in", Type: model.OptionString, Required: true},
						{Name: "name", Description: "The name of the list", Type: model.OptionString, Required: true},
						{Name: "content", Description: "The description of the list", Type: model.OptionString},
					},
				},
			},
		},
		{
			Name:        "tag",
			Description: "Manage ClickUp tags",
			Options: []OptionDefinition{
				{
					Name: "list", Description: "List all tags in a space", Type: model.OptionSubCommand,
					Options: []OptionDefinition{
						{Name: "space", Description: "The name or ID of the space", Type: model.OptionString, Required: true},
					},
				},
				{
					Name: "create", Description: "Create a new tag", Type: model.OptionSubCommand,
					Options: []OptionDefinition{
						{Name: "space", Description: "The name or ID of the space", Type: model.OptionString, Required: true},
						{Name: "name", Description: "The name of the tag", Type: model.OptionString, Required: true},
						{Name: "color", Description: "The color of the tag (natural language, e.g., \"blue\")", Type: model.OptionString},
					},
				},
				{
					Name: "add", Description: "Add a tag to a task", Type: model.OptionSubCommand,
					Options: []OptionDefinition{
						{Name: "task", Description: "The name or ID of the task", Type: model.OptionString, Required: true},
						{Name: "tag", Description: "The name of the tag", Type: model.OptionString, Required: true},
						{Name: "list", Description: "The list containing the task (for disambiguation)", Type: model.OptionString},
					},
				},
				{
					Name: "remove", Description: "Remove a tag from a task", Type: model.OptionSubCommand,
					Options: []OptionDefinition{
						{Name: "task", Description: "The name or ID of the task", Type: model.OptionString, Required: true},
						{Name: "tag", Description: "The name of the tag", Type: model.OptionString, Required: true},
						{Name: "list", Description: "The list containing the task (for disambiguation)", Type: model.OptionString},
					},
				},
			},
		},
		{
			Name:        "search",
			Description: "Search for tasks across the workspace",
			Options: []OptionDefinition{
				{
					Name: "tags", Description: "Search tasks by tags", Type: model.OptionSubCommand,
					Options: []OptionDefinition{
						{Name: "tags", Description: "Comma-separated list of tags", Type: model.OptionString, Required: true},
						{Name: "include_closed", Description: "Include closed tasks", Type: model.OptionBoolean},
					},
				},
				{
					Name: "status", Description: "Search tasks by status", Type: model.OptionSubCommand,
					Options: []OptionDefinition{
						{Name: "status", Description: "The status to search for", Type: model.OptionString, Required: true},
					},
				},
			},
		},
	}
}

const discordAPIBase = "https://discord.com/api/v10"

// RegisterCommands PUTs the command schema to Discord's bulk-overwrite
// endpoint for the application and returns Discord's raw response body.
func RegisterCommands(ctx context.Context, applicationID, botToken string, commands []CommandDefinition) ([]byte, error) {
	payload, err := json.Marshal(commands)
	if err != nil {
		return nil, fmt.Errorf("encode command schema: %w", err)
	}

	url := fmt.Sprintf("%s/applications/%s/commands", discordAPIBase, applicationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bot "+botToken)

	client := &http.Client{Timeout: 20 * time.Second}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("error registering commands: %d %s", res.StatusCode, string(data))
	}
	return data, nil
}
