package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/roksva123/go-clickup-bridge/internal/model"
	"github.com/roksva123/go-clickup-bridge/internal/utils"
)

// defaultCreateTimeout is how long a task creation may run before the
// dispatcher answers with a placeholder and lets the call finish detached.
// Discord expects the synchronous reply within its three-second budget.
const defaultCreateTimeout = 2000 * time.Millisecond

// Dispatcher routes a decoded interaction to the matching ClickUp operation
// and always produces a well-formed reply, whatever goes wrong underneath.
type Dispatcher struct {
	Svc           *ClickUpService
	WorkspaceID   string
	CreateTimeout time.Duration
	Background    *Registry
}

func NewDispatcher(svc *ClickUpService, workspaceID string) *Dispatcher {
	return &Dispatcher{
		Svc:           svc,
		WorkspaceID:   workspaceID,
		CreateTimeout: defaultCreateTimeout,
		Background:    NewRegistry(),
	}
}

// Dispatch handles one interaction. It never returns an error: any failure
// after decode, including a panic, becomes a textual reply.
func (d *Dispatcher) Dispatch(ctx context.Context, in *model.Interaction) (resp *model.InteractionResponse) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("interaction handler panicked", "command", in.Data.Name, "panic", r)
			resp = model.MessageResponse(fmt.Sprintf("An error occurred: %v", r))
		}
	}()

	switch in.Type {
	case model.InteractionPing:
		return model.PongResponse()
	case model.InteractionApplicationCommand:
		opts := model.FlattenOptions(in.Data.Options)
		slog.Info("handling command", "command", in.Data.Name, "subcommand", opts[model.SubcommandKey])
		switch in.Data.Name {
		case "workspace":
			return d.handleWorkspace(ctx, opts)
		case "task":
			return d.handleTask(ctx, opts)
		case "list":
			return d.handleList(ctx, opts)
		case "tag":
			return d.handleTag(ctx, opts)
		case "search":
			return d.handleSearch(ctx, opts)
		default:
			return model.MessageResponse("Unknown command: " + in.Data.Name)
		}
	default:
		return model.MessageResponse("Unsupported interaction type")
	}
}

func (d *Dispatcher) handleWorkspace(ctx context.Context, opts map[string]any) *model.InteractionResponse {
	switch optString(opts, model.SubcommandKey) {
	case "hierarchy":
		ws, err := d.Svc.WorkspaceHierarchy(ctx, d.WorkspaceID)
		if err != nil {
			return model.MessageResponse("Error fetching workspace hierarchy: " + err.Error())
		}
		tree := formatHierarchy(ws)
		if tree == "" {
			tree = "No spaces found in this workspace"
		}
		name := ws.Name
		if name == "" {
			name = "ClickUp"
		}
		return model.EmbedsResponse(FormatEmbed(name+" Workspace Hierarchy", tree))
	default:
		return model.MessageResponse("Unknown workspace subcommand: " + optString(opts, model.SubcommandKey))
	}
}

func (d *Dispatcher) handleTask(ctx context.Context, opts map[string]any) *model.InteractionResponse {
	switch optString(opts, model.SubcommandKey) {
	case "create":
		return d.handleTaskCreate(ctx, opts)

	case "get":
		task, err := d.Svc.GetTask(ctx, GetTaskParams{
			TaskName: optString(opts, "task"),
			ListName: optString(opts, "list"),
			Subtasks: true,
		})
		if err != nil {
			return model.MessageResponse("Error executing command: " + err.Error())
		}
		return model.EmbedsResponse(taskEmbed(task))

	case "update":
		p := UpdateTaskParams{
			TaskName:    optString(opts, "task"),
			Name:        optString(opts, "name"),
			Description: optString(opts, "description"),
			Status:      optString(opts, "status"),
			Priority:    optInt(opts, "priority"),
			DueDate:     optString(opts, "due_date"),
		}
		task, err := d.Svc.UpdateTask(ctx, p)
		if err != nil {
			return model.MessageResponse("Error executing command: " + err.Error())
		}
		return model.EmbedsResponse(FormatEmbed(
			"✅ Task Updated",
			fmt.Sprintf("Successfully updated task %q", task.Name),
			field("ID", task.ID),
			field("URL", orDefault(task.URL, "N/A")),
		))

	case "delete":
		name := optString(opts, "task")
		err := d.Svc.DeleteTask(ctx, DeleteTaskParams{
			TaskName: name,
			ListName: optString(opts, "list"),
		})
		if err != nil {
			return model.MessageResponse("Error executing command: " + err.Error())
		}
		return model.EmbedsResponse(FormatEmbed(
			"✅ Task Deleted",
			fmt.Sprintf("Successfully deleted task %q", name),
		))

	default:
		return model.MessageResponse("Unknown task subcommand: " + optString(opts, model.SubcommandKey))
	}
}

// handleTaskCreate races the real creation against the reply deadline.
// Whichever finishes first decides the reply; a lost race leaves the
// creation running detached in the background registry, its outcome only
// logged.
func (d *Dispatcher) handleTaskCreate(_ context.Context, opts map[string]any) *model.InteractionResponse {
	listName := optString(opts, "list")
	p := CreateTaskParams{
		ListName:    listName,
		WorkspaceID: d.WorkspaceID,
		Name:        optString(opts, "name"),
		Description: optString(opts, "description"),
		Priority:    optInt(opts, "priority"),
		DueDate:     optString(opts, "due_date"),
	}

	type result struct {
		task *model.Task
		err  error
	}
	done := make(chan result, 1)
	op := d.Background.Start(fmt.Sprintf("task.create %q", p.Name), func(ctx context.Context) error {
		task, err := d.Svc.CreateTask(ctx, p)
		done <- result{task: task, err: err}
		return err
	})

	timer := time.NewTimer(d.CreateTimeout)
	defer timer.Stop()

	var task *model.Task
	select {
	case res := <-done:
		if res.err != nil {
			return model.MessageResponse("Error creating task: " + res.err.Error())
		}
		task = res.task
	case <-timer.C:
		slog.Info("task creation still running, replying with placeholder", "op", op.ID, "task", p.Name)
		task = &model.Task{
			ID:     "pending",
			Name:   p.Name,
			Status: model.TaskStatus{Status: "Creating..."},
		}
	}

	pending := task.ID == "pending"
	verb := "successfully created in"
	description := fmt.Sprintf("Successfully created task %q", task.Name)
	id := task.ID
	if pending {
		verb = "submitted to"
		description = "Task is being created..."
		id = "Processing..."
	}
	return &model.InteractionResponse{
		Type: model.ResponseChannelMessage,
		Data: &model.ResponseData{
			Content: fmt.Sprintf("✅ Task %q has been %s ClickUp!", p.Name, verb),
			Embeds: []model.Embed{FormatEmbed(
				"✅ Task Created",
				description,
				field("ID", id),
				field("List", listName),
				field("URL", orDefault(task.URL, "Available soon")),
				field("Status", orDefault(task.Status.Status, "New")),
				field("Created At", time.Now().UTC().Format("2006-01-02 15:04:05 MST")),
			)},
		},
	}
}

func (d *Dispatcher) handleList(ctx context.Context, opts map[string]any) *model.InteractionResponse {
	switch optString(opts, model.SubcommandKey) {
	case "get":
		list, err := d.Svc.GetList(ctx, GetListParams{
			ListName:    optString(opts, "list"),
			WorkspaceID: d.WorkspaceID,
		})
		if err != nil {
			return model.MessageResponse("Error executing command: " + err.Error())
		}
		status := "None"
		if list.Status != nil && list.Status.Status != "" {
			status = list.Status.Status
		}
		return model.EmbedsResponse(FormatEmbed(
			list.Name,
			orDefault(list.Content, "No description"),
			field("ID", list.ID),
			field("Status", status),
		))

	case "tasks":
		listName := optString(opts, "list")
		includeClosed := optBool(opts, "include_closed")
		page, err := d.Svc.TasksInList(ctx, TasksInListParams{
			ListName:      listName,
			IncludeClosed: &includeClosed,
		})
		if err != nil {
			return model.MessageResponse("Error executing command: " + err.Error())
		}
		content := "No tasks found"
		if len(page.Tasks) > 0 {
			lines := make([]string, len(page.Tasks))
			for i, task := range page.Tasks {
				lines[i] = fmt.Sprintf("%d. **%s** (%s)", i+1, task.Name, orDefault(task.Status.Status, "Unknown"))
			}
			content = strings.Join(lines, "\n")
		}
		return model.EmbedsResponse(FormatEmbed(
			"Tasks in "+listName,
			content,
			field("Total", strconv.Itoa(len(page.Tasks))),
		))

	case "create":
		space := optString(opts, "space")
		list, err := d.Svc.CreateList(ctx, CreateListParams{
			SpaceName: space,
			Name:      optString(opts, "name"),
			Content:   optString(opts, "content"),
		})
		if err != nil {
			return model.MessageResponse("Error executing command: " + err.Error())
		}
		return model.EmbedsResponse(FormatEmbed(
			"✅ List Created",
			fmt.Sprintf("Successfully created list %q", list.Name),
			field("ID", list.ID),
			field("Space", space),
		))

	default:
		return model.MessageResponse("Unknown list subcommand: " + optString(opts, model.SubcommandKey))
	}
}

func (d *Dispatcher) handleTag(ctx context.Context, opts map[string]any) *model.InteractionResponse {
	switch optString(opts, model.SubcommandKey) {
	case "list":
		space := optString(opts, "space")
		tags, err := d.Svc.SpaceTags(ctx, SpaceTagParams{SpaceName: space})
		if err != nil {
			return model.MessageResponse("Error executing command: " + err.Error())
		}
		content := "No tags found"
		if len(tags) > 0 {
			lines := make([]string, len(tags))
			for i, tag := range tags {
				lines[i] = fmt.Sprintf("- **%s** (%s)", tag.Name, tag.TagBg)
			}
			content = strings.Join(lines, "\n")
		}
		return model.EmbedsResponse(FormatEmbed(
			"Tags in "+space,
			content,
			field("Total", strconv.Itoa(len(tags))),
		))

	case "create":
		space := optString(opts, "space")
		tag, err := d.Svc.CreateSpaceTag(ctx, CreateSpaceTagParams{
			SpaceName:    space,
			TagName:      optString(opts, "name"),
			ColorCommand: optString(opts, "color"),
		})
		if err != nil {
			return model.MessageResponse("Error executing command: " + err.Error())
		}
		return model.EmbedsResponse(FormatEmbed(
			"✅ Tag Created",
			fmt.Sprintf("Successfully created tag %q", tag.Name),
			field("Space", space),
			field("Color", orDefault(tag.TagBg, "Default")),
		))

	case "add":
		task := optString(opts, "task")
		tag := optString(opts, "tag")
		err := d.Svc.AddTagToTask(ctx, TaskTagParams{
			TaskName: task,
			ListName: optString(opts, "list"),
			TagName:  tag,
		})
		if err != nil {
			return model.MessageResponse("Error executing command: " + err.Error())
		}
		return model.EmbedsResponse(FormatEmbed(
			"✅ Tag Added",
			fmt.Sprintf("Successfully added tag %q to task %q", tag, task),
		))

	case "remove":
		task := optString(opts, "task")
		tag := optString(opts, "tag")
		err := d.Svc.RemoveTagFromTask(ctx, TaskTagParams{
			TaskName: task,
			ListName: optString(opts, "list"),
			TagName:  tag,
		})
		if err != nil {
			return model.MessageResponse("Error executing command: " + err.Error())
		}
		return model.EmbedsResponse(FormatEmbed(
			"✅ Tag Removed",
			fmt.Sprintf("Successfully removed tag %q from task %q", tag, task),
		))

	default:
		return model.MessageResponse("Unknown tag subcommand: " + optString(opts, model.SubcommandKey))
	}
}

func (d *Dispatcher) handleSearch(ctx context.Context, opts map[string]any) *model.InteractionResponse {
	switch optString(opts, model.SubcommandKey) {
	case "tags":
		raw := optString(opts, "tags")
		var tags []string
		for _, tag := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
		includeClosed := optBool(opts, "include_closed")
		page, err := d.Svc.SearchTasksByTags(ctx, d.WorkspaceID, SearchTasksParams{
			Tags:          tags,
			IncludeClosed: &includeClosed,
		})
		if err != nil {
			return model.MessageResponse("Error executing command: " + err.Error())
		}
		content := "No tasks found"
		if len(page.Tasks) > 0 {
			lines := make([]string, len(page.Tasks))
			for i, task := range page.Tasks {
				lines[i] = fmt.Sprintf("%d. **%s** (%s) - %s",
					i+1, task.Name, orDefault(task.Status.Status, "Unknown"), taskListName(task))
			}
			content = strings.Join(lines, "\n")
		}
		return model.EmbedsResponse(FormatEmbed(
			"Tasks with tags: "+strings.Join(tags, ", "),
			content,
			field("Total", strconv.Itoa(len(page.Tasks))),
		))

	case "status":
		status := optString(opts, "status")
		page, err := d.Svc.SearchTasksByStatus(ctx, d.WorkspaceID, SearchTasksParams{Status: status})
		if err != nil {
			return model.MessageResponse("Error executing command: " + err.Error())
		}
		content := "No tasks found"
		if len(page.Tasks) > 0 {
			lines := make([]string, len(page.Tasks))
			for i, task := range page.Tasks {
				lines[i] = fmt.Sprintf("%d. **%s** - %s", i+1, task.Name, taskListName(task))
			}
			content = strings.Join(lines, "\n")
		}
		return model.EmbedsResponse(FormatEmbed(
			"Tasks with status: "+status,
			content,
			field("Total", strconv.Itoa(len(page.Tasks))),
		))

	default:
		return model.MessageResponse("Unknown search subcommand: " + optString(opts, model.SubcommandKey))
	}
}

// taskEmbed renders a full task detail embed.
func taskEmbed(task *model.Task) model.Embed {
	status := orDefault(task.Status.Status, "Unknown")
	if task.Status.Color != "" {
		status = fmt.Sprintf("%s (%s)", status, task.Status.Color)
	}
	subtasks := "None"
	if len(task.Subtasks) > 0 {
		lines := make([]string, len(task.Subtasks))
		for i, sub := range task.Subtasks {
			lines[i] = "- " + sub.Name
		}
		subtasks = strings.Join(lines, "\n")
	}
	return FormatEmbed(
		task.Name,
		orDefault(task.Description, "No description"),
		field("ID", task.ID),
		field("Status", status),
		field("Priority", utils.PriorityLabel(int(task.Priority))),
		field("Due Date", utils.FormatMillis(task.DueDate)),
		field("Subtasks", subtasks),
		field("URL", orDefault(task.URL, "N/A")),
	)
}

// formatHierarchy renders the workspace tree as the markdown block shown in
// the hierarchy embed.
func formatHierarchy(ws *model.Workspace) string {
	blocks := make([]string, 0, len(ws.Spaces))
	for _, space := range ws.Spaces {
		lists := "No lists"
		if len(space.Lists) > 0 {
			lines := make([]string, len(space.Lists))
			for i, list := range space.Lists {
				lines[i] = "- " + list.Name
			}
			lists = strings.Join(lines, "\n")
		}

		folders := "No folders"
		if len(space.Folders) > 0 {
			lines := make([]string, len(space.Folders))
			for i, folder := range space.Folders {
				folderLists := "  - No lists"
				if len(folder.Lists) > 0 {
					inner := make([]string, len(folder.Lists))
					for j, list := range folder.Lists {
						inner[j] = "  - " + list.Name
					}
					folderLists = strings.Join(inner, "\n")
				}
				lines[i] = fmt.Sprintf("- 📁 %s\n%s", folder.Name, folderLists)
			}
			folders = strings.Join(lines, "\n")
		}

		blocks = append(blocks, fmt.Sprintf(
			"## 🌐 %s\n\n### Lists:\n%s\n\n### Folders:\n%s", space.Name, lists, folders))
	}
	return strings.Join(blocks, "\n\n")
}

func taskListName(task model.Task) string {
	if task.List != nil && task.List.Name != "" {
		return task.List.Name
	}
	return "Unknown List"
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// optString reads a flattened option as a string. Discord sends every option
// value as JSON, so numbers arrive as float64.
func optString(opts map[string]any, key string) string {
	switch v := opts[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func optInt(opts map[string]any, key string) int {
	switch v := opts[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

func optBool(opts map[string]any, key string) bool {
	v, _ := opts[key].(bool)
	return v
}
