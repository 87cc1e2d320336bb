package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/roksva123/go-clickup-bridge/internal/model"
)

// FindListByName resolves a list name to the list object by walking the
// workspace hierarchy: each space's direct lists first, then that space's
// folders in listing order. Matching is case-insensitive exact; the first
// match wins and duplicate names are not detected.
func (s *ClickUpService) FindListByName(ctx context.Context, workspaceID, name string) (*model.List, error) {
	raw, err := s.Client.Call(ctx, http.MethodGet, "/team/"+workspaceID+"/space", nil)
	if err != nil {
		return nil, FriendlyError(err)
	}
	var spacesResp struct {
		Spaces []model.Space `json:"spaces"`
	}
	if err := json.Unmarshal(raw, &spacesResp); err != nil {
		return nil, err
	}

	for _, sp := range spacesResp.Spaces {
		lists, err := s.spaceLists(ctx, sp.ID)
		if err != nil {
			return nil, FriendlyError(err)
		}
		for i := range lists {
			if strings.EqualFold(lists[i].Name, name) {
				return &lists[i], nil
			}
		}

		folders, err := s.spaceFolders(ctx, sp.ID)
		if err != nil {
			return nil, FriendlyError(err)
		}
		for _, folder := range folders {
			folderLists, err := s.folderLists(ctx, folder.ID)
			if err != nil {
				return nil, FriendlyError(err)
			}
			for i := range folderLists {
				if strings.EqualFold(folderLists[i].Name, name) {
					return &folderLists[i], nil
				}
			}
		}
	}
	return nil, &NotFoundError{Kind: "list", Name: name}
}

type GetListParams struct {
	ListID      string
	ListName    string
	WorkspaceID string
}

// GetList fetches a list by ID, or resolves it by name within the given
// workspace.
func (s *ClickUpService) GetList(ctx context.Context, p GetListParams) (*model.List, error) {
	if p.ListID != "" {
		raw, err := s.Client.Call(ctx, http.MethodGet, "/list/"+p.ListID, nil)
		if err != nil {
			return nil, FriendlyError(err)
		}
		var list model.List
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return &list, nil
	}
	if p.ListName != "" {
		if p.WorkspaceID == "" {
			return nil, errors.New("workspaceId is required when using listName")
		}
		return s.FindListByName(ctx, p.WorkspaceID, p.ListName)
	}
	return nil, errors.New("either listId or listName is required")
}

type CreateListParams struct {
	SpaceID   string
	SpaceName string
	Name      string
	Content   string
	DueDate   int64
	Priority  int
	Assignee  string
	Status    string
}

// CreateList creates a list directly in a space. Resolving the space by name
// is not implemented; callers must supply the space ID.
func (s *ClickUpService) CreateList(ctx context.Context, p CreateListParams) (*model.List, error) {
	spaceID := p.SpaceID
	if spaceID == "" && p.SpaceName != "" {
		return nil, &NotImplementedError{Kind: "space"}
	}
	if spaceID == "" {
		return nil, errors.New("either spaceId or spaceName is required")
	}

	body := map[string]any{"name": p.Name}
	if p.Content != "" {
		body["content"] = p.Content
	}
	if p.DueDate != 0 {
		body["due_date"] = p.DueDate
	}
	if p.Priority != 0 {
		body["priority"] = p.Priority
	}
	if p.Assignee != "" {
		body["assignee"] = p.Assignee
	}
	if p.Status != "" {
		body["status"] = p.Status
	}

	raw, err := s.Client.Call(ctx, http.MethodPost, "/space/"+spaceID+"/list", body)
	if err != nil {
		return nil, FriendlyError(err)
	}
	var list model.List
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

type CreateListInFolderParams struct {
	FolderID   string
	FolderName string
	Name       string
	Content    string
	Status     string
}

// CreateListInFolder creates a list inside a folder. Resolving the folder by
// name is not implemented; callers must supply the folder ID.
func (s *ClickUpService) CreateListInFolder(ctx context.Context, p CreateListInFolderParams) (*model.List, error) {
	folderID := p.FolderID
	if folderID == "" && p.FolderName != "" {
		return nil, &NotImplementedError{Kind: "folder"}
	}
	if folderID == "" {
		return nil, errors.New("either folderId or folderName is required")
	}

	body := map[string]any{"name": p.Name}
	if p.Content != "" {
		body["content"] = p.Content
	}
	if p.Status != "" {
		body["status"] = p.Status
	}

	raw, err := s.Client.Call(ctx, http.MethodPost, "/folder/"+folderID+"/list", body)
	if err != nil {
		return nil, FriendlyError(err)
	}
	var list model.List
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

type UpdateListParams struct {
	ListID   string
	ListName string
	Name     string
	Content  string
	Status   string
}

// UpdateList updates a list by ID. Resolving the list by name here is not
// implemented.
func (s *ClickUpService) UpdateList(ctx context.Context, p UpdateListParams) (*model.List, error) {
	listID := p.ListID
	if listID == "" && p.ListName != "" {
		return nil, &NotImplementedError{Kind: "list"}
	}
	if listID == "" {
		return nil, errors.New("either listId or listName is required")
	}

	body := map[string]any{}
	if p.Name != "" {
		body["name"] = p.Name
	}
	if p.Content != "" {
		body["content"] = p.Content
	}
	if p.Status != "" {
		body["status"] = p.Status
	}

	raw, err := s.Client.Call(ctx, http.MethodPut, "/list/"+listID, body)
	if err != nil {
		return nil, FriendlyError(err)
	}
	var list model.List
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

type DeleteListParams struct {
	ListID   string
	ListName string
}

// DeleteList deletes a list by ID. Resolving the list by name here is not
// implemented.
func (s *ClickUpService) DeleteList(ctx context.Context, p DeleteListParams) error {
	listID := p.ListID
	if listID == "" && p.ListName != "" {
		return &NotImplementedError{Kind: "list"}
	}
	if listID == "" {
		return errors.New("either listId or listName is required")
	}
	_, err := s.Client.Call(ctx, http.MethodDelete, "/list/"+listID, nil)
	return FriendlyError(err)
}
