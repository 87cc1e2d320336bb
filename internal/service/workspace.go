package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/roksva123/go-clickup-bridge/internal/model"
)

// WorkspaceHierarchy walks three levels of the remote hierarchy and returns
// a freshly built tree: spaces, each space's folders with their lists, then
// the space's direct lists. Nothing is cached between requests.
func (s *ClickUpService) WorkspaceHierarchy(ctx context.Context, workspaceID string) (*model.Workspace, error) {
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

	ws := &model.Workspace{
		ID: workspaceID,
		// The spaces endpoint does not return the workspace name; a separate
		// team call would be needed for the real one.
		Name:   "ClickUp Workspace",
		Spaces: make([]model.Space, 0, len(spacesResp.Spaces)),
	}

	for _, sp := range spacesResp.Spaces {
		space := model.Space{ID: sp.ID, Name: sp.Name}

		folders, err := s.spaceFolders(ctx, sp.ID)
		if err != nil {
			return nil, FriendlyError(err)
		}
		for i := range folders {
			lists, err := s.folderLists(ctx, folders[i].ID)
			if err != nil {
				return nil, FriendlyError(err)
			}
			folders[i].Lists = lists
		}
		space.Folders = folders

		lists, err := s.spaceLists(ctx, sp.ID)
		if err != nil {
			return nil, FriendlyError(err)
		}
		space.Lists = lists

		ws.Spaces = append(ws.Spaces, space)
	}
	return ws, nil
}

func (s *ClickUpService) spaceFolders(ctx context.Context, spaceID string) ([]model.Folder, error) {
	raw, err := s.Client.Call(ctx, http.MethodGet, "/space/"+spaceID+"/folder", nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Folders []model.Folder `json:"folders"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out.Folders, nil
}

func (s *ClickUpService) spaceLists(ctx context.Context, spaceID string) ([]model.List, error) {
	raw, err := s.Client.Call(ctx, http.MethodGet, "/space/"+spaceID+"/list", nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Lists []model.List `json:"lists"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out.Lists, nil
}

func (s *ClickUpService) folderLists(ctx context.Context, folderID string) ([]model.List, error) {
	raw, err := s.Client.Call(ctx, http.MethodGet, "/folder/"+folderID+"/list", nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Lists []model.List `json:"lists"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out.Lists, nil
}
