package service

import "fmt"

// ClickUpService exposes the bridge's remote operations against one
// workspace. All state is request-scoped; the service itself only holds the
// client and the configured workspace ID.
type ClickUpService struct {
	Client      *Client
	WorkspaceID string
}

func NewClickUpService(token, workspaceID string) *ClickUpService {
	return &ClickUpService{
		Client:      NewClient(token),
		WorkspaceID: workspaceID,
	}
}

// NotFoundError reports that a name-based lookup matched nothing anywhere in
// the workspace.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with name '%s' not found", e.Kind, e.Name)
}

// NotImplementedError marks the name-resolution paths the product has not
// built yet (spaces, folders, tasks). Callers get an explicit failure rather
// than a silent fallback so the gap stays observable.
type NotImplementedError struct {
	Kind string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("finding %s by name is not implemented yet", e.Kind)
}
