package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHierarchy serves a small two-space workspace:
//
//	s1: lists [Backlog, Chores], folder f1 "Projects" with lists [Backlog, Roadmap]
//	s2: lists [Inbox], no folders
//
// The duplicate "Backlog" (space list l1 vs folder list l3) pins down the
// resolution order.
func fakeHierarchy(t *testing.T) (*ClickUpService, *requestLog) {
	t.Helper()
	log := &requestLog{}
	mux := http.NewServeMux()
	serve := func(path string, payload any) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			log.record(r.URL.Path)
			json.NewEncoder(w).Encode(payload)
		})
	}
	serve("/team/ws1/space", map[string]any{"spaces": []map[string]any{
		{"id": "s1", "name": "Engineering"},
		{"id": "s2", "name": "Ops"},
	}})
	serve("/space/s1/list", map[string]any{"lists": []map[string]any{
		{"id": "l1", "name": "Backlog"},
		{"id": "l2", "name": "Chores"},
	}})
	serve("/space/s1/folder", map[string]any{"folders": []map[string]any{
		{"id": "f1", "name": "Projects"},
	}})
	serve("/folder/f1/list", map[string]any{"lists": []map[string]any{
		{"id": "l3", "name": "Backlog"},
		{"id": "l4", "name": "Roadmap"},
	}})
	serve("/space/s2/list", map[string]any{"lists": []map[string]any{
		{"id": "l5", "name": "Inbox"},
	}})
	serve("/space/s2/folder", map[string]any{"folders": []map[string]any{}})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	svc := NewClickUpService("test-token", "ws1")
	svc.Client.BaseURL = srv.URL
	return svc, log
}

type requestLog struct {
	mu    sync.Mutex
	paths []string
}

func (l *requestLog) record(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paths = append(l.paths, path)
}

func (l *requestLog) count(path string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, p := range l.paths {
		if p == path {
			n++
		}
	}
	return n
}

func TestFindListByNamePrefersSpaceLists(t *testing.T) {
	svc, log := fakeHierarchy(t)

	list, err := svc.FindListByName(context.Background(), "ws1", "Backlog")
	require.NoError(t, err)
	assert.Equal(t, "l1", list.ID)
	// The space-list match returns before any folder is walked.
	assert.Zero(t, log.count("/space/s1/folder"))
}

func TestFindListByNameCaseInsensitive(t *testing.T) {
	svc, _ := fakeHierarchy(t)

	list, err := svc.FindListByName(context.Background(), "ws1", "roadmap")
	require.NoError(t, err)
	assert.Equal(t, "l4", list.ID)
}

func TestFindListByNameSecondSpace(t *testing.T) {
	svc, _ := fakeHierarchy(t)

	list, err := svc.FindListByName(context.Background(), "ws1", "Inbox")
	require.NoError(t, err)
	assert.Equal(t, "l5", list.ID)
}

func TestFindListByNameNotFound(t *testing.T) {
	svc, _ := fakeHierarchy(t)

	_, err := svc.FindListByName(context.Background(), "ws1", "Nonexistent")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "list", notFound.Kind)
	assert.EqualError(t, err, "list with name 'Nonexistent' not found")
}

func TestGetListByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list/l9", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"id": "l9", "name": "Bugs"})
	}))
	defer srv.Close()

	svc := NewClickUpService("test-token", "ws1")
	svc.Client.BaseURL = srv.URL

	list, err := svc.GetList(context.Background(), GetListParams{ListID: "l9"})
	require.NoError(t, err)
	assert.Equal(t, "Bugs", list.Name)
}

func TestGetListByNameRequiresWorkspace(t *testing.T) {
	svc := NewClickUpService("test-token", "ws1")
	_, err := svc.GetList(context.Background(), GetListParams{ListName: "Bugs"})
	assert.EqualError(t, err, "workspaceId is required when using listName")
}

func TestGetListRequiresIdentifier(t *testing.T) {
	svc := NewClickUpService("test-token", "ws1")
	_, err := svc.GetList(context.Background(), GetListParams{})
	assert.EqualError(t, err, "either listId or listName is required")
}

func TestCreateListBySpaceNameNotImplemented(t *testing.T) {
	svc := NewClickUpService("test-token", "ws1")
	_, err := svc.CreateList(context.Background(), CreateListParams{SpaceName: "Engineering", Name: "New"})
	var ni *NotImplementedError
	require.ErrorAs(t, err, &ni)
	assert.EqualError(t, err, "finding space by name is not implemented yet")
}

func TestCreateListSendsOnlySuppliedFields(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/space/s1/list", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{"id": "l10", "name": "Sprint 12"})
	}))
	defer srv.Close()

	svc := NewClickUpService("test-token", "ws1")
	svc.Client.BaseURL = srv.URL

	list, err := svc.CreateList(context.Background(), CreateListParams{
		SpaceID: "s1",
		Name:    "Sprint 12",
		Content: "two weeks",
	})
	require.NoError(t, err)
	assert.Equal(t, "l10", list.ID)
	assert.Equal(t, map[string]any{"name": "Sprint 12", "content": "two weeks"}, body)
}

func TestUpdateListByNameNotImplemented(t *testing.T) {
	svc := NewClickUpService("test-token", "ws1")
	_, err := svc.UpdateList(context.Background(), UpdateListParams{ListName: "Bugs", Name: "Defects"})
	var ni *NotImplementedError
	assert.ErrorAs(t, err, &ni)
}

func TestDeleteListByNameNotImplemented(t *testing.T) {
	svc := NewClickUpService("test-token", "ws1")
	err := svc.DeleteList(context.Background(), DeleteListParams{ListName: "Bugs"})
	var ni *NotImplementedError
	require.ErrorAs(t, err, &ni)
	assert.Equal(t, "list", ni.Kind)
}

func TestWorkspaceHierarchy(t *testing.T) {
	svc, _ := fakeHierarchy(t)

	ws, err := svc.WorkspaceHierarchy(context.Background(), "ws1")
	require.NoError(t, err)
	assert.Equal(t, "ws1", ws.ID)
	assert.Equal(t, "ClickUp Workspace", ws.Name)
	require.Len(t, ws.Spaces, 2)

	eng := ws.Spaces[0]
	assert.Equal(t, "Engineering", eng.Name)
	require.Len(t, eng.Folders, 1)
	assert.Equal(t, "Projects", eng.Folders[0].Name)
	require.Len(t, eng.Folders[0].Lists, 2)
	assert.Equal(t, "Roadmap", eng.Folders[0].Lists[1].Name)
	require.Len(t, eng.Lists, 2)

	ops := ws.Spaces[1]
	assert.Empty(t, ops.Folders)
	require.Len(t, ops.Lists, 1)
	assert.Equal(t, "Inbox", ops.Lists[0].Name)
}
