package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Workspace is the root of the ClickUp containment hierarchy. It is rebuilt
// from the remote API on every hierarchy request and never cached.
type Workspace struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Spaces []Space `json:"spaces"`
}

type Space struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Lists   []List   `json:"lists"`
	Folders []Folder `json:"folders"`
}

type Folder struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	OverrideStatuses bool   `json:"override_statuses"`
	Hidden           bool   `json:"hidden"`
	Lists            []List `json:"lists"`
}

type List struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Content string      `json:"content"`
	Status  *ListStatus `json:"status,omitempty"`
}

type ListStatus struct {
	Status string `json:"status"`
	Color  string `json:"color"`
}

type Task struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     string     `json:"due_date"`
	StartDate   string     `json:"start_date"`
	Subtasks    []Task     `json:"subtasks"`
	URL         string     `json:"url"`
	List        *ListRef   `json:"list,omitempty"`
}

// ListRef is the shallow list reference embedded in task payloads.
type ListRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TaskStatus struct {
	Status string `json:"status"`
	Color  string `json:"color"`
}

// TaskPage is one page of a task listing or search response.
type TaskPage struct {
	Tasks []Task `json:"tasks"`
}

type Tag struct {
	Name    string `json:"name"`
	TagFg   string `json:"tag_fg"`
	TagBg   string `json:"tag_bg"`
	Creator int    `json:"creator"`
}

// Priority is ClickUp's 1-4 task priority ordinal (1=Urgent, 2=High,
// 3=Normal, 4=Low). The remote API returns it as a number, a numeric string,
// null, or an object carrying a numeric id; all collapse to the ordinal.
// Values outside 1-4 are passed through unvalidated.
type Priority int

func (p *Priority) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*p = 0
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*p = Priority(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		if v, err := strconv.Atoi(str); err == nil {
			*p = Priority(v)
		} else {
			*p = 0
		}
		return nil
	}
	var obj struct {
		ID       string `json:"id"`
		Priority string `json:"priority"`
	}
	if err := json.Unmarshal(b, &obj); err == nil {
		if v, err := strconv.Atoi(obj.ID); err == nil {
			*p = Priority(v)
		} else {
			*p = 0
		}
		return nil
	}
	return fmt.Errorf("unsupported priority value: %s", s)
}
