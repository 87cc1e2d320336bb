package utils

import (
	"strconv"
	"time"
)

// PriorityLabel maps the ClickUp 1-4 priority ordinal to its display name.
// Zero means no priority; out-of-range values are shown as their raw number.
func PriorityLabel(p int) string {
	switch p {
	case 0:
		return "None"
	case 1:
		return "Urgent"
	case 2:
		return "High"
	case 3:
		return "Normal"
	case 4:
		return "Low"
	default:
		return strconv.Itoa(p)
	}
}

// FormatMillis renders a ClickUp epoch-millisecond timestamp string for
// display. Empty input shows as "None"; non-numeric input is passed through.
func FormatMillis(ms string) string {
	if ms == "" {
		return "None"
	}
	n, err := strconv.ParseInt(ms, 10, 64)
	if err != nil {
		return ms
	}
	return time.UnixMilli(n).UTC().Format("2006-01-02 15:04 MST")
}
