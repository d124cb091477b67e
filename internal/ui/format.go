package ui

import (
	"fmt"
	"time"
)

const notSet = "Not set"

var statusBadges = map[string]string{
	"planning":    "📋",
	"in_progress": "🚀",
	"completed":   "✅",
	"on_hold":     "⏸️",
	"todo":        "📝",
	"done":        "✅",
}

var priorityBadges = map[string]string{
	"low":    "🟢",
	"medium": "🟡",
	"high":   "🟠",
	"urgent": "🔴",
}

// StatusBadge renders a project or task status with its icon.
func StatusBadge[S ~string](status S) string {
	icon, ok := statusBadges[string(status)]
	if !ok {
		icon = "📄"
	}
	return icon + " " + string(status)
}

// PriorityBadge renders a task priority with its icon.
func PriorityBadge[P ~string](priority P) string {
	icon, ok := priorityBadges[string(priority)]
	if !ok {
		icon = "⚪"
	}
	return icon + " " + string(priority)
}

// FormatDateTime renders t in local "2006-01-02 15:04" form.
func FormatDateTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return notSet
	}
	return t.Local().Format("2006-01-02 15:04")
}

// FormatOptional renders a nullable string.
func FormatOptional(s *string) string {
	if s == nil || *s == "" {
		return notSet
	}
	return *s
}

func formatID(id *uint64) string {
	if id == nil {
		return notSet
	}
	return fmt.Sprintf("#%d", *id)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
