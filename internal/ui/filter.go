package ui

import (
	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/models"
)

// Completion filter values.
const (
	CompletionAll  = ""
	CompletionDone = "completed"
	CompletionOpen = "open"
)

var completionCycle = []string{CompletionAll, CompletionDone, CompletionOpen}

// TaskFilter narrows the task list. Empty fields match everything.
type TaskFilter struct {
	Status     models.TaskStatus
	Priority   models.TaskPriority
	Completion string
}

// Active reports whether any criterion is set.
func (f TaskFilter) Active() bool {
	return f.Status != "" || f.Priority != "" || f.Completion != CompletionAll
}

// Match reports whether t passes every criterion.
func (f TaskFilter) Match(t dto.TaskResponse) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	switch f.Completion {
	case CompletionDone:
		return t.IsCompleted
	case CompletionOpen:
		return !t.IsCompleted
	}
	return true
}

// Apply returns the matching tasks in input order.
func (f TaskFilter) Apply(tasks []dto.TaskResponse) []dto.TaskResponse {
	if !f.Active() {
		return tasks
	}
	out := make([]dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// cycle advances through "" followed by values, wrapping back to "".
func cycle[T comparable](current T, values []T) T {
	var zero T
	if current == zero {
		return values[0]
	}
	for i, v := range values {
		if v == current {
			if i+1 < len(values) {
				return values[i+1]
			}
			return zero
		}
	}
	return zero
}

func (f TaskFilter) nextStatus() TaskFilter {
	f.Status = cycle(f.Status, models.TaskStatuses)
	return f
}

func (f TaskFilter) nextPriority() TaskFilter {
	f.Priority = cycle(f.Priority, models.TaskPriorities)
	return f
}

func (f TaskFilter) nextCompletion() TaskFilter {
	f.Completion = cycle(f.Completion, completionCycle[1:])
	return f
}
