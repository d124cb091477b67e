package ui

import (
	"sort"

	"github.com/yukikurage/taskboard/internal/constants"
	"github.com/yukikurage/taskboard/internal/dto"
)

// Stats is the dashboard summary computed from the three collections.
type Stats struct {
	Users          int
	Projects       int
	Tasks          int
	CompletedTasks int
	Recent         []dto.TaskResponse
}

// CompletionRate is the completed share of tasks in percent.
func (s Stats) CompletionRate() float64 {
	if s.Tasks == 0 {
		return 0
	}
	return float64(s.CompletedTasks) / float64(s.Tasks) * 100
}

// BuildStats counts the collections and picks the most recently created tasks.
func BuildStats(users []dto.UserResponse, projects []dto.ProjectResponse, tasks []dto.TaskResponse) Stats {
	stats := Stats{
		Users:    len(users),
		Projects: len(projects),
		Tasks:    len(tasks),
	}
	for _, t := range tasks {
		if t.IsCompleted {
			stats.CompletedTasks++
		}
	}

	sorted := make([]dto.TaskResponse, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > constants.RecentTaskCount {
		sorted = sorted[:constants.RecentTaskCount]
	}
	stats.Recent = sorted

	return stats
}
