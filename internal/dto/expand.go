package dto

import (
	"sort"
	"strings"

	apierrors "github.com/yukikurage/taskboard/internal/errors"
)

// Relation names accepted by the expand query parameter.
const (
	ExpandProjects = "projects"
	ExpandTasks    = "tasks"
	ExpandOwner    = "owner"
	ExpandProject  = "project"
	ExpandAssignee = "assignee"
)

var (
	UserExpansions    = []string{ExpandProjects, ExpandTasks}
	ProjectExpansions = []string{ExpandOwner, ExpandTasks}
	TaskExpansions    = []string{ExpandProject, ExpandAssignee}
)

// Expand is the set of relations to embed in a read shape. Embedded records
// are never expanded themselves, so responses stay one level deep.
type Expand map[string]bool

// Has reports whether name was requested.
func (e Expand) Has(name string) bool {
	return e[name]
}

// Names returns the requested relations in sorted order.
func (e Expand) Names() []string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseExpand parses comma separated relation names. Each raw value may hold
// several names, so both ?expand=a,b and ?expand=a&expand=b are accepted.
func ParseExpand(raw []string, allowed []string) (Expand, error) {
	out := Expand{}
	for _, value := range raw {
		for _, name := range strings.Split(value, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			if !contains(allowed, name) {
				return nil, apierrors.NewValidationError("expand",
					"unknown relation '"+name+"', expected one of: "+strings.Join(allowed, ", "))
			}
			out[name] = true
		}
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
