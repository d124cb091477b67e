package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yukikurage/taskboard/internal/client"
	"github.com/yukikurage/taskboard/internal/dto"
)

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task Management Dashboard") + "\n")
	b.WriteString(renderTabs(m.page) + "\n\n")

	switch {
	case !m.checked:
		b.WriteString("Checking API health...\n\n")
	case !m.connected:
		writeDisconnected(&b, m.api.BaseURL())
	case m.state().mode == ModeForm:
		writeForm(&b, m.state().form)
	case m.state().mode == ModeDetail:
		writeDetail(&b, m.state().detail)
	default:
		switch m.page {
		case PageDashboard:
			writeDashboard(&b, BuildStats(m.users, m.projects, m.tasks))
		case PageUsers:
			writeUsers(&b, m.users, m.state().cursor)
		case PageProjects:
			writeProjects(&b, m.projects, m.state().cursor)
		case PageTasks:
			writeTasks(&b, m.filter, m.visibleTasks(), m.state().cursor)
		}
	}

	writePageStatus(&b, m.state(), m.page)
	writeFooter(&b, m.page, m.state().mode)
	return b.String()
}

func renderTabs(active Page) string {
	tabs := make([]string, len(allPages))
	for i, p := range allPages {
		label := fmt.Sprintf("%d %s", i+1, p)
		if p == active {
			tabs[i] = activeTabStyle.Render(label)
		} else {
			tabs[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func writeDisconnected(b *strings.Builder, baseURL string) {
	b.WriteString(errorStyle.Render("API is not reachable") + "\n\n")
	b.WriteString("  Cannot connect to API at " + baseURL + "\n")
	b.WriteString("  Start the server and press r to retry.\n\n")
}

func writeDashboard(b *strings.Builder, stats Stats) {
	cards := []string{
		metricStyle.Render(fmt.Sprintf("Users\n%d", stats.Users)),
		metricStyle.Render(fmt.Sprintf("Projects\n%d", stats.Projects)),
		metricStyle.Render(fmt.Sprintf("Tasks\n%d", stats.Tasks)),
		metricStyle.Render(fmt.Sprintf("Completion\n%.1f%%", stats.CompletionRate())),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n\n")

	b.WriteString(headerStyle.Render("Recent Tasks") + "\n\n")
	if len(stats.Recent) == 0 {
		b.WriteString(mutedStyle.Render("  No tasks yet.") + "\n\n")
		return
	}
	for _, t := range stats.Recent {
		b.WriteString(fmt.Sprintf("  %s  %s  %s  %s\n",
			truncate(t.Title, 40),
			StatusBadge(t.Status),
			PriorityBadge(t.Priority),
			mutedStyle.Render(FormatDateTime(&t.CreatedAt)),
		))
	}
	b.WriteString("\n")
}

func row(selected bool, line string) string {
	if selected {
		return selectedStyle.Render("> "+line) + "\n"
	}
	return "  " + line + "\n"
}

func writeUsers(b *strings.Builder, users []dto.UserResponse, cursor int) {
	b.WriteString(headerStyle.Render(fmt.Sprintf("Users (%d)", len(users))) + "\n\n")
	if len(users) == 0 {
		b.WriteString(mutedStyle.Render("  No users found.") + "\n\n")
		return
	}
	for i, u := range users {
		active := "inactive"
		if u.IsActive {
			active = "active"
		}
		b.WriteString(row(i == cursor, fmt.Sprintf("#%-4d %-20s %-30s %s", u.ID, truncate(u.Username, 20), truncate(u.Email, 30), active)))
	}

	u := users[cursor]
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Full name: %s\n", u.FullName))
	b.WriteString(fmt.Sprintf("  Created:   %s\n", FormatDateTime(&u.CreatedAt)))
	b.WriteString(fmt.Sprintf("  Updated:   %s\n\n", FormatDateTime(&u.UpdatedAt)))
}

func writeProjects(b *strings.Builder, projects []dto.ProjectResponse, cursor int) {
	b.WriteString(headerStyle.Render(fmt.Sprintf("Projects (%d)", len(projects))) + "\n\n")
	if len(projects) == 0 {
		b.WriteString(mutedStyle.Render("  No projects found.") + "\n\n")
		return
	}
	for i, p := range projects {
		b.WriteString(row(i == cursor, fmt.Sprintf("#%-4d %-30s %-16s owner #%d", p.ID, truncate(p.Name, 30), StatusBadge(p.Status), p.OwnerID)))
	}

	p := projects[cursor]
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Description: %s\n", FormatOptional(p.Description)))
	b.WriteString(fmt.Sprintf("  Created:     %s\n\n", FormatDateTime(&p.CreatedAt)))
}

func writeTasks(b *strings.Builder, filter TaskFilter, tasks []dto.TaskResponse, cursor int) {
	b.WriteString(headerStyle.Render(fmt.Sprintf("Tasks (%d)", len(tasks))) + "\n")
	b.WriteString(mutedStyle.Render(describeFilter(filter)) + "\n\n")
	if len(tasks) == 0 {
		b.WriteString(mutedStyle.Render("  No tasks match.") + "\n\n")
		return
	}
	for i, t := range tasks {
		done := "[ ]"
		if t.IsCompleted {
			done = "[x]"
		}
		b.WriteString(row(i == cursor, fmt.Sprintf("%s #%-4d %-30s %-16s %s", done, t.ID, truncate(t.Title, 30), StatusBadge(t.Status), PriorityBadge(t.Priority))))
	}

	t := tasks[cursor]
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Description: %s\n", FormatOptional(t.Description)))
	b.WriteString(fmt.Sprintf("  Project:     #%d\n", t.ProjectID))
	b.WriteString(fmt.Sprintf("  Assignee:    %s\n", formatID(t.AssigneeID)))
	b.WriteString(fmt.Sprintf("  Due:         %s\n\n", FormatDateTime(t.DueDate)))
}

func describeFilter(f TaskFilter) string {
	orAll := func(s string) string {
		if s == "" {
			return "all"
		}
		return s
	}
	return fmt.Sprintf("status: %s | priority: %s | completion: %s",
		orAll(string(f.Status)), orAll(string(f.Priority)), orAll(f.Completion))
}

func writePageStatus(b *strings.Builder, st *pageState, page Page) {
	if st.confirming {
		b.WriteString(warnStyle.Render("Delete the selected "+strings.ToLower(strings.TrimSuffix(page.String(), "s"))+"? (y/n)") + "\n\n")
	}
	if st.err != nil {
		b.WriteString(errorStyle.Render(errorText(st.err)) + "\n\n")
	}
	if st.notice != "" {
		b.WriteString(successStyle.Render(st.notice) + "\n\n")
	}
}

func writeFooter(b *strings.Builder, page Page, mode Mode) {
	switch mode {
	case ModeForm:
		b.WriteString(mutedStyle.Render("tab/↑↓ move | ←/→ or space change choice | enter save | esc cancel") + "\n")
		return
	case ModeDetail:
		b.WriteString(mutedStyle.Render("e edit | r reload | esc back | q quit") + "\n")
		return
	}

	help := "1-4/tab switch page | r refresh | q quit"
	if page != PageDashboard {
		help = "j/k move | enter details | n new | e edit | d delete | " + help
	}
	if page == PageTasks {
		help = "s status | p priority | c completion | x clear | " + help
	}
	b.WriteString(mutedStyle.Render(help) + "\n")
}

// errorText renders an error for the status line. Form problems are shown
// as written; everything else goes through the client's classification.
func errorText(err error) string {
	var fe formError
	if errors.As(err, &fe) {
		return string(fe)
	}
	return client.Message(err)
}

func writeForm(b *strings.Builder, f *form) {
	b.WriteString(headerStyle.Render(f.title) + "\n\n")
	for i, fld := range f.fields {
		label := fld.label
		if fld.required && fld.kind == textField {
			label += " *"
		}
		line := fmt.Sprintf("%-24s %s", label, fld.display())
		b.WriteString(row(i == f.focus, line))
	}
	b.WriteString("\n")
}

func writeDetail(b *strings.Builder, record any) {
	switch r := record.(type) {
	case *dto.UserResponse:
		writeUserDetail(b, r)
	case *dto.ProjectResponse:
		writeProjectDetail(b, r)
	case *dto.TaskResponse:
		writeTaskDetail(b, r)
	}
}

func writeUserDetail(b *strings.Builder, u *dto.UserResponse) {
	active := "No"
	if u.IsActive {
		active = "Yes"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("User #%d: %s", u.ID, u.Username)) + "\n\n")
	b.WriteString(fmt.Sprintf("  Email:     %s\n", u.Email))
	b.WriteString(fmt.Sprintf("  Full name: %s\n", u.FullName))
	b.WriteString(fmt.Sprintf("  Active:    %s\n", active))
	b.WriteString(fmt.Sprintf("  Created:   %s\n", FormatDateTime(&u.CreatedAt)))
	b.WriteString(fmt.Sprintf("  Updated:   %s\n\n", FormatDateTime(&u.UpdatedAt)))

	b.WriteString(headerStyle.Render(fmt.Sprintf("Projects (%d)", len(u.Projects))) + "\n")
	for _, p := range u.Projects {
		b.WriteString(fmt.Sprintf("  #%-4d %-30s %s\n", p.ID, truncate(p.Name, 30), StatusBadge(p.Status)))
	}
	b.WriteString("\n" + headerStyle.Render(fmt.Sprintf("Assigned Tasks (%d)", len(u.Tasks))) + "\n")
	writeTaskLines(b, u.Tasks)
}

func writeProjectDetail(b *strings.Builder, p *dto.ProjectResponse) {
	owner := fmt.Sprintf("#%d", p.OwnerID)
	if p.Owner != nil {
		owner += " " + p.Owner.Username
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("Project #%d: %s", p.ID, p.Name)) + "\n\n")
	b.WriteString(fmt.Sprintf("  Description: %s\n", FormatOptional(p.Description)))
	b.WriteString(fmt.Sprintf("  Status:      %s\n", StatusBadge(p.Status)))
	b.WriteString(fmt.Sprintf("  Owner:       %s\n", owner))
	b.WriteString(fmt.Sprintf("  Created:     %s\n", FormatDateTime(&p.CreatedAt)))
	b.WriteString(fmt.Sprintf("  Updated:     %s\n\n", FormatDateTime(&p.UpdatedAt)))

	b.WriteString(headerStyle.Render(fmt.Sprintf("Tasks (%d)", len(p.Tasks))) + "\n")
	writeTaskLines(b, p.Tasks)
}

func writeTaskDetail(b *strings.Builder, t *dto.TaskResponse) {
	project := fmt.Sprintf("#%d", t.ProjectID)
	if t.Project != nil {
		project += " " + t.Project.Name
	}
	assignee := formatID(t.AssigneeID)
	if t.Assignee != nil {
		assignee += " " + t.Assignee.Username
	}
	completed := "No"
	if t.IsCompleted {
		completed = "Yes"
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("Task #%d: %s", t.ID, t.Title)) + "\n\n")
	b.WriteString(fmt.Sprintf("  Description: %s\n", FormatOptional(t.Description)))
	b.WriteString(fmt.Sprintf("  Status:      %s\n", StatusBadge(t.Status)))
	b.WriteString(fmt.Sprintf("  Priority:    %s\n", PriorityBadge(t.Priority)))
	b.WriteString(fmt.Sprintf("  Completed:   %s\n", completed))
	b.WriteString(fmt.Sprintf("  Project:     %s\n", project))
	b.WriteString(fmt.Sprintf("  Assignee:    %s\n", assignee))
	b.WriteString(fmt.Sprintf("  Due:         %s\n", FormatDateTime(t.DueDate)))
	b.WriteString(fmt.Sprintf("  Created:     %s\n", FormatDateTime(&t.CreatedAt)))
	b.WriteString(fmt.Sprintf("  Updated:     %s\n\n", FormatDateTime(&t.UpdatedAt)))
}

func writeTaskLines(b *strings.Builder, tasks []dto.TaskResponse) {
	if len(tasks) == 0 {
		b.WriteString(mutedStyle.Render("  None.") + "\n\n")
		return
	}
	for _, t := range tasks {
		b.WriteString(fmt.Sprintf("  #%-4d %-30s %-16s %s\n", t.ID, truncate(t.Title, 30), StatusBadge(t.Status), PriorityBadge(t.Priority)))
	}
	b.WriteString("\n")
}
