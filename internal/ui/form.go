package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/models"
)

type fieldKind int

const (
	textField fieldKind = iota
	choiceField
	toggleField
)

// choice is one entry of an enumeration or record picker.
type choice struct {
	label string
	value string
}

type formField struct {
	key      string
	label    string
	kind     fieldKind
	required bool

	input    textinput.Model
	choices  []choice
	selected int
	on       bool

	// initial is the value shown when the form opened; edits send only
	// fields that moved away from it.
	initial string
}

func (f *formField) value() string {
	switch f.kind {
	case choiceField:
		if len(f.choices) == 0 {
			return ""
		}
		return f.choices[f.selected].value
	case toggleField:
		return strconv.FormatBool(f.on)
	default:
		return strings.TrimSpace(f.input.Value())
	}
}

func (f *formField) changed() bool {
	return f.value() != f.initial
}

func (f *formField) display() string {
	switch f.kind {
	case choiceField:
		if len(f.choices) == 0 {
			return "(none available)"
		}
		return "< " + f.choices[f.selected].label + " >"
	case toggleField:
		if f.on {
			return "[x]"
		}
		return "[ ]"
	default:
		return f.input.View()
	}
}

func newTextField(key, label, value string, required bool) *formField {
	in := textinput.New()
	in.Prompt = ""
	in.CharLimit = 255
	in.Cursor.SetMode(cursor.CursorStatic)
	in.SetValue(value)
	return &formField{
		key:      key,
		label:    label,
		kind:     textField,
		required: required,
		input:    in,
		initial:  strings.TrimSpace(value),
	}
}

func newChoiceField(key, label string, choices []choice, current string) *formField {
	f := &formField{key: key, label: label, kind: choiceField, required: true, choices: choices}
	for i, c := range choices {
		if c.value == current {
			f.selected = i
		}
	}
	f.initial = f.value()
	return f
}

// optional lets the field's empty choice through the required check.
func (f *formField) optional() *formField {
	f.required = false
	return f
}

func newToggleField(key, label string, on bool) *formField {
	f := &formField{key: key, label: label, kind: toggleField, on: on}
	f.initial = f.value()
	return f
}

func enumChoices[T ~string](values []T) []choice {
	out := make([]choice, len(values))
	for i, v := range values {
		out[i] = choice{label: string(v), value: string(v)}
	}
	return out
}

func userChoices(users []dto.UserResponse, unassigned bool) []choice {
	var out []choice
	if unassigned {
		out = append(out, choice{label: "Unassigned", value: ""})
	}
	for _, u := range users {
		out = append(out, choice{label: fmt.Sprintf("#%d %s", u.ID, u.Username), value: idValue(u.ID)})
	}
	return out
}

func projectChoices(projects []dto.ProjectResponse) []choice {
	out := make([]choice, len(projects))
	for i, p := range projects {
		out[i] = choice{label: fmt.Sprintf("#%d %s", p.ID, p.Name), value: idValue(p.ID)}
	}
	return out
}

func idValue(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func optionalIDValue(id *uint64) string {
	if id == nil {
		return ""
	}
	return idValue(*id)
}

func dateValue(t *dto.TaskResponse) string {
	if t == nil || t.DueDate == nil {
		return ""
	}
	return t.DueDate.UTC().Format("2006-01-02")
}

// form is an open create or edit form. A zero id means create.
type form struct {
	page   Page
	id     uint64
	title  string
	fields []*formField
	focus  int
}

func (f *form) editing() bool {
	return f.id != 0
}

func (f *form) field(key string) *formField {
	for _, fld := range f.fields {
		if fld.key == key {
			return fld
		}
	}
	return nil
}

func (f *form) text(key string) string {
	return f.field(key).value()
}

func (f *form) setFocus(i int) {
	n := len(f.fields)
	f.focus = (i%n + n) % n
	for j, fld := range f.fields {
		if fld.kind != textField {
			continue
		}
		if j == f.focus {
			fld.input.Focus()
		} else {
			fld.input.Blur()
		}
	}
}

// missing lists the labels of required fields left empty.
func (f *form) missing() []string {
	var out []string
	for _, fld := range f.fields {
		if fld.required && fld.value() == "" {
			out = append(out, fld.label)
		}
	}
	return out
}

// handleKey edits the focused field. It reports false for keys the form
// leaves to the model (submit and cancel).
func (f *form) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", "ctrl+c":
		return false, nil
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return true, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return true, nil
	}

	fld := f.fields[f.focus]
	switch fld.kind {
	case choiceField:
		if n := len(fld.choices); n > 0 {
			switch msg.String() {
			case "right", "l", " ":
				fld.selected = (fld.selected + 1) % n
			case "left", "h":
				fld.selected = (fld.selected + n - 1) % n
			}
		}
		return true, nil
	case toggleField:
		switch msg.String() {
		case " ", "left", "right", "x":
			fld.on = !fld.on
		}
		return true, nil
	default:
		var cmd tea.Cmd
		fld.input, cmd = fld.input.Update(msg)
		return true, cmd
	}
}

func newUserForm(u *dto.UserResponse) *form {
	f := &form{page: PageUsers, title: "Create User"}
	var username, email, fullName string
	if u != nil {
		f.id = u.ID
		f.title = "Update User #" + idValue(u.ID)
		username, email, fullName = u.Username, u.Email, u.FullName
	}
	f.fields = []*formField{
		newTextField("username", "Username", username, true),
		newTextField("email", "Email", email, true),
		newTextField("full_name", "Full Name", fullName, true),
	}
	if u != nil {
		f.fields = append(f.fields, newToggleField("is_active", "Active", u.IsActive))
	}
	f.setFocus(0)
	return f
}

func newProjectForm(p *dto.ProjectResponse, users []dto.UserResponse) *form {
	f := &form{page: PageProjects, title: "Create Project"}
	var name, description string
	status := string(models.ProjectStatusPlanning)
	if p != nil {
		f.id = p.ID
		f.title = "Update Project #" + idValue(p.ID)
		name, description, status = p.Name, deref(p.Description), string(p.Status)
	}
	f.fields = []*formField{
		newTextField("name", "Name", name, true),
		newTextField("description", "Description", description, false),
		newChoiceField("status", "Status", enumChoices(models.ProjectStatuses), status),
	}
	if p == nil {
		f.fields = append(f.fields, newChoiceField("owner_id", "Owner", userChoices(users, false), ""))
	}
	f.setFocus(0)
	return f
}

func newTaskForm(t *dto.TaskResponse, projects []dto.ProjectResponse, users []dto.UserResponse) *form {
	f := &form{page: PageTasks, title: "Create Task"}
	var title, description string
	status := string(models.TaskStatusTodo)
	priority := string(models.TaskPriorityMedium)
	var assignee *uint64
	if t != nil {
		f.id = t.ID
		f.title = "Update Task #" + idValue(t.ID)
		title, description = t.Title, deref(t.Description)
		status, priority = string(t.Status), string(t.Priority)
		assignee = t.AssigneeID
	}
	f.fields = []*formField{
		newTextField("title", "Title", title, true),
		newTextField("description", "Description", description, false),
		newChoiceField("status", "Status", enumChoices(models.TaskStatuses), status),
		newChoiceField("priority", "Priority", enumChoices(models.TaskPriorities), priority),
	}
	if t == nil {
		f.fields = append(f.fields, newChoiceField("project_id", "Project", projectChoices(projects), ""))
	}
	f.fields = append(f.fields,
		newChoiceField("assignee_id", "Assignee", userChoices(users, true), optionalIDValue(assignee)).optional(),
		newTextField("due_date", "Due Date (YYYY-MM-DD)", dateValue(t), false),
	)
	if t != nil {
		f.fields = append(f.fields, newToggleField("is_completed", "Completed", t.IsCompleted))
	}
	f.setFocus(0)
	return f
}

// changedTo turns an edited field into a partial update value. Untouched
// fields stay absent and emptied fields become null.
func changedTo[T any](fld *formField, conv func(string) (T, error)) (dto.Optional[T], error) {
	if fld == nil || !fld.changed() {
		return dto.Optional[T]{}, nil
	}
	v := fld.value()
	if v == "" {
		return dto.Null[T](), nil
	}
	out, err := conv(v)
	if err != nil {
		return dto.Optional[T]{}, err
	}
	return dto.Some(out), nil
}

func asString(s string) (string, error) { return s, nil }

func asEnum[T ~string](s string) (T, error) { return T(s), nil }

func asBool(s string) (bool, error) { return strconv.ParseBool(s) }

func asID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, formError("invalid id " + s)
	}
	return id, nil
}

func asDate(s string) (dto.Timestamp, error) {
	ts, err := dto.ParseTimestamp(s)
	if err != nil {
		return dto.Timestamp{}, formError("Due date must look like 2025-07-01")
	}
	return ts, nil
}

func textPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// formError is a problem with form input caught before any request is sent.
type formError string

func (e formError) Error() string { return string(e) }
