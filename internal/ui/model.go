package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yukikurage/taskboard/internal/client"
	"github.com/yukikurage/taskboard/internal/constants"
	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/models"
)

// Page identifies one screen of the dashboard.
type Page int

const (
	PageDashboard Page = iota
	PageUsers
	PageProjects
	PageTasks
)

var allPages = []Page{PageDashboard, PageUsers, PageProjects, PageTasks}

func (p Page) String() string {
	switch p {
	case PageDashboard:
		return "Dashboard"
	case PageUsers:
		return "Users"
	case PageProjects:
		return "Projects"
	case PageTasks:
		return "Tasks"
	default:
		return "Unknown"
	}
}

// Mode is what a resource page shows: its list, one record, or a form.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeForm
)

// API is the part of client.Client the dashboard uses.
type API interface {
	BaseURL() string
	Health(ctx context.Context) error

	ListUsers(ctx context.Context, opts client.ListOptions) ([]dto.UserResponse, error)
	GetUser(ctx context.Context, id uint64, expand ...string) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, id uint64, req dto.UpdateUserRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, id uint64) error

	ListProjects(ctx context.Context, opts client.ListOptions) ([]dto.ProjectResponse, error)
	GetProject(ctx context.Context, id uint64, expand ...string) (*dto.ProjectResponse, error)
	CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	UpdateProject(ctx context.Context, id uint64, req dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	DeleteProject(ctx context.Context, id uint64) error

	ListTasks(ctx context.Context, opts client.ListOptions) ([]dto.TaskResponse, error)
	GetTask(ctx context.Context, id uint64, expand ...string) (*dto.TaskResponse, error)
	CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error)
	UpdateTask(ctx context.Context, id uint64, req dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	DeleteTask(ctx context.Context, id uint64) error
}

// pageState is the per-page part of the model. Errors stay on the page whose
// action produced them.
type pageState struct {
	cursor     int
	err        error
	notice     string
	confirming bool

	mode   Mode
	detail any
	form   *form
}

// Model is the bubbletea model of the dashboard.
type Model struct {
	ctx context.Context
	api API

	page   Page
	states map[Page]*pageState

	checked   bool
	connected bool

	users    []dto.UserResponse
	projects []dto.ProjectResponse
	tasks    []dto.TaskResponse
	filter   TaskFilter
}

type healthMsg struct {
	origin Page
	err    error
}

type usersMsg struct {
	origin Page
	users  []dto.UserResponse
	err    error
}

type projectsMsg struct {
	origin   Page
	projects []dto.ProjectResponse
	err      error
}

type tasksMsg struct {
	origin Page
	tasks  []dto.TaskResponse
	err    error
}

type detailMsg struct {
	origin Page
	record any
	err    error
}

type savedMsg struct {
	origin Page
	label  string
	err    error
}

type deletedMsg struct {
	origin Page
	label  string
	err    error
}

// NewModel creates a dashboard model starting on the dashboard page.
func NewModel(ctx context.Context, api API) *Model {
	states := make(map[Page]*pageState, len(allPages))
	for _, p := range allPages {
		states[p] = &pageState{}
	}
	return &Model{
		ctx:    ctx,
		api:    api,
		page:   PageDashboard,
		states: states,
	}
}

// Page returns the page currently shown.
func (m *Model) Page() Page {
	return m.page
}

// Mode returns what page p currently shows.
func (m *Model) Mode(p Page) Mode {
	return m.states[p].mode
}

// Err returns the last error recorded on page p.
func (m *Model) Err(p Page) error {
	return m.states[p].err
}

// Filter returns the active task filter.
func (m *Model) Filter() TaskFilter {
	return m.filter
}

// Confirming reports whether page p waits for a delete confirmation.
func (m *Model) Confirming(p Page) bool {
	return m.states[p].confirming
}

func (m *Model) Init() tea.Cmd {
	return m.checkHealth(m.page)
}

func (m *Model) state() *pageState {
	return m.states[m.page]
}

func (m *Model) checkHealth(origin Page) tea.Cmd {
	return func() tea.Msg {
		return healthMsg{origin: origin, err: m.api.Health(m.ctx)}
	}
}

func listAll() client.ListOptions {
	return client.ListOptions{Skip: 0, Limit: constants.MaxLimit}
}

func (m *Model) fetchUsers(origin Page) tea.Cmd {
	return func() tea.Msg {
		users, err := m.api.ListUsers(m.ctx, listAll())
		return usersMsg{origin: origin, users: users, err: err}
	}
}

func (m *Model) fetchProjects(origin Page) tea.Cmd {
	return func() tea.Msg {
		projects, err := m.api.ListProjects(m.ctx, listAll())
		return projectsMsg{origin: origin, projects: projects, err: err}
	}
}

func (m *Model) fetchTasks(origin Page) tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.api.ListTasks(m.ctx, listAll())
		return tasksMsg{origin: origin, tasks: tasks, err: err}
	}
}

// fetchAll loads the three collections. The fetches are independent and
// their results may arrive in any order.
func (m *Model) fetchAll(origin Page) tea.Cmd {
	return tea.Batch(m.fetchUsers(origin), m.fetchProjects(origin), m.fetchTasks(origin))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case healthMsg:
		m.checked = true
		m.connected = msg.err == nil
		if !m.connected {
			return m, nil
		}
		return m, m.fetchAll(msg.origin)

	case usersMsg:
		if m.record(msg.origin, msg.err) {
			m.users = msg.users
		}
	case projectsMsg:
		if m.record(msg.origin, msg.err) {
			m.projects = msg.projects
		}
	case tasksMsg:
		if m.record(msg.origin, msg.err) {
			m.tasks = msg.tasks
		}

	case detailMsg:
		st := m.states[msg.origin]
		if msg.err != nil {
			st.err = msg.err
			return m, nil
		}
		st.err = nil
		st.detail = msg.record
		st.mode = ModeDetail

	case savedMsg:
		st := m.states[msg.origin]
		if msg.err != nil {
			// The form stays open so the input can be corrected.
			st.err = msg.err
			return m, nil
		}
		st.err = nil
		st.notice = msg.label
		st.form = nil
		st.detail = nil
		st.mode = ModeList
		return m, m.fetchAll(msg.origin)

	case deletedMsg:
		st := m.states[msg.origin]
		if msg.err != nil {
			st.err = msg.err
			return m, nil
		}
		st.err = nil
		st.notice = "Deleted " + msg.label
		switch msg.origin {
		case PageUsers:
			return m, m.fetchUsers(msg.origin)
		case PageProjects:
			return m, tea.Batch(m.fetchProjects(msg.origin), m.fetchTasks(msg.origin))
		default:
			return m, m.fetchTasks(msg.origin)
		}
	}

	m.clampCursor()
	return m, nil
}

// record stores a fetch error on its page and reports whether data arrived.
func (m *Model) record(origin Page, err error) bool {
	if err != nil {
		m.states[origin].err = err
		return false
	}
	return true
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	st := m.state()

	switch {
	case st.mode == ModeForm:
		return m.handleFormKey(msg)
	case st.confirming:
		switch key {
		case "y", "Y":
			st.confirming = false
			return m.deleteSelected()
		case "n", "N", "esc":
			st.confirming = false
		case "ctrl+c":
			return tea.Quit
		}
		return nil
	case st.mode == ModeDetail:
		return m.handleDetailKey(key)
	}

	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "1":
		m.page = PageDashboard
	case "2":
		m.page = PageUsers
	case "3":
		m.page = PageProjects
	case "4":
		m.page = PageTasks
	case "tab":
		m.page = allPages[(int(m.page)+1)%len(allPages)]
	case "shift+tab":
		m.page = allPages[(int(m.page)+len(allPages)-1)%len(allPages)]
	case "r", "f5":
		st.err = nil
		st.notice = ""
		return m.checkHealth(m.page)
	case "up", "k":
		if st.cursor > 0 {
			st.cursor--
		}
	case "down", "j":
		st.cursor++
	case "d", "delete":
		if m.page != PageDashboard && m.rowCount() > 0 {
			st.confirming = true
			st.notice = ""
		}
	case "enter":
		return m.openDetail()
	case "n":
		m.openForm(nil)
	case "e":
		if record := m.selected(); record != nil {
			m.openForm(record)
		}
	}

	if m.page == PageTasks {
		switch key {
		case "s":
			m.filter = m.filter.nextStatus()
		case "p":
			m.filter = m.filter.nextPriority()
		case "c":
			m.filter = m.filter.nextCompletion()
		case "x":
			m.filter = TaskFilter{}
		}
	}

	m.clampCursor()
	return nil
}

func (m *Model) handleDetailKey(key string) tea.Cmd {
	st := m.state()
	switch key {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc", "backspace", "enter":
		st.mode = ModeList
		st.detail = nil
	case "e":
		m.openForm(st.detail)
	case "r":
		st.err = nil
		return m.fetchDetail(m.page, detailID(st.detail))
	}
	return nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	st := m.state()
	if handled, cmd := st.form.handleKey(msg); handled {
		return cmd
	}
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		st.form = nil
		st.err = nil
		if st.detail != nil {
			st.mode = ModeDetail
		} else {
			st.mode = ModeList
		}
	case "enter":
		return m.submitForm()
	}
	return nil
}

func (m *Model) visibleTasks() []dto.TaskResponse {
	return m.filter.Apply(m.tasks)
}

func (m *Model) rowCount() int {
	switch m.page {
	case PageUsers:
		return len(m.users)
	case PageProjects:
		return len(m.projects)
	case PageTasks:
		return len(m.visibleTasks())
	default:
		return 0
	}
}

func (m *Model) clampCursor() {
	st := m.state()
	n := m.rowCount()
	if st.cursor >= n {
		st.cursor = n - 1
	}
	if st.cursor < 0 {
		st.cursor = 0
	}
}

// selected returns a pointer to the highlighted row of the current page, or
// nil when the page has no rows.
func (m *Model) selected() any {
	cursor := m.state().cursor
	switch m.page {
	case PageUsers:
		if cursor < len(m.users) {
			return &m.users[cursor]
		}
	case PageProjects:
		if cursor < len(m.projects) {
			return &m.projects[cursor]
		}
	case PageTasks:
		if tasks := m.visibleTasks(); cursor < len(tasks) {
			return &tasks[cursor]
		}
	}
	return nil
}

func detailID(record any) uint64 {
	switch r := record.(type) {
	case *dto.UserResponse:
		return r.ID
	case *dto.ProjectResponse:
		return r.ID
	case *dto.TaskResponse:
		return r.ID
	default:
		return 0
	}
}

func (m *Model) openDetail() tea.Cmd {
	id := detailID(m.selected())
	if id == 0 {
		return nil
	}
	m.state().notice = ""
	return m.fetchDetail(m.page, id)
}

// fetchDetail loads one record with its related records expanded.
func (m *Model) fetchDetail(origin Page, id uint64) tea.Cmd {
	return func() tea.Msg {
		var record any
		var err error
		switch origin {
		case PageUsers:
			record, err = m.api.GetUser(m.ctx, id, dto.UserExpansions...)
		case PageProjects:
			record, err = m.api.GetProject(m.ctx, id, dto.ProjectExpansions...)
		case PageTasks:
			record, err = m.api.GetTask(m.ctx, id, dto.TaskExpansions...)
		default:
			return nil
		}
		return detailMsg{origin: origin, record: record, err: err}
	}
}

// openForm opens a create form when record is nil and an edit form otherwise.
// Pickers are filled from the collections already loaded.
func (m *Model) openForm(record any) {
	st := m.state()
	var f *form
	switch m.page {
	case PageUsers:
		u, _ := record.(*dto.UserResponse)
		f = newUserForm(u)
	case PageProjects:
		p, _ := record.(*dto.ProjectResponse)
		if p == nil && len(m.users) == 0 {
			st.err = formError("No users available. Create a user first.")
			return
		}
		f = newProjectForm(p, m.users)
	case PageTasks:
		t, _ := record.(*dto.TaskResponse)
		if t == nil && len(m.projects) == 0 {
			st.err = formError("No projects available. Create a project first.")
			return
		}
		f = newTaskForm(t, m.projects, m.users)
	default:
		return
	}
	st.form = f
	st.mode = ModeForm
	st.err = nil
	st.notice = ""
	st.confirming = false
}

func (m *Model) submitForm() tea.Cmd {
	st := m.state()
	f := st.form
	if missing := f.missing(); len(missing) > 0 {
		st.err = formError("Please fill in: " + strings.Join(missing, ", "))
		return nil
	}

	var save func() error
	var label string
	var err error
	switch f.page {
	case PageUsers:
		save, label = m.saveUser(f)
	case PageProjects:
		save, label, err = m.saveProject(f)
	case PageTasks:
		save, label, err = m.saveTask(f)
	}
	if err != nil {
		st.err = err
		return nil
	}
	if save == nil {
		return nil
	}

	origin := f.page
	return func() tea.Msg {
		return savedMsg{origin: origin, label: label, err: save()}
	}
}

func (m *Model) saveUser(f *form) (func() error, string) {
	if !f.editing() {
		req := dto.CreateUserRequest{
			Username: f.text("username"),
			Email:    f.text("email"),
			FullName: f.text("full_name"),
		}
		return func() error {
			_, err := m.api.CreateUser(m.ctx, req)
			return err
		}, "Created user " + req.Username
	}

	var req dto.UpdateUserRequest
	req.Username, _ = changedTo(f.field("username"), asString)
	req.Email, _ = changedTo(f.field("email"), asString)
	req.FullName, _ = changedTo(f.field("full_name"), asString)
	req.IsActive, _ = changedTo(f.field("is_active"), asBool)
	id := f.id
	return func() error {
		_, err := m.api.UpdateUser(m.ctx, id, req)
		return err
	}, "Updated user " + f.text("username")
}

func (m *Model) saveProject(f *form) (func() error, string, error) {
	if !f.editing() {
		owner, err := asID(f.text("owner_id"))
		if err != nil {
			return nil, "", err
		}
		req := dto.CreateProjectRequest{
			Name:        f.text("name"),
			Description: textPtr(f.text("description")),
			Status:      models.ProjectStatus(f.text("status")),
			OwnerID:     owner,
		}
		return func() error {
			_, err := m.api.CreateProject(m.ctx, req)
			return err
		}, "Created project " + req.Name, nil
	}

	var req dto.UpdateProjectRequest
	req.Name, _ = changedTo(f.field("name"), asString)
	req.Description, _ = changedTo(f.field("description"), asString)
	req.Status, _ = changedTo(f.field("status"), asEnum[models.ProjectStatus])
	id := f.id
	return func() error {
		_, err := m.api.UpdateProject(m.ctx, id, req)
		return err
	}, "Updated project " + f.text("name"), nil
}

func (m *Model) saveTask(f *form) (func() error, string, error) {
	if !f.editing() {
		project, err := asID(f.text("project_id"))
		if err != nil {
			return nil, "", err
		}
		req := dto.CreateTaskRequest{
			Title:       f.text("title"),
			Description: textPtr(f.text("description")),
			Status:      models.TaskStatus(f.text("status")),
			Priority:    models.TaskPriority(f.text("priority")),
			ProjectID:   project,
		}
		if v := f.text("assignee_id"); v != "" {
			assignee, err := asID(v)
			if err != nil {
				return nil, "", err
			}
			req.AssigneeID = &assignee
		}
		if v := f.text("due_date"); v != "" {
			due, err := asDate(v)
			if err != nil {
				return nil, "", err
			}
			req.DueDate = &due
		}
		return func() error {
			_, err := m.api.CreateTask(m.ctx, req)
			return err
		}, fmt.Sprintf("Created task %q", req.Title), nil
	}

	var req dto.UpdateTaskRequest
	var err error
	req.Title, _ = changedTo(f.field("title"), asString)
	req.Description, _ = changedTo(f.field("description"), asString)
	req.Status, _ = changedTo(f.field("status"), asEnum[models.TaskStatus])
	req.Priority, _ = changedTo(f.field("priority"), asEnum[models.TaskPriority])
	req.IsCompleted, _ = changedTo(f.field("is_completed"), asBool)
	if req.AssigneeID, err = changedTo(f.field("assignee_id"), asID); err != nil {
		return nil, "", err
	}
	if req.DueDate, err = changedTo(f.field("due_date"), asDate); err != nil {
		return nil, "", err
	}
	id := f.id
	return func() error {
		_, err := m.api.UpdateTask(m.ctx, id, req)
		return err
	}, fmt.Sprintf("Updated task %q", f.text("title")), nil
}

func (m *Model) deleteSelected() tea.Cmd {
	origin := m.page

	var label string
	var remove func() error
	switch r := m.selected().(type) {
	case *dto.UserResponse:
		id := r.ID
		label = "user " + r.Username
		remove = func() error { return m.api.DeleteUser(m.ctx, id) }
	case *dto.ProjectResponse:
		id := r.ID
		label = "project " + r.Name
		remove = func() error { return m.api.DeleteProject(m.ctx, id) }
	case *dto.TaskResponse:
		id := r.ID
		label = fmt.Sprintf("task %q", r.Title)
		remove = func() error { return m.api.DeleteTask(m.ctx, id) }
	default:
		return nil
	}

	return func() tea.Msg {
		return deletedMsg{origin: origin, label: label, err: remove()}
	}
}
