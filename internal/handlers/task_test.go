package handlers

import (
	"net/http"

	"github.com/yukikurage/taskboard/internal/dto"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/models"
)

// TestCreateTask_Defaults tests that omitted fields take their defaults
func (suite *HandlerTestSuite) TestCreateTask_Defaults() {
	owner := suite.createTestUser("alice")
	project := suite.createTestProject("Roadmap", owner.ID)

	c, w := suite.newContext("POST", "/tasks", map[string]any{
		"title":      "Spec draft",
		"project_id": project.ID,
	}, 0)

	suite.tasks.CreateTask(c)

	suite.Equal(http.StatusCreated, w.Code)
	var response dto.TaskResponse
	suite.decode(w, &response)
	suite.Equal("Spec draft", response.Title)
	suite.Equal(models.TaskStatusTodo, response.Status)
	suite.Equal(models.TaskPriorityMedium, response.Priority)
	suite.False(response.IsCompleted)
	suite.Nil(response.AssigneeID)
	suite.Nil(response.DueDate)
}

// TestCreateTask_InvalidRequest tests task creation with a missing title
func (suite *HandlerTestSuite) TestCreateTask_InvalidRequest() {
	c, w := suite.newContext("POST", "/tasks", map[string]any{"project_id": 1}, 0)

	suite.tasks.CreateTask(c)

	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

// TestCreateTask_InvalidReferences tests missing project and assignee
func (suite *HandlerTestSuite) TestCreateTask_InvalidReferences() {
	owner := suite.createTestUser("alice")
	project := suite.createTestProject("Roadmap", owner.ID)

	c, w := suite.newContext("POST", "/tasks", map[string]any{"title": "t", "project_id": 999}, 0)
	suite.tasks.CreateTask(c)
	body := suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidReference)
	suite.Equal("Project not found", body.Detail)

	c, w = suite.newContext("POST", "/tasks", map[string]any{
		"title":       "t",
		"project_id":  project.ID,
		"assignee_id": 999,
	}, 0)
	suite.tasks.CreateTask(c)
	body = suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidReference)
	suite.Equal("Assignee not found", body.Detail)
}

// TestCreateTask_BadDueDate tests a due date that is not a timestamp
func (suite *HandlerTestSuite) TestCreateTask_BadDueDate() {
	c, w := suite.newContext("POST", "/tasks", `{"title":"t","project_id":1,"due_date":"tomorrow"}`, 0)

	suite.tasks.CreateTask(c)

	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

// TestCreateTask_DateOnlyDueDate tests the bare date form sent by date pickers
func (suite *HandlerTestSuite) TestCreateTask_DateOnlyDueDate() {
	owner := suite.createTestUser("alice")
	project := suite.createTestProject("Roadmap", owner.ID)

	c, w := suite.newContext("POST", "/tasks", map[string]any{
		"title":      "Spec draft",
		"project_id": project.ID,
		"due_date":   "2025-07-01",
	}, 0)
	suite.tasks.CreateTask(c)

	suite.Equal(http.StatusCreated, w.Code)
	var response dto.TaskResponse
	suite.decode(w, &response)
	suite.Require().NotNil(response.DueDate)
	suite.Equal("2025-07-01", response.DueDate.UTC().Format("2006-01-02"))

	c, w = suite.newContext("PUT", "/tasks/1", `{"due_date":"2025-08-15T10:00:00"}`, response.ID)
	suite.tasks.UpdateTask(c)

	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w, &response)
	suite.Require().NotNil(response.DueDate)
	suite.Equal("2025-08-15 10:00", response.DueDate.UTC().Format("2006-01-02 15:04"))
}

// TestGetTask_ExpandAssignee tests task expansions
func (suite *HandlerTestSuite) TestGetTask_ExpandAssignee() {
	owner := suite.createTestUser("alice")
	project := suite.createTestProject("Roadmap", owner.ID)
	task := suite.createTestTask("Spec draft", project.ID)
	suite.Require().NoError(suite.db.Model(task).Update("assignee_id", owner.ID).Error)

	c, w := suite.newContext("GET", "/tasks/1?expand=assignee&expand=project", nil, task.ID)
	suite.tasks.GetTask(c)

	suite.Equal(http.StatusOK, w.Code)
	var response dto.TaskResponse
	suite.decode(w, &response)
	suite.Require().NotNil(response.Assignee)
	suite.Equal("alice", response.Assignee.Username)
	suite.Require().NotNil(response.Project)
	suite.Equal("Roadmap", response.Project.Name)
}

// TestGetTask_NoAssigneeExpanded tests that a missing assignee stays null
func (suite *HandlerTestSuite) TestGetTask_NoAssigneeExpanded() {
	owner := suite.createTestUser("alice")
	project := suite.createTestProject("Roadmap", owner.ID)
	task := suite.createTestTask("Spec draft", project.ID)

	c, w := suite.newContext("GET", "/tasks/1?expand=assignee", nil, task.ID)
	suite.tasks.GetTask(c)

	suite.Equal(http.StatusOK, w.Code)
	var response dto.TaskResponse
	suite.decode(w, &response)
	suite.Nil(response.Assignee)
}

// TestUpdateTask_Success tests a partial update with assignee validation
func (suite *HandlerTestSuite) TestUpdateTask_Success() {
	owner := suite.createTestUser("alice")
	project := suite.createTestProject("Roadmap", owner.ID)
	task := suite.createTestTask("Spec draft", project.ID)

	c, w := suite.newContext("PUT", "/tasks/1", map[string]any{
		"status":       "done",
		"is_completed": true,
		"assignee_id":  owner.ID,
		"due_date":     "2025-07-01T12:00:00Z",
	}, task.ID)
	suite.tasks.UpdateTask(c)

	suite.Equal(http.StatusOK, w.Code)
	var response dto.TaskResponse
	suite.decode(w, &response)
	suite.Equal(models.TaskStatusDone, response.Status)
	suite.True(response.IsCompleted)
	suite.Require().NotNil(response.AssigneeID)
	suite.Equal(owner.ID, *response.AssigneeID)
	suite.Require().NotNil(response.DueDate)
	suite.Equal("Spec draft", response.Title)

	c, w = suite.newContext("PUT", "/tasks/1", `{"assignee_id":12345}`, task.ID)
	suite.tasks.UpdateTask(c)
	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidReference)

	c, w = suite.newContext("PUT", "/tasks/1", `{"priority":"critical"}`, task.ID)
	suite.tasks.UpdateTask(c)
	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

// TestUpdateTask_NotFound tests updating a missing task
func (suite *HandlerTestSuite) TestUpdateTask_NotFound() {
	c, w := suite.newContext("PUT", "/tasks/9", `{"title":"x"}`, 9)
	suite.tasks.UpdateTask(c)

	suite.assertError(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}

// TestDeleteTask tests task deletion
func (suite *HandlerTestSuite) TestDeleteTask() {
	owner := suite.createTestUser("alice")
	project := suite.createTestProject("Roadmap", owner.ID)
	task := suite.createTestTask("Spec draft", project.ID)

	c, w := suite.newContext("DELETE", "/tasks/1", nil, task.ID)
	suite.tasks.DeleteTask(c)
	c.Writer.WriteHeaderNow()
	suite.Equal(http.StatusNoContent, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Zero(count)
}

// TestCreateTask_ReferencesBeyondKeyRange tests foreign keys no row can carry
func (suite *HandlerTestSuite) TestCreateTask_ReferencesBeyondKeyRange() {
	owner := suite.createTestUser("alice")
	project := suite.createTestProject("Roadmap", owner.ID)
	huge := uint64(1) << 63

	c, w := suite.newContext("POST", "/tasks", map[string]any{"title": "t", "project_id": huge}, 0)
	suite.tasks.CreateTask(c)
	body := suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidReference)
	suite.Equal("Project not found", body.Detail)

	c, w = suite.newContext("POST", "/tasks", map[string]any{
		"title":       "t",
		"project_id":  project.ID,
		"assignee_id": huge,
	}, 0)
	suite.tasks.CreateTask(c)
	body = suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidReference)
	suite.Equal("Assignee not found", body.Detail)
}
