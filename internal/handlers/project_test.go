package handlers

import (
	"net/http"

	"github.com/yukikurage/taskboard/internal/dto"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
	"github.com/yukikurage/taskboard/internal/models"
)

// TestCreateProject_Success tests creation with the default status
func (suite *HandlerTestSuite) TestCreateProject_Success() {
	owner := suite.createTestUser("alice")
	c, w := suite.newContext("POST", "/projects", map[string]any{
		"name":     "Roadmap",
		"owner_id": owner.ID,
	}, 0)

	suite.projects.CreateProject(c)

	suite.Equal(http.StatusCreated, w.Code)
	var response dto.ProjectResponse
	suite.decode(w, &response)
	suite.Equal(models.ProjectStatusPlanning, response.Status)
	suite.Nil(response.Description)
	suite.Equal(owner.ID, response.OwnerID)
}

// TestCreateProject_OwnerNotFound tests the invalid reference response
func (suite *HandlerTestSuite) TestCreateProject_OwnerNotFound() {
	c, w := suite.newContext("POST", "/projects", map[string]any{
		"name":     "Roadmap",
		"owner_id": 42,
	}, 0)

	suite.projects.CreateProject(c)

	body := suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidReference)
	suite.Equal("Owner not found", body.Detail)
}

// TestCreateProject_InvalidStatus tests enumeration checks
func (suite *HandlerTestSuite) TestCreateProject_InvalidStatus() {
	owner := suite.createTestUser("alice")
	c, w := suite.newContext("POST", "/projects", map[string]any{
		"name":     "Roadmap",
		"status":   "archived",
		"owner_id": owner.ID,
	}, 0)

	suite.projects.CreateProject(c)

	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

// TestGetProject_ExpandOwnerAndTasks tests both project expansions
func (suite *HandlerTestSuite) TestGetProject_ExpandOwnerAndTasks() {
	owner := suite.createTestUser("alice")
	project := suite.createTestProject("Roadmap", owner.ID)
	suite.createTestTask("Spec draft", project.ID)

	c, w := suite.newContext("GET", "/projects/1?expand=owner,tasks", nil, project.ID)
	suite.projects.GetProject(c)

	suite.Equal(http.StatusOK, w.Code)
	var response dto.ProjectResponse
	suite.decode(w, &response)
	suite.Require().NotNil(response.Owner)
	suite.Equal("alice", response.Owner.Username)
	suite.Require().Len(response.Tasks, 1)
	suite.Equal("Spec draft", response.Tasks[0].Title)
	suite.Nil(response.Tasks[0].Project)
}

// TestUpdateProject_ClearDescription tests an explicit null on a nullable field
func (suite *HandlerTestSuite) TestUpdateProject_ClearDescription() {
	owner := suite.createTestUser("alice")
	project := suite.createTestProject("Roadmap", owner.ID)
	suite.Require().NoError(suite.db.Model(project).Update("description", "Q3").Error)

	c, w := suite.newContext("PATCH", "/projects/1", `{"description":null,"status":"on_hold"}`, project.ID)
	suite.projects.UpdateProject(c)

	suite.Equal(http.StatusOK, w.Code)
	var response dto.ProjectResponse
	suite.decode(w, &response)
	suite.Nil(response.Description)
	suite.Equal(models.ProjectStatusOnHold, response.Status)
	suite.Equal("Roadmap", response.Name)
}

// TestDeleteProject_RemovesTasks tests the cascade through the handler
func (suite *HandlerTestSuite) TestDeleteProject_RemovesTasks() {
	owner := suite.createTestUser("alice")
	project := suite.createTestProject("Roadmap", owner.ID)
	task := suite.createTestTask("Spec draft", project.ID)

	c, w := suite.newContext("DELETE", "/projects/1", nil, project.ID)
	suite.projects.DeleteProject(c)
	c.Writer.WriteHeaderNow()
	suite.Equal(http.StatusNoContent, w.Code)

	c, w = suite.newContext("GET", "/tasks/1", nil, task.ID)
	suite.tasks.GetTask(c)
	suite.assertError(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}
