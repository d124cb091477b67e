package handlers

import (
	"net/http"

	"github.com/yukikurage/taskboard/internal/dto"
	apierrors "github.com/yukikurage/taskboard/internal/errors"
)

// TestCreateUser_Success tests successful user creation
func (suite *HandlerTestSuite) TestCreateUser_Success() {
	c, w := suite.newContext("POST", "/users", map[string]any{
		"username":  "alice",
		"email":     "a@x.io",
		"full_name": "Alice A",
	}, 0)

	suite.users.CreateUser(c)

	suite.Equal(http.StatusCreated, w.Code)
	var response dto.UserResponse
	suite.decode(w, &response)
	suite.NotZero(response.ID)
	suite.Equal("alice", response.Username)
	suite.True(response.IsActive)
	suite.NotContains(w.Body.String(), "projects")
}

// TestCreateUser_MissingFields tests that every missing field is reported
func (suite *HandlerTestSuite) TestCreateUser_MissingFields() {
	c, w := suite.newContext("POST", "/users", map[string]any{"email": "bad"}, 0)

	suite.users.CreateUser(c)

	body := suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
	suite.NotNil(body.Details)
}

// TestCreateUser_MalformedJSON tests an unparsable body
func (suite *HandlerTestSuite) TestCreateUser_MalformedJSON() {
	c, w := suite.newContext("POST", "/users", `{"username":`, 0)

	suite.users.CreateUser(c)

	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

// TestCreateUser_Duplicate tests the conflict response
func (suite *HandlerTestSuite) TestCreateUser_Duplicate() {
	suite.createTestUser("alice")
	c, w := suite.newContext("POST", "/users", map[string]any{
		"username":  "alice",
		"email":     "new@example.com",
		"full_name": "Alice",
	}, 0)

	suite.users.CreateUser(c)

	suite.assertError(w, http.StatusConflict, apierrors.ErrCodeConflict)
}

// TestListUsers_Pagination tests skip and limit
func (suite *HandlerTestSuite) TestListUsers_Pagination() {
	suite.createTestUser("a")
	suite.createTestUser("b")
	suite.createTestUser("c")

	c, w := suite.newContext("GET", "/users?skip=1&limit=5", nil, 0)
	suite.users.ListUsers(c)

	suite.Equal(http.StatusOK, w.Code)
	var response []dto.UserResponse
	suite.decode(w, &response)
	suite.Require().Len(response, 2)
	suite.Equal("b", response[0].Username)

	c, w = suite.newContext("GET", "/users?limit=-1", nil, 0)
	suite.users.ListUsers(c)
	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

// TestListUsers_Empty tests that an empty table yields an empty array
func (suite *HandlerTestSuite) TestListUsers_Empty() {
	c, w := suite.newContext("GET", "/users", nil, 0)
	suite.users.ListUsers(c)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

// TestGetUser_Expand tests one level of relation expansion
func (suite *HandlerTestSuite) TestGetUser_Expand() {
	user := suite.createTestUser("alice")
	suite.createTestProject("Roadmap", user.ID)

	c, w := suite.newContext("GET", "/users/1?expand=projects", nil, user.ID)
	suite.users.GetUser(c)

	suite.Equal(http.StatusOK, w.Code)
	var response dto.UserResponse
	suite.decode(w, &response)
	suite.Require().Len(response.Projects, 1)
	suite.Equal("Roadmap", response.Projects[0].Name)
	suite.Nil(response.Projects[0].Owner)

	c, w = suite.newContext("GET", "/users/1?expand=owner", nil, user.ID)
	suite.users.GetUser(c)
	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

// TestGetUser_NotFound tests the 404 envelope
func (suite *HandlerTestSuite) TestGetUser_NotFound() {
	c, w := suite.newContext("GET", "/users/99", nil, 99)
	suite.users.GetUser(c)

	body := suite.assertError(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
	suite.Equal("User not found", body.Detail)
}

// TestUpdateUser_Partial tests that only supplied fields change
func (suite *HandlerTestSuite) TestUpdateUser_Partial() {
	user := suite.createTestUser("alice")

	c, w := suite.newContext("PUT", "/users/1", `{"full_name":"Alice Anderson"}`, user.ID)
	suite.users.UpdateUser(c)

	suite.Equal(http.StatusOK, w.Code)
	var response dto.UserResponse
	suite.decode(w, &response)
	suite.Equal("Alice Anderson", response.FullName)
	suite.Equal("alice@example.com", response.Email)

	c, w = suite.newContext("PUT", "/users/1", `{"username":null}`, user.ID)
	suite.users.UpdateUser(c)
	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}

// TestDeleteUser tests deletion and the follow-up 404
func (suite *HandlerTestSuite) TestDeleteUser() {
	user := suite.createTestUser("alice")

	c, w := suite.newContext("DELETE", "/users/1", nil, user.ID)
	suite.users.DeleteUser(c)
	c.Writer.WriteHeaderNow()
	suite.Equal(http.StatusNoContent, w.Code)
	suite.Empty(w.Body.String())

	c, w = suite.newContext("DELETE", "/users/1", nil, user.ID)
	suite.users.DeleteUser(c)
	suite.assertError(w, http.StatusNotFound, apierrors.ErrCodeNotFound)
}

// TestMissingResourceID tests a handler mounted without the id parser
func (suite *HandlerTestSuite) TestMissingResourceID() {
	c, w := suite.newContext("GET", "/users/x", nil, 0)
	suite.users.GetUser(c)

	suite.assertError(w, http.StatusBadRequest, apierrors.ErrCodeInvalidInput)
}
