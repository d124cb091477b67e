package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskboard/internal/dto"
	"github.com/yukikurage/taskboard/internal/services"
	"github.com/yukikurage/taskboard/internal/utils"
)

const userResource = "user"

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns a page of users
func (h *UserHandler) ListUsers(c *gin.Context) {
	params, err := utils.GetPaginationParams(c)
	if err != nil {
		fail(c, userResource, opList, err)
		return
	}
	expand, ok := parseExpand(c, userResource, opList, dto.UserExpansions)
	if !ok {
		return
	}

	users, err := h.userService.ListUsers(params, expand)
	if err != nil {
		fail(c, userResource, opList, err)
		return
	}

	succeed(userResource, opList)
	c.JSON(http.StatusOK, dto.ToUserResponses(users, expand))
}

// GetUser returns a specific user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, userResource, opGet)
	if !ok {
		return
	}
	expand, ok := parseExpand(c, userResource, opGet, dto.UserExpansions)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id, expand)
	if err != nil {
		fail(c, userResource, opGet, err)
		return
	}

	succeed(userResource, opGet)
	c.JSON(http.StatusOK, dto.ToUserResponse(*user, expand))
}

// CreateUser registers a new user
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, userResource, opCreate, &req) {
		return
	}

	user, err := h.userService.CreateUser(req)
	if err != nil {
		fail(c, userResource, opCreate, err)
		return
	}

	succeed(userResource, opCreate)
	c.JSON(http.StatusCreated, dto.ToUserResponse(*user, nil))
}

// UpdateUser applies a partial update
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, userResource, opUpdate)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, userResource, opUpdate, &req) {
		return
	}

	user, err := h.userService.UpdateUser(id, req)
	if err != nil {
		fail(c, userResource, opUpdate, err)
		return
	}

	succeed(userResource, opUpdate)
	c.JSON(http.StatusOK, dto.ToUserResponse(*user, nil))
}

// DeleteUser removes a user
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, userResource, opDelete)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		fail(c, userResource, opDelete, err)
		return
	}

	succeed(userResource, opDelete)
	c.Status(http.StatusNoContent)
}
