package handlers

import (
	"net/http"

	"github.com/alimgiray/shiftledger/internal/services"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers lists every user
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(principal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListDepartmentUsers lists the users of one department
func (h *UserHandler) ListDepartmentUsers(c *gin.Context) {
	users, err := h.userService.ListDepartmentUsers(principal(c), c.Param("department"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
