package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quadplus/api/internal/models"
)

func (h HandlerSet) AdminListUsers(c *gin.Context) {
	limit := 50
	offset := 0

	if perPage := c.Query("perPage"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	if page := c.Query("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 1 {
			offset = (v - 1) * limit
		}
	}

	users, err := h.users.List(c.Request.Context(), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	items := make([]userResponse, 0, len(users))
	for _, user := range users {
		items = append(items, userResponse{
			ID:          user.ID,
			Email:       user.Email,
			DisplayName: user.DisplayName,
			Role:        string(user.Role),
			RoleTitle:   user.Role.Title(),
			Status:      string(user.Status),
		})
	}

	c.JSON(http.StatusOK, gin.H{"users": items})
}

type updateUserRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// AdminUpdateUserRole provisions staff roles. This is the only way an account
// moves off the customer default.
func (h HandlerSet) AdminUpdateUserRole(c *gin.Context) {
	var req updateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.UpdateRole(c.Request.Context(), c.Param("id"), role); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
