package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quadplus/api/internal/models"
	"quadplus/api/internal/policy"
	"quadplus/api/internal/state"
)

func (h HandlerSet) ListTeam(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"members": h.store.TeamMembers()})
}

type addTeamMemberRequest struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// AddTeamMember appends a member row; omitted fields get the default values
// the panel's add button used.
func (h HandlerSet) AddTeamMember(c *gin.Context) {
	if _, ok := h.requireMutate(c, policy.PanelTeam); !ok {
		return
	}

	var req addTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member := h.store.AddTeamMember(c.Request.Context(), models.TeamMember{
		Name:   req.Name,
		Role:   req.Role,
		Avatar: req.Avatar,
	})
	c.JSON(http.StatusCreated, gin.H{"member": member})
}

type updateTeamMemberRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Avatar *string `json:"avatar"`
}

func (h HandlerSet) UpdateTeamMember(c *gin.Context) {
	if _, ok := h.requireMutate(c, policy.PanelTeam); !ok {
		return
	}

	var req updateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	member, err := h.store.UpdateTeamMember(c.Request.Context(), c.Param("id"), state.TeamMemberPatch{
		Name:   req.Name,
		Role:   req.Role,
		Avatar: req.Avatar,
	})
	if err != nil {
		writeStateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": member})
}

func (h HandlerSet) RemoveTeamMember(c *gin.Context) {
	if _, ok := h.requireMutate(c, policy.PanelTeam); !ok {
		return
	}

	if err := h.store.RemoveTeamMember(c.Request.Context(), c.Param("id")); err != nil {
		writeStateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveTeamMemberByName serves callers that hold a display name instead of
// an id; with duplicate names the first match goes.
func (h HandlerSet) RemoveTeamMemberByName(c *gin.Context) {
	if _, ok := h.requireMutate(c, policy.PanelTeam); !ok {
		return
	}

	if err := h.store.RemoveTeamMemberByName(c.Request.Context(), c.Param("name")); err != nil {
		writeStateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
