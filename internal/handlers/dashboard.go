package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"quadplus/api/internal/middleware"
	"quadplus/api/internal/policy"
	"quadplus/api/internal/state"
)

// Overview returns the role-filtered sidebar, stat tiles, and the session's
// visible projects.
func (h HandlerSet) Overview(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	counts := h.store.Counts()
	recent := policy.VisibleProjects(user.Role, user.DisplayName, h.store.Projects())

	c.JSON(http.StatusOK, gin.H{
		"navItems": policy.VisibleNavItems(user.Role),
		"stats": policy.VisibleStats(user.Role, policy.StatCounts{
			Projects:    counts.Projects,
			TeamMembers: counts.TeamMembers,
			Meetings:    counts.Meetings,
		}),
		"recentProjects": projectViews(user.Role, recent),
	})
}

func (h HandlerSet) ListNotifications(c *gin.Context) {
	notifications := h.store.Notifications()
	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"count":         len(notifications),
		"hasUnread":     len(notifications) > 0,
	})
}

// writeStateError maps register errors onto HTTP statuses.
func writeStateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, state.ErrProjectNotFound),
		errors.Is(err, state.ErrMemberNotFound),
		errors.Is(err, state.ErrDocumentNotFound),
		errors.Is(err, state.ErrMeetingNotFound),
		errors.Is(err, state.ErrFileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, state.ErrMissingFields), errors.Is(err, state.ErrNoPackage):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
