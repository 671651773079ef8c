package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quadplus/api/internal/models"
	"quadplus/api/internal/policy"
)

func (h HandlerSet) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"settings": h.store.Settings()})
}

type updateSettingsRequest struct {
	ProfileName   string `json:"profileName" binding:"required"`
	ProfileEmail  string `json:"profileEmail" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	Preferences   string `json:"preferences" binding:"required"`
	Notifications string `json:"notifications" binding:"required"`
}

func (h HandlerSet) UpdateSettings(c *gin.Context) {
	if _, ok := h.requireMutate(c, policy.PanelSettings); !ok {
		return
	}

	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	settings := h.store.UpdateSettings(models.SettingsData{
		ProfileName:   req.ProfileName,
		ProfileEmail:  req.ProfileEmail,
		Password:      req.Password,
		Preferences:   req.Preferences,
		Notifications: req.Notifications,
	})
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
