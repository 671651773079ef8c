package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quadplus/api/internal/policy"
)

func (h HandlerSet) ListMessages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"messages": h.store.Messages()})
}

type sendMessageRequest struct {
	To      string `json:"to"`
	Content string `json:"content"`
}

// SendMessage appends a message from the acting session. An empty recipient
// or body creates nothing; the register stays untouched.
func (h HandlerSet) SendMessage(c *gin.Context) {
	user, ok := h.requireMutate(c, policy.PanelMessages)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, sent := h.store.SendMessage(user.DisplayName, req.To, req.Content)
	if !sent {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "recipient and content required"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
