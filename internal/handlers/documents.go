package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quadplus/api/internal/policy"
)

func (h HandlerSet) ListDocuments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"documents": h.store.Documents()})
}

type addDocumentRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h HandlerSet) AddDocument(c *gin.Context) {
	user, ok := h.requireMutate(c, policy.PanelDocuments)
	if !ok {
		return
	}

	var req addDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "name required"})
		return
	}

	doc, err := h.store.AddDocument(req.Name, user.DisplayName)
	if err != nil {
		writeStateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"document": doc})
}

func documentID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return 0, false
	}
	return id, true
}

type renameDocumentRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h HandlerSet) RenameDocument(c *gin.Context) {
	user, ok := h.requireMutate(c, policy.PanelDocuments)
	if !ok {
		return
	}
	id, ok := documentID(c)
	if !ok {
		return
	}

	var req renameDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "name required"})
		return
	}

	doc, err := h.store.RenameDocument(id, req.Name, user.DisplayName)
	if err != nil {
		writeStateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc})
}

func (h HandlerSet) DeleteDocument(c *gin.Context) {
	user, ok := h.requireMutate(c, policy.PanelDocuments)
	if !ok {
		return
	}
	id, ok := documentID(c)
	if !ok {
		return
	}

	if err := h.store.DeleteDocument(id, user.DisplayName); err != nil {
		writeStateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
