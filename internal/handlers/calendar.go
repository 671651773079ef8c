package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"quadplus/api/internal/policy"
	"quadplus/api/internal/state"
)

func (h HandlerSet) ListMeetings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"meetings": h.store.Meetings()})
}

type addMeetingRequest struct {
	Title      string   `json:"title" binding:"required"`
	Date       string   `json:"date" binding:"required"`
	AssignedTo []string `json:"assignedTo" binding:"required,min=1"`
}

func (h HandlerSet) AddMeeting(c *gin.Context) {
	if _, ok := h.requireMutate(c, policy.PanelCalendar); !ok {
		return
	}

	var req addMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Please fill all meeting details."})
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	meeting, err := h.store.AddMeeting(req.Title, req.Date, req.AssignedTo)
	if err != nil {
		writeStateError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"meeting": meeting})
}

func meetingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meeting id"})
		return 0, false
	}
	return id, true
}

type updateMeetingRequest struct {
	Title      *string   `json:"title"`
	Date       *string   `json:"date"`
	AssignedTo *[]string `json:"assignedTo"`
}

func (h HandlerSet) UpdateMeeting(c *gin.Context) {
	if _, ok := h.requireMutate(c, policy.PanelCalendar); !ok {
		return
	}
	id, ok := meetingID(c)
	if !ok {
		return
	}

	var req updateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Date != nil {
		if _, err := time.Parse("2006-01-02", *req.Date); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
	}

	meeting, err := h.store.UpdateMeeting(id, state.MeetingPatch{
		Title:      req.Title,
		Date:       req.Date,
		AssignedTo: req.AssignedTo,
	})
	if err != nil {
		writeStateError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meeting": meeting})
}

func (h HandlerSet) RemoveMeeting(c *gin.Context) {
	if _, ok := h.requireMutate(c, policy.PanelCalendar); !ok {
		return
	}
	id, ok := meetingID(c)
	if !ok {
		return
	}

	if err := h.store.RemoveMeeting(id); err != nil {
		writeStateError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
