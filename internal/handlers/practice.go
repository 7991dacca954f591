package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/calmasana/calmasana-backend/internal/platform/logger"
	"github.com/calmasana/calmasana-backend/internal/services"
)

type PracticeHandler struct {
	log         *logger.Logger
	practiceSvc services.PracticeService
}

func NewPracticeHandler(log *logger.Logger, practiceSvc services.PracticeService) *PracticeHandler {
	return &PracticeHandler{
		log:         log.With("handler", "PracticeHandler"),
		practiceSvc: practiceSvc,
	}
}

type startSessionRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Pose   string    `json:"pose"`
}

// POST /api/practice/sessions
func (h *PracticeHandler) Start(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	sessionID, pose, err := h.practiceSvc.Start(c.Request.Context(), req.UserID, req.Pose)
	if err != nil {
		status := http.StatusBadRequest
		if strings.Contains(err.Error(), "unknown pose") {
			status = http.StatusNotFound
		}
		RespondError(c, status, CodeBadRequest, err)
		return
	}
	RespondCreated(c, gin.H{"session_id": sessionID, "pose": pose})
}

// POST /api/practice/sessions/:id/frames
// Evaluates one detector frame against the session's target pose.
func (h *PracticeHandler) Frame(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	var req services.FrameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	feedback, err := h.practiceSvc.EvaluateFrame(sessionID, req)
	if err != nil {
		RespondError(c, http.StatusNotFound, CodeNotFound, err)
		return
	}
	RespondOK(c, feedback)
}

type voiceRequest struct {
	Enabled bool `json:"enabled"`
}

// POST /api/practice/sessions/:id/voice
func (h *PracticeHandler) Voice(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	var req voiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	phrase, err := h.practiceSvc.SetVoice(sessionID, req.Enabled)
	if err != nil {
		RespondError(c, http.StatusNotFound, CodeNotFound, err)
		return
	}
	RespondOK(c, gin.H{"enabled": req.Enabled, "announce": phrase})
}

// POST /api/practice/sessions/:id/complete
// Persistence failures are retryable: the summary is kept in memory and the
// same request can be replayed.
func (h *PracticeHandler) Complete(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	summary, err := h.practiceSvc.Complete(c.Request.Context(), sessionID)
	if err != nil {
		if strings.Contains(err.Error(), "no active session") {
			RespondError(c, http.StatusNotFound, CodeNotFound, err)
			return
		}
		RespondError(c, http.StatusServiceUnavailable, CodeInternal, err)
		return
	}
	RespondOK(c, summary)
}
