package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/calmasana/calmasana-backend/internal/domain"
	"github.com/calmasana/calmasana-backend/internal/platform/logger"
	"github.com/calmasana/calmasana-backend/internal/services"
)

type QuestionnaireHandler struct {
	log        *logger.Logger
	profileSvc services.ProfileService
}

func NewQuestionnaireHandler(log *logger.Logger, profileSvc services.ProfileService) *QuestionnaireHandler {
	return &QuestionnaireHandler{
		log:        log.With("handler", "QuestionnaireHandler"),
		profileSvc: profileSvc,
	}
}

type questionnaireRequest struct {
	UserID  uuid.UUID      `json:"user_id"`
	Profile domain.Profile `json:"profile"`
}

// POST /api/questionnaire
// Finalizes the questionnaire: derives the BMI, ranks poses, persists the
// submission. An empty pose list is a valid response.
func (h *QuestionnaireHandler) Submit(c *gin.Context) {
	var req questionnaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	result, err := h.profileSvc.Submit(c.Request.Context(), req.UserID, req.Profile)
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	RespondOK(c, result)
}
