package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/calmasana/calmasana-backend/internal/platform/logger"
	"github.com/calmasana/calmasana-backend/internal/services"
)

type ReportHandler struct {
	log       *logger.Logger
	reportSvc services.ReportService
}

func NewReportHandler(log *logger.Logger, reportSvc services.ReportService) *ReportHandler {
	return &ReportHandler{
		log:       log.With("handler", "ReportHandler"),
		reportSvc: reportSvc,
	}
}

// GET /api/report?user_id=...
func (h *ReportHandler) Get(c *gin.Context) {
	raw := c.Query("user_id")
	if raw == "" {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, fmt.Errorf("user_id query parameter is required"))
		return
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeBadRequest, err)
		return
	}
	report, err := h.reportSvc.Build(c.Request.Context(), userID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	RespondOK(c, report)
}
