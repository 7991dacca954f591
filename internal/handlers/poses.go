package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/calmasana/calmasana-backend/internal/poses"
)

type PoseHandler struct {
	catalog *poses.Catalog
}

func NewPoseHandler(catalog *poses.Catalog) *PoseHandler {
	return &PoseHandler{catalog: catalog}
}

// GET /api/poses
func (h *PoseHandler) List(c *gin.Context) {
	RespondOK(c, gin.H{
		"poses":       h.catalog.All(),
		"connections": poses.Connections(),
	})
}

// GET /api/poses/:name
func (h *PoseHandler) Get(c *gin.Context) {
	name := c.Param("name")
	pose, ok := h.catalog.ByName(name)
	if !ok {
		RespondError(c, http.StatusNotFound, CodeNotFound, fmt.Errorf("unknown pose %q", name))
		return
	}
	RespondOK(c, pose)
}
