package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/memories-backend-go/internal/models"
	"github.com/jengzang/memories-backend-go/internal/service"
	"github.com/jengzang/memories-backend-go/pkg/response"
)

// MemoryHandler handles HTTP requests for memory drafts
type MemoryHandler struct {
	service *service.MemoryService
}

// NewMemoryHandler creates a new memory handler
func NewMemoryHandler(service *service.MemoryService) *MemoryHandler {
	return &MemoryHandler{service: service}
}

// Rebuild handles POST /api/v1/memories/rebuild
func (h *MemoryHandler) Rebuild(c *gin.Context) {
	result, err := h.service.Rebuild()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to rebuild memories", err)
		return
	}

	response.Success(c, result)
}

// GetDrafts handles GET /api/v1/memories
func (h *MemoryHandler) GetDrafts(c *gin.Context) {
	var filter models.ClusterDraftFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	drafts, total, err := h.service.GetDrafts(filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get memory drafts", err)
		return
	}

	// Metadata must match the page the repository actually served
	page, pageSize := models.NormalizePage(filter.Page, filter.PageSize)
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	response.Success(c, gin.H{
		"data":       drafts,
		"total":      total,
		"page":       page,
		"pageSize":   pageSize,
		"totalPages": totalPages,
	})
}

// GetHome handles GET /api/v1/memories/home
func (h *MemoryHandler) GetHome(c *gin.Context) {
	home, err := h.service.LocateHome()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to locate home", err)
		return
	}

	if home == nil {
		response.Error(c, http.StatusNotFound, "Not enough night-time GPS data to locate home", nil)
		return
	}

	response.Success(c, home)
}
