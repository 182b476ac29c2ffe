package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/memories-backend-go/internal/models"
	"github.com/jengzang/memories-backend-go/internal/service"
	"github.com/jengzang/memories-backend-go/pkg/response"
)

// MediaHandler handles HTTP requests for media items
type MediaHandler struct {
	service *service.MediaService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(service *service.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// GetMediaItems handles GET /api/v1/media
func (h *MediaHandler) GetMediaItems(c *gin.Context) {
	var filter models.MediaItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	items, total, err := h.service.GetMediaItems(filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get media items", err)
		return
	}

	// Metadata must match the page the repository actually served
	page, pageSize := models.NormalizePage(filter.Page, filter.PageSize)
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	response.Success(c, models.MediaItemsResponse{
		Data:       items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// IngestMediaItems handles POST /api/v1/media
func (h *MediaHandler) IngestMediaItems(c *gin.Context) {
	var items []models.MediaItem
	if err := c.ShouldBindJSON(&items); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(items) == 0 {
		response.Error(c, http.StatusBadRequest, "No media items provided", nil)
		return
	}

	if err := h.service.IngestMediaItems(items); err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to ingest media items", err)
		return
	}

	response.Success(c, gin.H{
		"ingested": len(items),
	})
}
