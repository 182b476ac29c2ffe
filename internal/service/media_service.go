package service

import (
	"github.com/jengzang/memories-backend-go/internal/models"
	"github.com/jengzang/memories-backend-go/internal/repository"
)

// MediaService handles business logic for media items
type MediaService struct {
	repo *repository.MediaRepository
}

// NewMediaService creates a new media service
func NewMediaService(repo *repository.MediaRepository) *MediaService {
	return &MediaService{repo: repo}
}

// GetMediaItems retrieves media items with filtering and pagination
func (s *MediaService) GetMediaItems(filter models.MediaItemFilter) ([]models.MediaItem, int64, error) {
	return s.repo.GetMediaItems(filter)
}

// IngestMediaItems stores a batch of media metadata
func (s *MediaService) IngestMediaItems(items []models.MediaItem) error {
	return s.repo.InsertMediaItems(items)
}
