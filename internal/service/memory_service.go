package service

import (
	"fmt"
	"log"

	"github.com/jengzang/memories-backend-go/internal/cluster"
	"github.com/jengzang/memories-backend-go/internal/models"
	"github.com/jengzang/memories-backend-go/internal/repository"
	"github.com/jengzang/memories-backend-go/internal/vacation"
)

// MemoryService runs the registered clustering strategies over the media
// collection and persists the resulting drafts
type MemoryService struct {
	media  *repository.MediaRepository
	drafts *repository.DraftRepository
}

// NewMemoryService creates a new memory service
func NewMemoryService(media *repository.MediaRepository, drafts *repository.DraftRepository) *MemoryService {
	return &MemoryService{media: media, drafts: drafts}
}

// RebuildResult summarizes one rebuild pass
type RebuildResult struct {
	MediaCount int            `json:"mediaCount"`
	Strategies map[string]int `json:"strategies"` // drafts per strategy
	Total      int            `json:"total"`
}

// Rebuild loads the full collection, runs every registered strategy,
// overlays the scope context and replaces the persisted drafts
func (s *MemoryService) Rebuild() (*RebuildResult, error) {
	items, err := s.media.GetAllMediaItems()
	if err != nil {
		return nil, fmt.Errorf("failed to load media: %w", err)
	}

	log.Printf("[MemoryService] Rebuilding memories over %d media items", len(items))

	scope := cluster.BuildContext(items)

	result := &RebuildResult{
		MediaCount: len(items),
		Strategies: make(map[string]int),
	}

	for _, name := range cluster.Names() {
		strategy, err := cluster.Get(name)
		if err != nil {
			return nil, fmt.Errorf("failed to construct strategy %s: %w", name, err)
		}

		drafts, err := strategy.Cluster(items)
		if err != nil {
			return nil, fmt.Errorf("strategy %s failed: %w", name, err)
		}

		for _, d := range drafts {
			scope.ApplyToDraft(d)
		}

		if err := s.drafts.ReplaceDrafts(name, drafts); err != nil {
			return nil, fmt.Errorf("failed to persist drafts for %s: %w", name, err)
		}

		result.Strategies[name] = len(drafts)
		result.Total += len(drafts)
		log.Printf("[MemoryService] Strategy %s produced %d drafts", name, len(drafts))
	}

	log.Printf("[MemoryService] Rebuild completed: %d drafts", result.Total)
	return result, nil
}

// GetDrafts retrieves persisted drafts with filtering and pagination
func (s *MemoryService) GetDrafts(filter models.ClusterDraftFilter) ([]models.ClusterDraftRecord, int64, error) {
	return s.drafts.GetDrafts(filter)
}

// LocateHome infers the home descriptor over the current collection
func (s *MemoryService) LocateHome() (*vacation.HomeDescriptor, error) {
	items, err := s.media.GetAllMediaItems()
	if err != nil {
		return nil, fmt.Errorf("failed to load media: %w", err)
	}

	locator, err := vacation.NewHomeLocator(vacation.HomeLocatorConfig{})
	if err != nil {
		return nil, err
	}
	return locator.Locate(items), nil
}
