package cluster

import (
	"fmt"
	"sort"

	"github.com/jengzang/memories-backend-go/internal/models"
)

// KeyedConfig parameterizes a KeyedGrouper
type KeyedConfig struct {
	// Include filters candidate items. Nil admits everything.
	Include func(*models.MediaItem) bool

	// Key derives the bucket key for an item ("2006-01", device+date, ...).
	// Returning false skips the item.
	Key func(*models.MediaItem) (string, bool)

	// Params builds the draft parameters for one bucket. Returning nil
	// rejects the bucket, which doubles as the eligibility gate (minimum
	// member count, minimum distinct sub-groups, ...).
	Params func(key string, members []*models.MediaItem) Params
}

// KeyedGrouper buckets items by an arbitrary derived key and emits one
// draft per accepted bucket
type KeyedGrouper struct {
	algorithm string
	cfg       KeyedConfig
}

// NewKeyedGrouper creates a keyed grouper. The key function is required.
func NewKeyedGrouper(algorithm string, cfg KeyedConfig) (*KeyedGrouper, error) {
	if algorithm == "" {
		return nil, fmt.Errorf("keyed grouper: algorithm must not be empty")
	}
	if cfg.Key == nil {
		return nil, fmt.Errorf("keyed grouper: key function is required")
	}
	return &KeyedGrouper{algorithm: algorithm, cfg: cfg}, nil
}

// Build returns one draft per bucket whose Params hook accepts it.
// Buckets are emitted in ascending key order.
func (g *KeyedGrouper) Build(items []*models.MediaItem) []*Draft {
	buckets := make(map[string][]*models.MediaItem)
	for _, m := range items {
		if g.cfg.Include != nil && !g.cfg.Include(m) {
			continue
		}
		key, ok := g.cfg.Key(m)
		if !ok {
			continue
		}
		buckets[key] = append(buckets[key], m)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var drafts []*Draft
	for _, key := range keys {
		members := buckets[key]
		SortByTime(members)

		var params Params
		if g.cfg.Params != nil {
			params = g.cfg.Params(key, members)
			if params == nil {
				continue
			}
		}

		d := NewDraft(g.algorithm, members)
		for k, v := range params {
			d.SetParam(k, v)
		}
		drafts = append(drafts, d)
	}
	return drafts
}
