package cluster

import (
	"fmt"
	"time"

	"github.com/jengzang/memories-backend-go/internal/models"
)

// SessionConfig parameterizes a SessionBuilder. Only MaxGap and MinItems
// are required; the function hooks default to permissive behavior.
type SessionConfig struct {
	// MaxGap closes a session when the gap to the previous item exceeds it
	MaxGap time.Duration

	// MinItems drops sessions below this size
	MinItems int

	// Include filters candidate items. Nil admits every timestamped item.
	Include func(*models.MediaItem) bool

	// GroupKey assigns items to independent groups that are sessioned
	// separately (person signature, weather day, ...). Nil uses a single
	// implicit group.
	GroupKey func(*models.MediaItem) string

	// SplitBefore forces a session boundary before next even when the time
	// gap is small (e.g. large movement between consecutive shots)
	SplitBefore func(prev, next *models.MediaItem) bool

	// Valid rejects a finished session (e.g. spatial compactness)
	Valid func(members []*models.MediaItem) bool

	// Params supplies extra draft parameters per session
	Params func(members []*models.MediaItem) Params
}

// SessionBuilder splits a chronological media stream into sessions by
// inter-item time gap. Concrete strategies supply the predicates; the
// builder owns ordering, grouping and draft construction.
type SessionBuilder struct {
	algorithm string
	cfg       SessionConfig
}

// NewSessionBuilder creates a session builder for the given algorithm
func NewSessionBuilder(algorithm string, cfg SessionConfig) (*SessionBuilder, error) {
	if algorithm == "" {
		return nil, fmt.Errorf("session builder: algorithm must not be empty")
	}
	if cfg.MaxGap <= 0 {
		return nil, fmt.Errorf("session builder: maxGap must be positive, got %v", cfg.MaxGap)
	}
	if cfg.MinItems < 1 {
		return nil, fmt.Errorf("session builder: minItems must be at least 1, got %d", cfg.MinItems)
	}
	return &SessionBuilder{algorithm: algorithm, cfg: cfg}, nil
}

// Build returns one draft per qualifying session. Data sparsity is never
// an error: too few items simply yield no drafts.
func (b *SessionBuilder) Build(items []*models.MediaItem) []*Draft {
	var included []*models.MediaItem
	for _, m := range items {
		if !m.HasTime() {
			continue
		}
		if b.cfg.Include != nil && !b.cfg.Include(m) {
			continue
		}
		included = append(included, m)
	}
	if len(included) == 0 {
		return nil
	}

	SortByTime(included)

	// Bucket by group key, keeping first-seen group order for determinism
	var groupOrder []string
	groups := make(map[string][]*models.MediaItem)
	for _, m := range included {
		key := ""
		if b.cfg.GroupKey != nil {
			key = b.cfg.GroupKey(m)
		}
		if _, ok := groups[key]; !ok {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], m)
	}

	var drafts []*Draft
	for _, key := range groupOrder {
		drafts = append(drafts, b.buildGroup(groups[key])...)
	}
	return drafts
}

func (b *SessionBuilder) buildGroup(items []*models.MediaItem) []*Draft {
	var drafts []*Draft
	var session []*models.MediaItem

	flush := func() {
		if len(session) >= b.cfg.MinItems {
			if b.cfg.Valid == nil || b.cfg.Valid(session) {
				drafts = append(drafts, b.emit(session))
			}
		}
		session = nil
	}

	for _, m := range items {
		if len(session) > 0 {
			prev := session[len(session)-1]
			if Gap(prev, m) > b.cfg.MaxGap || (b.cfg.SplitBefore != nil && b.cfg.SplitBefore(prev, m)) {
				flush()
			}
		}
		session = append(session, m)
	}
	flush()

	return drafts
}

func (b *SessionBuilder) emit(members []*models.MediaItem) *Draft {
	d := NewDraft(b.algorithm, members)
	if b.cfg.Params != nil {
		for k, v := range b.cfg.Params(members) {
			d.SetParam(k, v)
		}
	}
	return d
}
