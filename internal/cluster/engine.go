package cluster

import (
	"fmt"
	"sort"

	"github.com/jengzang/memories-backend-go/internal/models"
)

// Strategy is the interface all clustering strategies implement. A
// strategy receives the full media scope and returns its drafts; sparse
// data yields an empty slice, never an error.
type Strategy interface {
	// Name returns the algorithm identifier written to every draft
	Name() string

	// Cluster produces drafts over the given media
	Cluster(items []*models.MediaItem) ([]*Draft, error)
}

// StrategyFactory constructs a strategy with its default configuration.
// Construction may fail on invalid configuration.
type StrategyFactory func() (Strategy, error)

var registry = make(map[string]StrategyFactory)

// Register registers a strategy factory under its algorithm name.
// Called from the init function of each strategy package.
func Register(name string, factory StrategyFactory) {
	registry[name] = factory
}

// Get constructs the named strategy, or errors when it is unknown
func Get(name string) (Strategy, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown clustering strategy: %s", name)
	}
	return factory()
}

// Names returns all registered strategy names in ascending order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
