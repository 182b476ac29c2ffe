package vacation

import (
	"fmt"

	"github.com/jengzang/memories-backend-go/internal/cluster"
)

// Assembler converts detected away runs into cluster drafts. Scoring and
// draft construction are delegated to the score calculator; a run that
// yields no draft is silently skipped.
type Assembler struct {
	algorithm string
	scorer    *ScoreCalculator
}

// NewAssembler creates an assembler emitting drafts under the given
// algorithm name
func NewAssembler(algorithm string, scorer *ScoreCalculator) (*Assembler, error) {
	if algorithm == "" {
		return nil, fmt.Errorf("vacation assembler: algorithm must not be empty")
	}
	if scorer == nil {
		return nil, fmt.Errorf("vacation assembler: score calculator is required")
	}
	return &Assembler{algorithm: algorithm, scorer: scorer}, nil
}

// Assemble classifies every candidate run and builds its draft. Empty or
// rejected runs produce no draft and no error.
func (a *Assembler) Assemble(runs [][]string, days map[string]*DaySummary, home *HomeDescriptor) []*cluster.Draft {
	var drafts []*cluster.Draft
	for _, run := range runs {
		if len(run) == 0 {
			continue
		}
		scored := a.scorer.Classify(run, days)
		draft := a.scorer.BuildDraft(a.algorithm, run, scored, days, home)
		if draft == nil {
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts
}
