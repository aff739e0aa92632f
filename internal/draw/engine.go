package draw

import (
	"fmt"

	"github.com/feedspin/feedspin/internal/domain"
	"github.com/feedspin/feedspin/internal/utils"
)

// entry is one row of the weighted table built for a single draw.
type entry struct {
	kind   domain.OutcomeKind
	prize  *domain.Prize
	weight float64
}

// Engine performs a single weighted draw over a merchant's wheel configuration.
//
// The engine is pure: it never touches stock or persistence. Decrementing prize
// quantity and recording the spin belong to the caller.
type Engine struct {
	rng func() float64 // uniform in [0,1)
}

// NewEngine creates a draw engine using math/rand randomness.
func NewEngine() *Engine {
	return &Engine{rng: utils.RandomFloat}
}

// NewEngineWithRNG creates a draw engine with an injected random source.
// Tests pass a seeded or fixed function for deterministic outcomes.
func NewEngineWithRNG(rng func() float64) *Engine {
	return &Engine{rng: rng}
}

// Draw selects one outcome from the configured wheel.
//
// The weighted table is built in a stable order: in-stock prizes in their
// configured order, then unlucky, then retry. Out-of-stock prizes are excluded
// before weighting so they are never selectable. Weights are normalized by
// their sum, so a stored configuration that drifts from a 100 total still
// partitions fairly. A non-positive total is a configuration error.
func (e *Engine) Draw(cfg domain.WheelConfig) (domain.DrawResult, error) {
	table, total := buildTable(cfg)
	if total <= 0 {
		return domain.DrawResult{}, fmt.Errorf("%w: total weight %v", domain.ErrWheelNotConfigured, total)
	}

	r := e.rng() * total
	var cumulative float64
	for i := range table {
		cumulative += table[i].weight
		if r < cumulative {
			return resultFor(table[i]), nil
		}
	}

	// Floating point edge: r landed exactly on the total. The last positive-
	// weight entry owns the closing bound.
	for i := len(table) - 1; i >= 0; i-- {
		if table[i].weight > 0 {
			return resultFor(table[i]), nil
		}
	}
	return domain.DrawResult{}, fmt.Errorf("%w: no drawable entries", domain.ErrWheelNotConfigured)
}

func buildTable(cfg domain.WheelConfig) ([]entry, float64) {
	table := make([]entry, 0, len(cfg.Prizes)+2)
	var total float64

	for i := range cfg.Prizes {
		p := &cfg.Prizes[i]
		if !p.InStock() || p.ProbabilityWeight <= 0 {
			continue
		}
		table = append(table, entry{kind: domain.OutcomePrize, prize: p, weight: p.ProbabilityWeight})
		total += p.ProbabilityWeight
	}
	if cfg.UnluckyWeight > 0 {
		table = append(table, entry{kind: domain.OutcomeUnlucky, weight: cfg.UnluckyWeight})
		total += cfg.UnluckyWeight
	}
	if cfg.RetryWeight > 0 {
		table = append(table, entry{kind: domain.OutcomeRetry, weight: cfg.RetryWeight})
		total += cfg.RetryWeight
	}
	return table, total
}

func resultFor(en entry) domain.DrawResult {
	if en.kind != domain.OutcomePrize {
		return domain.DrawResult{Kind: en.kind}
	}
	return domain.DrawResult{
		Kind:      domain.OutcomePrize,
		PrizeID:   en.prize.ID,
		PrizeName: en.prize.Name,
	}
}
