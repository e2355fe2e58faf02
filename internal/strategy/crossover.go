package strategy

import (
	"fmt"

	"github.com/quantlab-oss/tradekit/internal/indicator"
	"github.com/quantlab-oss/tradekit/internal/types"
)

// Crossover emits a long signal whenever a fast indicator is above a
// slow indicator on the close price series. The comparison is purely
// per-index; the engine downstream reads crossover instants out of
// adjacent signal values.
type Crossover struct {
	fast indicator.Indicator
	slow indicator.Indicator
}

// NewCrossover creates a crossover rule from a fast and a slow
// indicator. Indicators are stateless and cheap, so the strategy
// simply owns its instances; no sharing is needed.
func NewCrossover(fast, slow indicator.Indicator) *Crossover {
	return &Crossover{
		fast: fast,
		slow: slow,
	}
}

// Name returns a human-readable name for the rule.
func (c *Crossover) Name() string {
	return fmt.Sprintf("crossover(%s>%s)", c.fast.Name(), c.slow.Name())
}

// GenerateSignals implements the Strategy interface. A bar gets a long
// signal only when both indicator values are defined and the fast one
// is strictly above the slow one; warm-up indexes always resolve to 0.
func (c *Crossover) GenerateSignals(bars []types.Bar) []int {
	if len(bars) == 0 {
		return []int{}
	}

	closes := types.ClosePrices(bars)

	fast := c.fast.Compute(closes)
	slow := c.slow.Compute(closes)

	signals := make([]int, len(bars))

	for i := range bars {
		if indicator.IsDefined(fast[i]) && indicator.IsDefined(slow[i]) && fast[i] > slow[i] {
			signals[i] = 1
		}
	}

	return signals
}
