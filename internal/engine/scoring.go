package engine

import (
	"strings"

	"github.com/shopspring/decimal"
)

// preferredBonus scales a preferred carrier's combined score down by 10%,
// applied after the cost/SLA combination.
const preferredBonus = 0.9

type scoredCandidate struct {
	candidate RateCandidate
	price     decimal.Decimal
	slaDays   int
	score     float64
}

// scoreCandidate combines price and SLA days into one score. Lower is better
// on both axes; the engine minimizes.
func scoreCandidate(price decimal.Decimal, slaDays int, prefs Preferences, carrierName string) float64 {
	score := prefs.CostWeight()*price.InexactFloat64() + prefs.SLAWeight()*float64(slaDays)
	if isPreferredCarrier(carrierName, prefs.PreferredCarriers) {
		score *= preferredBonus
	}
	return score
}

func isPreferredCarrier(name string, preferred []string) bool {
	for _, p := range preferred {
		if strings.EqualFold(name, p) {
			return true
		}
	}
	return false
}

// selectBest picks the candidate with the lowest score. Ties keep the earlier
// candidate, so ordering is stable with respect to gathering order.
func selectBest(scored []scoredCandidate) *scoredCandidate {
	if len(scored) == 0 {
		return nil
	}
	best := &scored[0]
	for i := 1; i < len(scored); i++ {
		if scored[i].score < best.score {
			best = &scored[i]
		}
	}
	return best
}
