package engine

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreCandidate_DefaultWeights(t *testing.T) {
	// 0.6*200 + 0.4*3 = 121.2
	got := scoreCandidate(dec("200"), 3, Preferences{}, "BlueDart")
	if !almostEqual(got, 121.2) {
		t.Fatalf("expected 121.2, got %v", got)
	}
}

func TestScoreCandidate_OverrideWeights(t *testing.T) {
	cost, sla := 1.0, 0.0
	prefs := Preferences{WeightCost: &cost, WeightSLA: &sla}
	got := scoreCandidate(dec("200"), 3, prefs, "BlueDart")
	if !almostEqual(got, 200) {
		t.Fatalf("expected 200, got %v", got)
	}
}

func TestScoreCandidate_PreferredCarrierBonus(t *testing.T) {
	prefs := Preferences{PreferredCarriers: []string{"bluedart"}}
	base := scoreCandidate(dec("200"), 3, Preferences{}, "BlueDart")
	got := scoreCandidate(dec("200"), 3, prefs, "BlueDart")
	if !almostEqual(got, base*0.9) {
		t.Fatalf("expected %v, got %v", base*0.9, got)
	}
	// other carriers keep their own score
	other := scoreCandidate(dec("200"), 3, prefs, "Delhivery")
	if !almostEqual(other, base) {
		t.Fatalf("non-preferred carrier score changed: expected %v, got %v", base, other)
	}
}

func TestSelectBest_Minimizes(t *testing.T) {
	scored := []scoredCandidate{
		{candidate: RateCandidate{RateID: 1}, score: 121.2},
		{candidate: RateCandidate{RateID: 2}, score: 80.5},
		{candidate: RateCandidate{RateID: 3}, score: 99.0},
	}
	best := selectBest(scored)
	if best.candidate.RateID != 2 {
		t.Fatalf("expected rate 2, got %d", best.candidate.RateID)
	}
}

func TestSelectBest_TieKeepsArrivalOrder(t *testing.T) {
	scored := []scoredCandidate{
		{candidate: RateCandidate{RateID: 7}, score: 50},
		{candidate: RateCandidate{RateID: 8}, score: 50},
	}
	best := selectBest(scored)
	if best.candidate.RateID != 7 {
		t.Fatalf("tie should keep the earlier candidate, got rate %d", best.candidate.RateID)
	}
}

func TestSelectBest_Empty(t *testing.T) {
	if best := selectBest(nil); best != nil {
		t.Fatalf("expected nil for empty input, got %+v", best)
	}
}
