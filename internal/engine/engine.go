package engine

import (
	"context"
	"fmt"
)

// MetricDecisions is emitted once per successful decision.
const MetricDecisions = "rate_shop_decisions"

// Engine is the rate-shopping orchestrator. It is a pure read-and-compute
// path: reference data is never mutated and concurrent Shop calls are fully
// independent.
type Engine struct {
	checker    *Checker
	candidates CandidateSource
	metrics    MetricSink
}

// New builds an engine over the given sources. metrics may be nil.
func New(zones ZoneSource, coverage CoverageSource, candidates CandidateSource, metrics MetricSink) *Engine {
	return &Engine{
		checker:    NewChecker(zones, coverage),
		candidates: candidates,
		metrics:    metrics,
	}
}

// CheckServiceability runs only the serviceability portion of a rate shop,
// for callers that want the verdict without pricing.
func (e *Engine) CheckServiceability(ctx context.Context, originPincode, destinationPincode string, warehouseID *int64) (ServiceabilityResult, error) {
	return e.checker.Check(ctx, originPincode, destinationPincode, warehouseID)
}

// Shop runs the full decision: serviceability, chargeable weight, candidate
// pricing, scoring, and selection. An unserviceable route or an empty
// candidate set is a valid no-decision result, not an error; errors are
// reserved for collaborator failures.
func (e *Engine) Shop(ctx context.Context, req Request) (Result, error) {
	svc, err := e.checker.Check(ctx, req.OriginPincode, req.DestinationPincode, req.WarehouseID)
	if err != nil {
		return Result{}, fmt.Errorf("serviceability check: %w", err)
	}
	if !svc.Serviceable {
		return Result{Status: StatusNotServiceable, Serviceability: svc}, nil
	}

	chargeable := ChargeableKg(req.WeightGrams, req.LengthCm, req.WidthCm, req.HeightCm)

	candidates, err := e.candidates.ListActiveRateCandidates(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("gather rate candidates: %w", err)
	}
	if len(candidates) == 0 {
		return Result{Status: StatusNoCandidates, Serviceability: svc}, nil
	}

	isODA := svc.IsODADestination()
	odaFee := svc.ODAFee()
	coverageTAT := svc.CoverageTAT()

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		price := PriceCandidate(c, chargeable, isODA, odaFee)
		slaDays := c.EstimatedDays
		if coverageTAT != nil {
			slaDays = *coverageTAT
		}
		scored = append(scored, scoredCandidate{
			candidate: c,
			price:     price,
			slaDays:   slaDays,
			score:     scoreCandidate(price, slaDays, req.Preferences, c.CarrierName),
		})
	}

	best := selectBest(scored)
	decision := &Decision{
		CarrierID:   best.candidate.CarrierID,
		CarrierName: best.candidate.CarrierName,
		RateID:      best.candidate.RateID,
		ServiceName: best.candidate.ServiceName,
		Price:       best.price,
		ETADays:     best.slaDays,
		Score:       best.score,
	}

	if e.metrics != nil {
		e.metrics.EmitMetric(MetricDecisions, 1)
	}
	return Result{Status: StatusDecided, Decision: decision, Serviceability: svc}, nil
}
