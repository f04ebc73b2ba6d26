package engine

import "context"

// ZoneSource resolves static zone metadata for a pincode. A missing pincode
// returns (nil, nil); errors are reserved for infrastructure failures.
type ZoneSource interface {
	GetZone(ctx context.Context, pincode string) (*PincodeZone, error)
}

// CoverageSource resolves the warehouse-specific override for a destination
// pincode. Absence returns (nil, nil) and means "fall back to zone-level ODA".
type CoverageSource interface {
	GetWarehouseCoverage(ctx context.Context, warehouseID int64, pincode string) (*WarehouseCoverage, error)
}

// CandidateSource supplies every shipping rate joined to its owning carrier,
// with that carrier's active surcharges attached. An empty slice is a valid
// outcome and means no pricing data exists.
type CandidateSource interface {
	ListActiveRateCandidates(ctx context.Context) ([]RateCandidate, error)
}

// MetricSink receives fire-and-forget counter increments. Implementations
// must never block or fail the caller.
type MetricSink interface {
	EmitMetric(name string, delta int)
}
