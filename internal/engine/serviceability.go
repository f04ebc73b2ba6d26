package engine

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ServiceabilityResult is the verdict for one origin/destination pair and the
// single source of truth for downstream ODA determination. Zones and coverage
// found during the check are populated even when the route is unserviceable,
// so callers can diagnose which side failed.
type ServiceabilityResult struct {
	Serviceable     bool
	OriginZone      *PincodeZone
	DestinationZone *PincodeZone
	Coverage        *WarehouseCoverage
}

// IsODADestination reports whether either the destination zone or the
// warehouse coverage row flags the destination as out of delivery area.
func (r ServiceabilityResult) IsODADestination() bool {
	if r.DestinationZone != nil && r.DestinationZone.ODA {
		return true
	}
	return r.Coverage != nil && r.Coverage.IsODA
}

// ODAFee is the warehouse-level flat ODA fee, or zero when no coverage row
// carries one.
func (r ServiceabilityResult) ODAFee() decimal.Decimal {
	if r.Coverage != nil && r.Coverage.ODAFee != nil {
		return *r.Coverage.ODAFee
	}
	return decimal.Zero
}

// CoverageTAT is the warehouse-specific turnaround override in days, or nil.
func (r ServiceabilityResult) CoverageTAT() *int {
	if r.Coverage != nil {
		return r.Coverage.TATDays
	}
	return nil
}

// Checker composes zone and coverage lookups into a serviceability verdict.
type Checker struct {
	zones    ZoneSource
	coverage CoverageSource
}

func NewChecker(zones ZoneSource, coverage CoverageSource) *Checker {
	return &Checker{zones: zones, coverage: coverage}
}

// Check resolves the origin zone, destination zone, and optional warehouse
// coverage for the destination concurrently. Empty pincodes fail closed with
// no lookups issued. Lookup errors are infrastructure failures and propagate;
// a missing row is not an error.
func (c *Checker) Check(ctx context.Context, originPincode, destinationPincode string, warehouseID *int64) (ServiceabilityResult, error) {
	var res ServiceabilityResult
	if strings.TrimSpace(originPincode) == "" || strings.TrimSpace(destinationPincode) == "" {
		return res, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zone, err := c.zones.GetZone(ctx, originPincode)
		res.OriginZone = zone
		return err
	})
	g.Go(func() error {
		zone, err := c.zones.GetZone(ctx, destinationPincode)
		res.DestinationZone = zone
		return err
	})
	if warehouseID != nil {
		id := *warehouseID
		g.Go(func() error {
			cov, err := c.coverage.GetWarehouseCoverage(ctx, id, destinationPincode)
			res.Coverage = cov
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return ServiceabilityResult{}, err
	}

	res.Serviceable = res.OriginZone != nil && res.DestinationZone != nil
	return res, nil
}
