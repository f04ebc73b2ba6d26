package engine

import "github.com/shopspring/decimal"

// PincodeZone is static zone metadata for a single pincode. Reference data,
// maintained by an external admin process and read-only here.
type PincodeZone struct {
	Pincode string
	Zone    string
	ODA     bool
}

// WarehouseCoverage is an optional per-warehouse override for a destination
// pincode. At most one row exists per (warehouse, pincode) pair.
// MinWeightGrams/MaxWeightGrams are carried through for future filtering but
// are not consulted when scoring.
type WarehouseCoverage struct {
	WarehouseID    int64
	Pincode        string
	TATDays        *int
	IsODA          bool
	ODAFee         *decimal.Decimal
	MinWeightGrams *int64
	MaxWeightGrams *int64
}

// Surcharge is one pricing rule owned by a carrier. A name containing "oda"
// (case-insensitive) marks it as conditional on the destination being out of
// delivery area. Percent and Flat may each be absent.
type Surcharge struct {
	Name    string
	Percent *decimal.Decimal
	Flat    *decimal.Decimal
}

// RateCandidate is one (carrier, service) offering with its active surcharges
// already attached. Inactive surcharges are filtered out at gathering time.
type RateCandidate struct {
	RateID        int64
	CarrierID     int64
	CarrierName   string
	ServiceName   string
	BaseRate      decimal.Decimal
	EstimatedDays int
	Surcharges    []Surcharge
}

// Preferences lets the caller bias the cost/SLA tradeoff. Weights need not
// sum to 1; nil weights fall back to the defaults.
type Preferences struct {
	WeightCost        *float64
	WeightSLA         *float64
	PreferredCarriers []string
}

const (
	DefaultWeightCost = 0.6
	DefaultWeightSLA  = 0.4
)

// CostWeight returns the caller's cost weight or the default.
func (p Preferences) CostWeight() float64 {
	if p.WeightCost != nil {
		return *p.WeightCost
	}
	return DefaultWeightCost
}

// SLAWeight returns the caller's SLA weight or the default.
func (p Preferences) SLAWeight() float64 {
	if p.WeightSLA != nil {
		return *p.WeightSLA
	}
	return DefaultWeightSLA
}

// Request is one rate-shop invocation. Pincode format is upstream's problem;
// all three dimensions must be present for volumetric weight to count.
type Request struct {
	OriginPincode      string
	DestinationPincode string
	WeightGrams        int64
	LengthCm           float64
	WidthCm            float64
	HeightCm           float64
	WarehouseID        *int64
	Preferences        Preferences
}

// Decision is the winning candidate after pricing and scoring.
type Decision struct {
	CarrierID   int64
	CarrierName string
	RateID      int64
	ServiceName string
	Price       decimal.Decimal
	ETADays     int
	Score       float64
}

// Status classifies the outcome of a Shop call. Both no-decision outcomes are
// valid results, not errors.
type Status string

const (
	StatusDecided        Status = "decided"
	StatusNotServiceable Status = "not_serviceable"
	StatusNoCandidates   Status = "no_candidates"
)

// Result is the full outcome of a Shop call. Decision is non-nil only when
// Status is StatusDecided. Serviceability is always populated so callers can
// tell which side of an unserviceable route failed.
type Result struct {
	Status         Status
	Decision       *Decision
	Serviceability ServiceabilityResult
}
