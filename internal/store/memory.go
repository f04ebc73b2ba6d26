package store

import (
	"context"

	"github.com/shopspring/decimal"

	"rateshop/internal/engine"
)

// Memory serves reference data from in-process tables. It backs unit tests
// and the "memory" backend for local runs without a database.
type Memory struct {
	zones      map[string]engine.PincodeZone
	coverage   map[coverageKey]engine.WarehouseCoverage
	candidates []engine.RateCandidate
}

type coverageKey struct {
	warehouseID int64
	pincode     string
}

func NewMemory() *Memory {
	return &Memory{
		zones:    make(map[string]engine.PincodeZone),
		coverage: make(map[coverageKey]engine.WarehouseCoverage),
	}
}

func (m *Memory) AddZone(z engine.PincodeZone) *Memory {
	m.zones[z.Pincode] = z
	return m
}

func (m *Memory) AddCoverage(c engine.WarehouseCoverage) *Memory {
	m.coverage[coverageKey{c.WarehouseID, c.Pincode}] = c
	return m
}

func (m *Memory) AddCandidate(c engine.RateCandidate) *Memory {
	m.candidates = append(m.candidates, c)
	return m
}

func (m *Memory) GetZone(ctx context.Context, pincode string) (*engine.PincodeZone, error) {
	if z, ok := m.zones[pincode]; ok {
		return &z, nil
	}
	return nil, nil
}

func (m *Memory) GetWarehouseCoverage(ctx context.Context, warehouseID int64, pincode string) (*engine.WarehouseCoverage, error) {
	if c, ok := m.coverage[coverageKey{warehouseID, pincode}]; ok {
		return &c, nil
	}
	return nil, nil
}

func (m *Memory) ListActiveRateCandidates(ctx context.Context) ([]engine.RateCandidate, error) {
	out := make([]engine.RateCandidate, len(m.candidates))
	copy(out, m.candidates)
	return out, nil
}

// NewMemoryDemo seeds a small catalog so the memory backend answers real
// requests out of the box.
func NewMemoryDemo() *Memory {
	ten := decimal.NewFromInt(10)
	tat := 2
	fee := decimal.NewFromInt(50)
	m := NewMemory()
	m.AddZone(engine.PincodeZone{Pincode: "110001", Zone: "N1"})
	m.AddZone(engine.PincodeZone{Pincode: "400001", Zone: "W1"})
	m.AddZone(engine.PincodeZone{Pincode: "793001", Zone: "NE1", ODA: true})
	m.AddCoverage(engine.WarehouseCoverage{
		WarehouseID: 1,
		Pincode:     "400001",
		TATDays:     &tat,
		ODAFee:      &fee,
	})
	m.AddCandidate(engine.RateCandidate{
		RateID:        1,
		CarrierID:     1,
		CarrierName:   "BlueDart",
		ServiceName:   "Standard",
		BaseRate:      decimal.NewFromInt(80),
		EstimatedDays: 3,
		Surcharges: []engine.Surcharge{
			{Name: "Fuel", Percent: &ten},
		},
	})
	m.AddCandidate(engine.RateCandidate{
		RateID:        2,
		CarrierID:     1,
		CarrierName:   "BlueDart",
		ServiceName:   "Express",
		BaseRate:      decimal.NewFromInt(120),
		EstimatedDays: 1,
		Surcharges: []engine.Surcharge{
			{Name: "Fuel", Percent: &ten},
		},
	})
	m.AddCandidate(engine.RateCandidate{
		RateID:        3,
		CarrierID:     2,
		CarrierName:   "Delhivery",
		ServiceName:   "Surface",
		BaseRate:      decimal.NewFromInt(65),
		EstimatedDays: 4,
		Surcharges: []engine.Surcharge{
			{Name: "ODA Handling", Flat: &fee},
		},
	})
	return m
}
