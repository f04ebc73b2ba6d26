package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rateshop/internal/engine"
)

// Postgres serves reference data from the pincode_zones, warehouse_coverage,
// carriers, shipping_rates, and rate_surcharges tables. All methods are plain
// reads; absent rows map to nil, not errors.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) GetZone(ctx context.Context, pincode string) (*engine.PincodeZone, error) {
	var z engine.PincodeZone
	err := p.pool.QueryRow(ctx, `
		SELECT pincode, COALESCE(zone, ''), is_oda
		FROM pincode_zones
		WHERE pincode = $1
	`, pincode).Scan(&z.Pincode, &z.Zone, &z.ODA)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query pincode zone: %w", err)
	}
	return &z, nil
}

func (p *Postgres) GetWarehouseCoverage(ctx context.Context, warehouseID int64, pincode string) (*engine.WarehouseCoverage, error) {
	c := engine.WarehouseCoverage{WarehouseID: warehouseID, Pincode: pincode}
	err := p.pool.QueryRow(ctx, `
		SELECT tat_days, is_oda, oda_fee, min_weight_grams, max_weight_grams
		FROM warehouse_coverage
		WHERE warehouse_id = $1 AND pincode = $2
	`, warehouseID, pincode).Scan(&c.TATDays, &c.IsODA, &c.ODAFee, &c.MinWeightGrams, &c.MaxWeightGrams)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query warehouse coverage: %w", err)
	}
	return &c, nil
}

// ListActiveRateCandidates joins every shipping rate to its owning carrier
// and attaches the carrier's active surcharges. The join guarantees orphan
// rates never become candidates; inactive surcharges are excluded here rather
// than skipped at apply time. Ordering by rate id keeps selection tie-breaks
// deterministic.
func (p *Postgres) ListActiveRateCandidates(ctx context.Context) ([]engine.RateCandidate, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT r.id, c.id, c.name, r.service_name, r.rate, r.estimated_delivery_days
		FROM shipping_rates r
		JOIN carriers c ON c.id = r.carrier_id
		ORDER BY r.id
	`)
	if err != nil {
		return nil, fmt.Errorf("query shipping rates: %w", err)
	}
	defer rows.Close()

	var candidates []engine.RateCandidate
	for rows.Next() {
		var c engine.RateCandidate
		if err := rows.Scan(&c.RateID, &c.CarrierID, &c.CarrierName, &c.ServiceName, &c.BaseRate, &c.EstimatedDays); err != nil {
			return nil, fmt.Errorf("scan shipping rate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipping rates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	surcharges, err := p.activeSurchargesByCarrier(ctx)
	if err != nil {
		return nil, err
	}
	for i := range candidates {
		candidates[i].Surcharges = surcharges[candidates[i].CarrierID]
	}
	return candidates, nil
}

func (p *Postgres) activeSurchargesByCarrier(ctx context.Context) (map[int64][]engine.Surcharge, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT carrier_id, name, percent, flat
		FROM rate_surcharges
		WHERE active = true
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query rate surcharges: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]engine.Surcharge)
	for rows.Next() {
		var carrierID int64
		var s engine.Surcharge
		if err := rows.Scan(&carrierID, &s.Name, &s.Percent, &s.Flat); err != nil {
			return nil, fmt.Errorf("scan rate surcharge: %w", err)
		}
		out[carrierID] = append(out[carrierID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rate surcharges: %w", err)
	}
	return out, nil
}
