package store

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func dec50() decimal.Decimal { return decimal.NewFromInt(50) }

// setupPostgresTestDB creates and seeds the reference tables. Tests are
// skipped unless TEST_DATABASE_URL points at a disposable database.
func setupPostgresTestDB(t *testing.T) (*Postgres, context.Context) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres integration tests")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS pincode_zones (
			pincode TEXT PRIMARY KEY,
			zone    TEXT,
			is_oda  BOOLEAN NOT NULL DEFAULT FALSE
		);
		CREATE TABLE IF NOT EXISTS warehouse_coverage (
			warehouse_id     BIGINT NOT NULL,
			pincode          TEXT NOT NULL,
			tat_days         INTEGER,
			is_oda           BOOLEAN NOT NULL DEFAULT FALSE,
			oda_fee          NUMERIC(12,2),
			min_weight_grams BIGINT,
			max_weight_grams BIGINT,
			PRIMARY KEY (warehouse_id, pincode)
		);
		CREATE TABLE IF NOT EXISTS carriers (
			id   BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS shipping_rates (
			id                      BIGSERIAL PRIMARY KEY,
			carrier_id              BIGINT NOT NULL REFERENCES carriers(id),
			service_name            TEXT NOT NULL,
			rate                    NUMERIC(12,2) NOT NULL,
			estimated_delivery_days INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS rate_surcharges (
			id         BIGSERIAL PRIMARY KEY,
			carrier_id BIGINT NOT NULL REFERENCES carriers(id),
			name       TEXT NOT NULL,
			percent    NUMERIC(8,4),
			flat       NUMERIC(12,2),
			active     BOOLEAN NOT NULL DEFAULT TRUE
		);
		TRUNCATE pincode_zones, warehouse_coverage, rate_surcharges, shipping_rates, carriers RESTART IDENTITY CASCADE;

		INSERT INTO pincode_zones (pincode, zone, is_oda) VALUES
			('110001', 'N1', false),
			('793001', 'NE1', true);
		INSERT INTO warehouse_coverage (warehouse_id, pincode, tat_days, is_oda, oda_fee) VALUES
			(7, '793001', 2, true, 50.00);
		INSERT INTO carriers (name) VALUES ('BlueDart'), ('Delhivery');
		INSERT INTO shipping_rates (carrier_id, service_name, rate, estimated_delivery_days) VALUES
			(1, 'Standard', 100.00, 3),
			(2, 'Surface',  65.00, 4);
		INSERT INTO rate_surcharges (carrier_id, name, percent, flat, active) VALUES
			(1, 'Fuel',    10.0, NULL,  true),
			(1, 'ODA Fee', NULL, 20.00, true),
			(2, 'Legacy',  5.0,  NULL,  false);
	`)
	if err != nil {
		t.Fatalf("failed to seed test data: %v", err)
	}
	return NewPostgres(pool), ctx
}

func TestPostgres_GetZone(t *testing.T) {
	p, ctx := setupPostgresTestDB(t)

	z, err := p.GetZone(ctx, "793001")
	if err != nil {
		t.Fatalf("GetZone failed: %v", err)
	}
	if z == nil || z.Zone != "NE1" || !z.ODA {
		t.Fatalf("unexpected zone: %+v", z)
	}

	z, err = p.GetZone(ctx, "999999")
	if err != nil {
		t.Fatalf("missing pincode must not error: %v", err)
	}
	if z != nil {
		t.Fatalf("expected absent zone, got %+v", z)
	}
}

func TestPostgres_GetWarehouseCoverage(t *testing.T) {
	p, ctx := setupPostgresTestDB(t)

	c, err := p.GetWarehouseCoverage(ctx, 7, "793001")
	if err != nil {
		t.Fatalf("GetWarehouseCoverage failed: %v", err)
	}
	if c == nil || c.TATDays == nil || *c.TATDays != 2 || !c.IsODA {
		t.Fatalf("unexpected coverage: %+v", c)
	}
	if c.ODAFee == nil || !c.ODAFee.Equal(dec50()) {
		t.Fatalf("unexpected oda fee: %+v", c.ODAFee)
	}

	c, err = p.GetWarehouseCoverage(ctx, 99, "793001")
	if err != nil || c != nil {
		t.Fatalf("expected absent coverage, got %+v err=%v", c, err)
	}
}

func TestPostgres_ListActiveRateCandidates(t *testing.T) {
	p, ctx := setupPostgresTestDB(t)

	candidates, err := p.ListActiveRateCandidates(ctx)
	if err != nil {
		t.Fatalf("ListActiveRateCandidates failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(candidates))
	}
	if candidates[0].CarrierName != "BlueDart" || len(candidates[0].Surcharges) != 2 {
		t.Fatalf("unexpected first candidate: %+v", candidates[0])
	}
	// Delhivery's only surcharge is inactive and must be excluded at gathering
	if len(candidates[1].Surcharges) != 0 {
		t.Fatalf("inactive surcharge leaked into candidate: %+v", candidates[1].Surcharges)
	}
}
