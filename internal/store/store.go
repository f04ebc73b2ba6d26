package store

import (
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"rateshop/internal/engine"
)

// Source bundles the three reference-data capabilities the engine consumes.
// One implementation exists per underlying data store, selected at
// construction time.
type Source interface {
	engine.ZoneSource
	engine.CoverageSource
	engine.CandidateSource
}

// NewByName returns a Source for the given backend name. "postgres" requires
// a pool; "memory" serves the seeded demo catalog. Unknown names fall back to
// memory.
func NewByName(name string, pool *pgxpool.Pool) Source {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgres":
		return NewPostgres(pool)
	case "memory", "":
		return NewMemoryDemo()
	default:
		return NewMemoryDemo()
	}
}
