package database

import (
	"context"
	"fmt"
)

// Booleans are SMALLINT 0/1 and image_urls is JSON text, matching the
// encoding the front end's admin tools already read.
var schemaStatements = []string{
	`
	CREATE TABLE IF NOT EXISTS portfolios (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL CHECK (title <> ''),
		description TEXT,
		category TEXT,
		client_name TEXT,
		main_image_url TEXT,
		image_urls TEXT,
		website_url TEXT,
		github_url TEXT,
		technologies_used TEXT,
		is_featured SMALLINT NOT NULL DEFAULT 0,
		is_active SMALLINT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_portfolios_category ON portfolios(category);
	CREATE INDEX IF NOT EXISTS idx_portfolios_active_created ON portfolios(is_active, created_at DESC);
	`,
}

// EnsureSchema creates the portfolios table and its indexes when missing.
// It is idempotent and never alters an existing table.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	db.log.Info().Msg("database schema ready")
	return nil
}
