// Package devseed inserts development fixtures so a fresh local database can
// serve logins immediately. It is only invoked when DEV=true and
// DEV_SEED=true; production startup never reaches it.
package devseed

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/ostia-cloud/auth-gateway/internal/data/pgxutil"
)

// Fixture describes the development tenant/user/client to provision.
type Fixture struct {
	TenantID   string
	UserID     string
	ClientID   string
	ClientName string
}

// DefaultFixture matches the devauth mock identity defaults.
func DefaultFixture() Fixture {
	return Fixture{
		TenantID:   "T1",
		UserID:     "dev-user",
		ClientID:   "C-dev",
		ClientName: "Development client",
	}
}

// Seed provisions the fixture rows idempotently inside one transaction, so a
// partially seeded database is never observable.
func Seed(ctx context.Context, db *sql.DB, fixture Fixture, logger *slog.Logger) error {
	err := pgxutil.WithPgxTx(ctx, db, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO users (user_id, tenant_id)
			VALUES ($1, $2)
			ON CONFLICT (user_id, tenant_id) DO NOTHING
		`, fixture.UserID, fixture.TenantID); err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO clients (tenant_id, client_id, name)
			VALUES ($1, $2, $3)
			ON CONFLICT (tenant_id, client_id) DO NOTHING
		`, fixture.TenantID, fixture.ClientID, fixture.ClientName); err != nil {
			return err
		}

		return nil
	}})
	if err != nil {
		return err
	}

	if logger != nil {
		logger.InfoContext(ctx, "development fixtures seeded",
			"tenant_id", fixture.TenantID,
			"user_id", fixture.UserID,
			"client_id", fixture.ClientID,
		)
	}
	return nil
}

