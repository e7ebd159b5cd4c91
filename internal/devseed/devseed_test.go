package devseed

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ostia-cloud/auth-gateway/internal/data"
	"github.com/ostia-cloud/auth-gateway/internal/testutil"
)

func TestSeed_Idempotent(t *testing.T) {
	testutil.WithTestDB(t, func(db *sql.DB) {
		ctx := context.Background()
		fixture := DefaultFixture()
		logger := slog.New(slog.DiscardHandler)

		require.NoError(t, Seed(ctx, db, fixture, logger))
		// A second run must not fail on the existing rows.
		require.NoError(t, Seed(ctx, db, fixture, logger))

		memberships := data.NewMembershipRepo(db)
		isMember, err := memberships.IsMember(ctx, fixture.UserID, fixture.TenantID)
		require.NoError(t, err)
		assert.True(t, isMember)

		clients := data.NewClientRepo(db)
		client, err := clients.Get(ctx, fixture.TenantID, fixture.ClientID)
		require.NoError(t, err)
		assert.Equal(t, fixture.ClientName, client.Name)

		var count int
		require.NoError(t, db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM clients WHERE tenant_id = $1", fixture.TenantID).Scan(&count))
		assert.Equal(t, 1, count)
	})
}
