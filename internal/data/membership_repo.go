package data

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/ostia-cloud/auth-gateway/internal/data/pgxutil"
	apperrors "github.com/ostia-cloud/auth-gateway/internal/errors"
)

// MembershipRepo reads the user-tenant membership relation. The relation is
// provisioned out of band; this repository never writes it.
type MembershipRepo struct {
	DB *sql.DB
}

// NewMembershipRepo creates a new MembershipRepo.
func NewMembershipRepo(db *sql.DB) *MembershipRepo {
	return &MembershipRepo{DB: db}
}

// IsMember reports whether the subject is provisioned for the tenant.
// A missing row answers false; any storage failure is surfaced as an
// infrastructure error so callers never mistake an outage for a denial.
func (r *MembershipRepo) IsMember(ctx context.Context, userID, tenantID string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, ErrUserIDRequired
	}
	if strings.TrimSpace(tenantID) == "" {
		return false, ErrTenantIDRequired
	}

	var exists bool
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM users WHERE user_id = $1 AND tenant_id = $2
			)
		`, userID, tenantID).Scan(&exists)
	}); err != nil {
		return false, apperrors.Wrap(apperrors.MapDBError(err), apperrors.ErrCodeConfiguration, "query tenant membership")
	}

	return exists, nil
}
