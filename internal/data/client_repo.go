package data

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ostia-cloud/auth-gateway/internal/data/pgxutil"
	"github.com/ostia-cloud/auth-gateway/internal/domain/model"
	apperrors "github.com/ostia-cloud/auth-gateway/internal/errors"
)

// createAutoAttempts bounds retries of lazy client creation when the
// generated id collides with an existing row. The generator combines a
// nanosecond timestamp with a random component, so a second attempt is
// effectively guaranteed to succeed.
const createAutoAttempts = 3

// ClientRepo provides database operations for tenant-scoped clients.
type ClientRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewClientRepo creates a new ClientRepo with real time provider.
func NewClientRepo(db *sql.DB) *ClientRepo {
	return &ClientRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewClientRepoWithTimeProvider creates a new ClientRepo with a custom time provider (useful for tests).
func NewClientRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ClientRepo {
	return &ClientRepo{DB: db, timeProvider: tp}
}

// Get looks up a client by id scoped to the tenant. A missing row is
// ErrClientNotFound; clients registered under other tenants are invisible.
func (r *ClientRepo) Get(ctx context.Context, tenantID, clientID string) (*model.Client, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, ErrTenantIDRequired
	}
	if clientID == "" {
		return nil, ErrClientIDRequired
	}

	var out model.Client
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, tenant_id, client_id, name, created_at
			FROM clients
			WHERE tenant_id = $1 AND client_id = $2
		`, tenantID, clientID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Client])
		return err
	}); err != nil {
		mapped := apperrors.MapDBError(err)
		if apperrors.IsNotFound(mapped) {
			return nil, ErrClientNotFound
		}
		return nil, apperrors.Wrap(mapped, apperrors.ErrCodeConfiguration, "query client")
	}

	return &out, nil
}

// CreateAuto persists a new client with a freshly generated id scoped to the
// tenant. The insert is a single atomic statement guarded by the
// (tenant_id, client_id) unique constraint; there is no check-then-insert, so
// concurrent calls each commit a distinct row or fail the constraint and
// retry with a new id.
func (r *ClientRepo) CreateAuto(ctx context.Context, tenantID string) (*model.Client, error) {
	if strings.TrimSpace(tenantID) == "" {
		return nil, ErrTenantIDRequired
	}

	var lastErr error
	for attempt := 0; attempt < createAutoAttempts; attempt++ {
		clientID := r.generateClientID()

		var out model.Client
		err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
			rows, qerr := conn.Query(ctx, `
				INSERT INTO clients (tenant_id, client_id, name, created_at)
				VALUES ($1, $2, $3, $4)
				RETURNING id, tenant_id, client_id, name, created_at
			`, tenantID, clientID, model.DefaultClientName, r.timeProvider.Now().UTC())
			if qerr != nil {
				return qerr
			}
			defer rows.Close()
			out, qerr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Client])
			return qerr
		})
		if err == nil {
			return &out, nil
		}

		mapped := apperrors.MapDBError(err)
		if apperrors.IsConflict(mapped) {
			lastErr = mapped
			continue
		}
		return nil, apperrors.Wrap(mapped, apperrors.ErrCodeConfiguration, "create client")
	}

	return nil, apperrors.Wrap(lastErr, apperrors.ErrCodeConfiguration, "create client: exhausted id generation attempts")
}

// generateClientID builds a client identifier from a high-resolution
// timestamp plus a random component. A coarse timestamp alone (the obvious
// "C" + epoch-seconds scheme) collides under concurrent logins.
func (r *ClientRepo) generateClientID() string {
	nanos := strconv.FormatInt(r.timeProvider.Now().UTC().UnixNano(), 36)
	random := strings.SplitN(uuid.NewString(), "-", 2)[0]
	return "C" + nanos + "-" + random
}
