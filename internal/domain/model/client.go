package model

import "time"

// DefaultClientName is the display name given to lazily created clients.
const DefaultClientName = "Auto-created client"

// Client is a registered caller application/device scoped to one tenant.
// The (TenantID, ClientID) pair is unique; records are created either by
// out-of-band provisioning or lazily on first login without a client id,
// and are never deleted by this system.
type Client struct {
	ID        int64     `json:"id"         db:"id"`
	TenantID  string    `json:"tenant_id"  db:"tenant_id"`
	ClientID  string    `json:"client_id"  db:"client_id"`
	Name      string    `json:"name"       db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Membership is the read-only relation between a principal and a tenant.
// Rows are provisioned out of band; a login succeeds only if the relation
// exists for the tenant being logged into.
type Membership struct {
	UserID   string `json:"user_id"   db:"user_id"`
	TenantID string `json:"tenant_id" db:"tenant_id"`
}
