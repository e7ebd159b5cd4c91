package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// Client repository sentinels.
	ErrClientNotFound = errors.New("client not found")

	// Input sentinels.
	ErrTenantIDRequired = errors.New("tenant_id is required")
	ErrClientIDRequired = errors.New("client_id is required")
	ErrUserIDRequired   = errors.New("user_id is required")
)
