package model

import (
	"strings"

	apperrors "github.com/ostia-cloud/auth-gateway/internal/errors"
)

// LoginRequest is the JSON body of POST /login.
//
// ClientID is a pointer so an absent field is distinct from an empty string:
// absent requests lazy client provisioning, while an explicitly supplied id
// (even empty) is looked up and must already exist.
type LoginRequest struct {
	TenantID string  `json:"tenant_id"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	ClientID *string `json:"client_id,omitempty"`

	// DBProfile is accepted for compatibility with older GUI/CLI clients
	// and ignored by the gateway.
	DBProfile *string `json:"db_profile,omitempty"`
}

// Validate checks required fields before dispatch.
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.TenantID) == "" {
		return apperrors.ValidationField("tenant_id", "tenant_id is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return apperrors.ValidationField("email", "email is required")
	}
	if r.Password == "" {
		return apperrors.ValidationField("password", "password is required")
	}
	return nil
}

// LoginResponse is the JSON body returned by a successful POST /login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	TenantID    string `json:"tenant_id"`
	ClientID    string `json:"client_id"`
	UserID      string `json:"user_id"`
}
