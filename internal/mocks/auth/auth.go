package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen; the
// in-memory stores are safe for concurrent use so they can back tests that
// exercise parallel logins.

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ostia-cloud/auth-gateway/internal/data"
	domainauth "github.com/ostia-cloud/auth-gateway/internal/domain/auth"
	"github.com/ostia-cloud/auth-gateway/internal/domain/model"
	"github.com/ostia-cloud/auth-gateway/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialVerifier = (*StubVerifier)(nil)
	_ ports.MembershipStore    = (*MemoryMembershipStore)(nil)
	_ ports.ClientStore        = (*MemoryClientStore)(nil)
	_ ports.TokenIssuer        = (*StaticIssuer)(nil)
)

// StubVerifier accepts a single email/password pair and returns a fixed
// identity. VerifyFunc overrides the default behavior when set.
type StubVerifier struct {
	VerifyFunc func(ctx context.Context, email, password string) (domainauth.Identity, error)

	Email    string
	Password string
	Identity domainauth.Identity

	mu    sync.Mutex
	calls int
}

// NewStubVerifier creates a StubVerifier with sensible defaults.
func NewStubVerifier() *StubVerifier {
	return &StubVerifier{
		Email:    "stub.user@example.com",
		Password: "stub-password",
		Identity: domainauth.Identity{
			UserID: "stub-user-1",
			Email:  "stub.user@example.com",
		},
	}
}

func (s *StubVerifier) Verify(ctx context.Context, email, password string) (domainauth.Identity, error) {
	if s.VerifyFunc != nil {
		return s.VerifyFunc(ctx, email, password)
	}

	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if email != s.Email || password != s.Password {
		return domainauth.Identity{}, fmt.Errorf("stub verifier: unexpected credentials for %q", email)
	}
	return s.Identity, nil
}

// Calls reports how many times Verify ran with the default behavior.
func (s *StubVerifier) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// MemoryMembershipStore is an in-memory membership relation for unit tests.
type MemoryMembershipStore struct {
	mu      sync.RWMutex
	members map[string]struct{}
}

// NewMemoryMembershipStore creates an empty in-memory membership store.
func NewMemoryMembershipStore() *MemoryMembershipStore {
	return &MemoryMembershipStore{members: make(map[string]struct{})}
}

// Add provisions the user for the tenant.
func (m *MemoryMembershipStore) Add(userID, tenantID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[membershipKey(userID, tenantID)] = struct{}{}
}

func (m *MemoryMembershipStore) IsMember(_ context.Context, userID, tenantID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.members[membershipKey(userID, tenantID)]
	return ok, nil
}

func membershipKey(userID, tenantID string) string {
	return userID + "\x00" + tenantID
}

// MemoryClientStore is an in-memory client store for unit tests. CreateAuto
// generates sequential ids so assertions stay deterministic, while the
// tenant-scoped uniqueness invariant still holds under concurrency.
type MemoryClientStore struct {
	mu      sync.Mutex
	clients map[string]*model.Client
	nextID  int64
}

// NewMemoryClientStore creates an empty in-memory client store.
func NewMemoryClientStore() *MemoryClientStore {
	return &MemoryClientStore{clients: make(map[string]*model.Client)}
}

// Put registers an existing client under its tenant.
func (m *MemoryClientStore) Put(c model.Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == 0 {
		m.nextID++
		c.ID = m.nextID
	}
	m.clients[clientKey(c.TenantID, c.ClientID)] = &c
}

func (m *MemoryClientStore) Get(_ context.Context, tenantID, clientID string) (*model.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[clientKey(tenantID, clientID)]
	if !ok {
		return nil, data.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MemoryClientStore) CreateAuto(_ context.Context, tenantID string) (*model.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c := &model.Client{
		ID:        m.nextID,
		TenantID:  tenantID,
		ClientID:  fmt.Sprintf("C-test-%d", m.nextID),
		Name:      model.DefaultClientName,
		CreatedAt: time.Now().UTC(),
	}
	m.clients[clientKey(tenantID, c.ClientID)] = c
	cp := *c
	return &cp, nil
}

// Len reports how many clients the store holds.
func (m *MemoryClientStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

func clientKey(tenantID, clientID string) string {
	return tenantID + "\x00" + clientID
}

// StaticIssuer returns a fixed opaque token string. It never fails unless
// Err is set.
type StaticIssuer struct {
	Token string
	Err   error
	Now   time.Time
}

// NewStaticIssuer creates a StaticIssuer with a predictable token.
func NewStaticIssuer() *StaticIssuer {
	return &StaticIssuer{
		Token: "static-test-token",
		Now:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *StaticIssuer) Issue(_ domainauth.Identity, _, _ string) (model.SignedToken, error) {
	if s.Err != nil {
		return model.SignedToken{}, s.Err
	}
	now := s.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	return model.SignedToken{
		Token:     s.Token,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
	}, nil
}
