// Package mocks provides mock implementations for testing the auth gateway.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the port interfaces. The mocks are generated using go:generate directives
// and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	verifier := mocks.NewMockCredentialVerifier(ctrl)
//	verifier.EXPECT().Verify(gomock.Any(), "a@b.c", "pw").Return(identity, nil)
package mocks

// Generate mocks for the auth port interfaces from internal/ports.
// This creates MockCredentialVerifier, MockMembershipStore, MockClientStore,
// MockTokenIssuer and MockTokenValidator.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_ports_mock.go github.com/ostia-cloud/auth-gateway/internal/ports CredentialVerifier,MembershipStore,ClientStore,TokenIssuer,TokenValidator
