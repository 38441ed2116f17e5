//go:build unit
// +build unit

package v1

import (
	"context"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"

	"github.com/stretchr/testify/mock"
)

// MockCrypto is a mock implementation of the Crypto interface
type MockCrypto struct {
	mock.Mock
}

func (m *MockCrypto) Sha256DigestBase64(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *MockCrypto) RandomBytesBase64(count int) (string, error) {
	args := m.Called(count)
	return args.String(0), args.Error(1)
}

func (m *MockCrypto) Verify(ctx context.Context, publicKey *cryptoDomain.JSONWebKey, data, signatureBase64 string) (bool, error) {
	args := m.Called(ctx, publicKey, data, signatureBase64)
	return args.Bool(0), args.Error(1)
}

// stubSubtle is a Subtle whose availability is fixed; its operations are never reached by route tests
type stubSubtle struct {
	cryptoDomain.Subtle
	available bool
}

func (s stubSubtle) Available() bool { return s.available }
