//go:build unit
// +build unit

package cryptography

import (
	"context"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"

	"github.com/stretchr/testify/mock"
)

// MockSubtle is a mock implementation of the platform Subtle capability
type MockSubtle struct {
	mock.Mock
}

func (m *MockSubtle) Available() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockSubtle) Digest(ctx context.Context, algorithm cryptoDomain.AlgorithmIdentifier, data []byte) ([]byte, error) {
	args := m.Called(ctx, algorithm, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSubtle) GetRandomValues(buf []byte) error {
	args := m.Called(buf)
	return args.Error(0)
}

func (m *MockSubtle) ImportKey(ctx context.Context, format cryptoDomain.KeyFormat, keyData *cryptoDomain.JSONWebKey,
	algorithm cryptoDomain.Algorithm, extractable bool, usages []cryptoDomain.KeyUsage) (cryptoDomain.CryptoKey, error) {
	args := m.Called(ctx, format, keyData, algorithm, extractable, usages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(cryptoDomain.CryptoKey), args.Error(1)
}

func (m *MockSubtle) Verify(ctx context.Context, algorithm cryptoDomain.Algorithm, key cryptoDomain.CryptoKey, signature, data []byte) (bool, error) {
	args := m.Called(ctx, algorithm, key, signature, data)
	return args.Bool(0), args.Error(1)
}
