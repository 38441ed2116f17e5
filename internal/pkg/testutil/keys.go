package testutil

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	testKey     *rsa.PrivateKey
	testKeyErr  error
	testKeyOnce sync.Once
)

// RSAKey returns a 2048-bit key pair shared by every test in the binary
func RSAKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	testKeyOnce.Do(func() {
		testKey, testKeyErr = rsa.GenerateKey(rand.Reader, 2048)
	})
	require.NoError(t, testKeyErr)

	return testKey
}

// SignRS256 signs data with RSASSA-PKCS1-v1_5/SHA-256 and returns the raw signature
func SignRS256(t *testing.T, key *rsa.PrivateKey, data string) []byte {
	t.Helper()

	hashed := sha256.Sum256([]byte(data))
	signature, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, hashed[:])
	require.NoError(t, err)

	return signature
}

// JWKMembers returns the base64url "n" and "e" members of pub
func JWKMembers(pub *rsa.PublicKey) (n, e string) {
	n = base64.RawURLEncoding.EncodeToString(pub.N.Bytes())
	e = base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes())
	return n, e
}
