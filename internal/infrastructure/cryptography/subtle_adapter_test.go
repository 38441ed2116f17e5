//go:build unit
// +build unit

package cryptography

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"
	"github.com/MGTheTrain/subtle-crypto-adapter/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const emptySHA256Base64 = "47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU="

func setupSubtleAdapter(t *testing.T) cryptoDomain.Crypto {
	t.Helper()
	logger := testutil.SetupTestLogger(t)
	subtle, err := NewNativeSubtle(logger)
	require.NoError(t, err)
	adapter, err := NewSubtleAdapter(subtle, logger)
	require.NoError(t, err)
	return adapter
}

// signedFixture returns a public JWK plus a std base64 signature over data
func signedFixture(t *testing.T, data string) (*cryptoDomain.JSONWebKey, string) {
	t.Helper()
	key := testutil.RSAKey(t)
	jwk, err := PublicKeyToJWK(&key.PublicKey)
	require.NoError(t, err)
	return jwk, base64.StdEncoding.EncodeToString(testutil.SignRS256(t, key, data))
}

func TestNewSubtleAdapter(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	t.Run("NilCapability", func(t *testing.T) {
		adapter, err := NewSubtleAdapter(nil, logger)
		assert.ErrorIs(t, err, cryptoDomain.ErrUnavailableCapability)
		assert.Nil(t, adapter)
	})

	t.Run("InsecureContext", func(t *testing.T) {
		adapter, err := NewSubtleAdapter(NewUnavailableSubtle(), logger)
		assert.ErrorIs(t, err, cryptoDomain.ErrUnavailableCapability)
		assert.Nil(t, adapter)
	})

	t.Run("ChecksAvailabilityBeforeAnyCall", func(t *testing.T) {
		subtle := new(MockSubtle)
		subtle.On("Available").Return(false)

		_, err := NewSubtleAdapter(subtle, logger)
		assert.ErrorIs(t, err, cryptoDomain.ErrUnavailableCapability)
		subtle.AssertExpectations(t)
		subtle.AssertNotCalled(t, "Digest", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NilLogger", func(t *testing.T) {
		_, err := NewSubtleAdapter(NewUnavailableSubtle(), nil)
		assert.Error(t, err)
	})
}

func TestSha256DigestBase64(t *testing.T) {
	adapter := setupSubtleAdapter(t)
	ctx := context.Background()

	t.Run("KnownAnswers", func(t *testing.T) {
		tests := []struct {
			in   string
			want string
		}{
			{"", emptySHA256Base64},
			{"abc", "ungWv48Bz+pBQUDeXa4iI7ADYaOWF3qctBD/YfIAFa0="},
			{"héllo", "PEhZHY0JikU49eAT389AbpSOrE0yd7EL9hTildYGgXk="},
			{"a\xffb", "BQh4Ezku/Bb+j/RIkgxjKOU6+GXfOUGUNmWdn/2pD3s="},
		}
		for _, tt := range tests {
			got, err := adapter.Sha256DigestBase64(ctx, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "digest of %q", tt.in)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		first, err := adapter.Sha256DigestBase64(ctx, "the same input")
		require.NoError(t, err)
		second, err := adapter.Sha256DigestBase64(ctx, "the same input")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("DistinctInputs", func(t *testing.T) {
		a, err := adapter.Sha256DigestBase64(ctx, "input-a")
		require.NoError(t, err)
		b, err := adapter.Sha256DigestBase64(ctx, "input-b")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("CanceledBeforeStart", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := adapter.Sha256DigestBase64(canceled, "abc")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestSha256DigestBase64_PlatformFailure(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	boom := errors.New("engine exploded")

	subtle := new(MockSubtle)
	subtle.On("Available").Return(true)
	subtle.On("Digest", mock.Anything, cryptoDomain.AlgorithmSHA256, []byte("abc")).Return(nil, boom)

	adapter, err := NewSubtleAdapter(subtle, logger)
	require.NoError(t, err)

	_, err = adapter.Sha256DigestBase64(context.Background(), "abc")
	assert.ErrorIs(t, err, cryptoDomain.ErrPlatformOperationFailure)
	assert.ErrorIs(t, err, boom)
	subtle.AssertExpectations(t)
}

func TestRandomBytesBase64(t *testing.T) {
	adapter := setupSubtleAdapter(t)

	t.Run("DecodedLengthMatchesCount", func(t *testing.T) {
		for _, count := range []int{1, 2, 3, 16, 32, 1000} {
			out, err := adapter.RandomBytesBase64(count)
			require.NoError(t, err)
			decoded, err := base64.StdEncoding.DecodeString(out)
			require.NoError(t, err)
			assert.Len(t, decoded, count)
		}
	})

	t.Run("SuccessiveCallsDiffer", func(t *testing.T) {
		first, err := adapter.RandomBytesBase64(32)
		require.NoError(t, err)
		second, err := adapter.RandomBytesBase64(32)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("ZeroCount", func(t *testing.T) {
		out, err := adapter.RandomBytesBase64(0)
		require.NoError(t, err)
		assert.Equal(t, "", out)
	})

	t.Run("NegativeCount", func(t *testing.T) {
		_, err := adapter.RandomBytesBase64(-1)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidByteCount)
	})

	t.Run("QuotaExceeded", func(t *testing.T) {
		_, err := adapter.RandomBytesBase64(cryptoDomain.MaxRandomValuesBytes + 1)
		assert.ErrorIs(t, err, cryptoDomain.ErrPlatformOperationFailure)
	})
}

func TestRandomBytesBase64_UsesPlatformBuffer(t *testing.T) {
	logger := testutil.SetupTestLogger(t)

	subtle := new(MockSubtle)
	subtle.On("Available").Return(true)
	subtle.On("GetRandomValues", mock.AnythingOfType("[]uint8")).
		Run(func(args mock.Arguments) {
			buf := args.Get(0).([]byte)
			for i := range buf {
				buf[i] = 0xff
			}
		}).
		Return(nil)

	adapter, err := NewSubtleAdapter(subtle, logger)
	require.NoError(t, err)

	out, err := adapter.RandomBytesBase64(3)
	require.NoError(t, err)
	assert.Equal(t, "////", out)
	subtle.AssertExpectations(t)
}

func TestVerify(t *testing.T) {
	adapter := setupSubtleAdapter(t)
	ctx := context.Background()
	data := "header.payload"
	jwk, signature := signedFixture(t, data)

	t.Run("RoundTrip", func(t *testing.T) {
		valid, err := adapter.Verify(ctx, jwk, data, signature)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("TamperedData", func(t *testing.T) {
		valid, err := adapter.Verify(ctx, jwk, data+"!", signature)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("TamperedSignature", func(t *testing.T) {
		raw, err := base64.StdEncoding.DecodeString(signature)
		require.NoError(t, err)
		raw[0] ^= 0x01
		valid, err := adapter.Verify(ctx, jwk, data, base64.StdEncoding.EncodeToString(raw))
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("TruncatedSignatureIsFalse", func(t *testing.T) {
		valid, err := adapter.Verify(ctx, jwk, data, "QUJD")
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("MissingPadding", func(t *testing.T) {
		require.True(t, strings.HasSuffix(signature, "=="), "2048-bit signatures carry two padding characters")
		for missing := 0; missing <= 2; missing++ {
			trimmed := signature[:len(signature)-missing]
			valid, err := adapter.Verify(ctx, jwk, data, trimmed)
			require.NoError(t, err, "missing %d", missing)
			assert.True(t, valid, "missing %d", missing)
		}
	})

	t.Run("URLSafeAlphabet", func(t *testing.T) {
		urlSafe := strings.TrimRight(strings.NewReplacer("+", "-", "/", "_").Replace(signature), "=")
		valid, err := adapter.Verify(ctx, jwk, data, urlSafe)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("MalformedSignature", func(t *testing.T) {
		_, err := adapter.Verify(ctx, jwk, data, "not base64!")
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedSignatureEncoding)
	})

	t.Run("MalformedKey", func(t *testing.T) {
		broken := *jwk
		broken.Modulus = ""
		_, err := adapter.Verify(ctx, &broken, data, signature)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyImportFailure)
	})

	t.Run("MismatchedAlgorithm", func(t *testing.T) {
		mismatched := *jwk
		mismatched.Algorithm = "PS256"
		_, err := adapter.Verify(ctx, &mismatched, data, signature)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyImportFailure)
	})

	t.Run("WrongKey", func(t *testing.T) {
		other := *jwk
		other.Modulus = jwk.Modulus[:len(jwk.Modulus)-4] + "AAAA"
		valid, err := adapter.Verify(ctx, &other, data, signature)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("CanceledBeforeStart", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := adapter.Verify(canceled, jwk, data, signature)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestVerify_PlatformErrors(t *testing.T) {
	logger := testutil.SetupTestLogger(t)
	jwk := &cryptoDomain.JSONWebKey{KeyType: cryptoDomain.KeyTypeRSA, Modulus: "AQAB", Exponent: "AQAB"}
	usages := []cryptoDomain.KeyUsage{cryptoDomain.KeyUsageVerify}

	t.Run("ImportFailureIsTagged", func(t *testing.T) {
		subtle := new(MockSubtle)
		subtle.On("Available").Return(true)
		subtle.On("ImportKey", mock.Anything, cryptoDomain.KeyFormatJWK, jwk, cryptoDomain.RS256, true, usages).
			Return(nil, errors.New("DataError"))

		adapter, err := NewSubtleAdapter(subtle, logger)
		require.NoError(t, err)

		_, err = adapter.Verify(context.Background(), jwk, "data", "QUJD")
		assert.ErrorIs(t, err, cryptoDomain.ErrKeyImportFailure)
		subtle.AssertExpectations(t)
	})

	t.Run("VerifyFailureIsPlatformFailure", func(t *testing.T) {
		handle := &rsaVerifyKey{algorithm: cryptoDomain.RS256, usages: usages}
		subtle := new(MockSubtle)
		subtle.On("Available").Return(true)
		subtle.On("ImportKey", mock.Anything, cryptoDomain.KeyFormatJWK, jwk, cryptoDomain.RS256, true, usages).
			Return(handle, nil)
		subtle.On("Verify", mock.Anything, cryptoDomain.RS256, handle, []byte("ABC"), []byte("data")).
			Return(false, errors.New("OperationError"))

		adapter, err := NewSubtleAdapter(subtle, logger)
		require.NoError(t, err)

		valid, err := adapter.Verify(context.Background(), jwk, "data", "QUJD")
		assert.False(t, valid)
		assert.ErrorIs(t, err, cryptoDomain.ErrPlatformOperationFailure)
		subtle.AssertExpectations(t)
	})

	t.Run("PassesNormalizedSignature", func(t *testing.T) {
		handle := &rsaVerifyKey{algorithm: cryptoDomain.RS256, usages: usages}
		subtle := new(MockSubtle)
		subtle.On("Available").Return(true)
		subtle.On("ImportKey", mock.Anything, cryptoDomain.KeyFormatJWK, jwk, cryptoDomain.RS256, true, usages).
			Return(handle, nil)
		subtle.On("Verify", mock.Anything, cryptoDomain.RS256, handle, []byte("AB"), []byte("data")).
			Return(true, nil)

		adapter, err := NewSubtleAdapter(subtle, logger)
		require.NoError(t, err)

		valid, err := adapter.Verify(context.Background(), jwk, "data", "QUI")
		require.NoError(t, err)
		assert.True(t, valid)
		subtle.AssertExpectations(t)
	})
}
