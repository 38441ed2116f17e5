package cryptography

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	_ "crypto/sha1" // registers crypto.SHA1
	_ "crypto/sha256"
	_ "crypto/sha512"
	"errors"
	"fmt"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"
	"github.com/MGTheTrain/subtle-crypto-adapter/internal/pkg/logger"
)

var hashes = map[cryptoDomain.AlgorithmIdentifier]crypto.Hash{
	cryptoDomain.AlgorithmSHA1:   crypto.SHA1,
	cryptoDomain.AlgorithmSHA256: crypto.SHA256,
	cryptoDomain.AlgorithmSHA384: crypto.SHA384,
	cryptoDomain.AlgorithmSHA512: crypto.SHA512,
}

// rsaVerifyKey is the key handle produced by nativeSubtle.ImportKey
type rsaVerifyKey struct {
	publicKey   *rsa.PublicKey
	algorithm   cryptoDomain.Algorithm
	extractable bool
	usages      []cryptoDomain.KeyUsage
}

func (k *rsaVerifyKey) Type() string                      { return cryptoDomain.KeyTypePublic }
func (k *rsaVerifyKey) Extractable() bool                 { return k.extractable }
func (k *rsaVerifyKey) Algorithm() cryptoDomain.Algorithm { return k.algorithm }
func (k *rsaVerifyKey) Usages() []cryptoDomain.KeyUsage {
	return append([]cryptoDomain.KeyUsage(nil), k.usages...)
}

func (k *rsaVerifyKey) allows(usage cryptoDomain.KeyUsage) bool {
	for _, u := range k.usages {
		if u == usage {
			return true
		}
	}
	return false
}

// nativeSubtle implements the platform capability on Go's crypto packages
type nativeSubtle struct {
	logger logger.Logger
}

// NewNativeSubtle creates and returns a platform engine backed by the Go standard crypto packages
func NewNativeSubtle(logger logger.Logger) (cryptoDomain.Subtle, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &nativeSubtle{
		logger: logger,
	}, nil
}

// Available is always true for the native engine
func (s *nativeSubtle) Available() bool {
	return true
}

// Digest hashes data with SHA-1, SHA-256, SHA-384 or SHA-512
func (s *nativeSubtle) Digest(ctx context.Context, algorithm cryptoDomain.AlgorithmIdentifier, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("digest not started: %w", err)
	}

	h, ok := hashes[algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported digest algorithm %q", cryptoDomain.ErrPlatformOperationFailure, algorithm)
	}

	hasher := h.New()
	hasher.Write(data)
	return hasher.Sum(nil), nil
}

// GetRandomValues fills buf from crypto/rand, refusing buffers above the platform quota
func (s *nativeSubtle) GetRandomValues(buf []byte) error {
	if len(buf) > cryptoDomain.MaxRandomValuesBytes {
		return fmt.Errorf("%w: quota exceeded: %d bytes requested, at most %d allowed",
			cryptoDomain.ErrPlatformOperationFailure, len(buf), cryptoDomain.MaxRandomValuesBytes)
	}

	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("%w: failed to read random bytes: %w", cryptoDomain.ErrPlatformOperationFailure, err)
	}
	return nil
}

// ImportKey imports an RSA public JWK for RSASSA-PKCS1-v1_5 verification
func (s *nativeSubtle) ImportKey(ctx context.Context, format cryptoDomain.KeyFormat, keyData *cryptoDomain.JSONWebKey,
	algorithm cryptoDomain.Algorithm, extractable bool, usages []cryptoDomain.KeyUsage) (cryptoDomain.CryptoKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("key import not started: %w", err)
	}

	if format != cryptoDomain.KeyFormatJWK {
		return nil, fmt.Errorf("%w: unsupported key format %q", cryptoDomain.ErrKeyImportFailure, format)
	}
	if algorithm.Name != cryptoDomain.AlgorithmRSASSAPKCS1v15 {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", cryptoDomain.ErrKeyImportFailure, algorithm.Name)
	}
	jwsAlg, ok := jwsAlgorithmForHash[algorithm.Hash]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported hash %q", cryptoDomain.ErrKeyImportFailure, algorithm.Hash)
	}
	if keyData == nil {
		return nil, fmt.Errorf("%w: key data cannot be nil", cryptoDomain.ErrKeyImportFailure)
	}

	for _, usage := range usages {
		if usage != cryptoDomain.KeyUsageVerify {
			return nil, fmt.Errorf("%w: usage %q not permitted for a public key", cryptoDomain.ErrKeyImportFailure, usage)
		}
		if !keyData.HasKeyOp(usage) {
			return nil, fmt.Errorf("%w: key_ops does not permit %q", cryptoDomain.ErrKeyImportFailure, usage)
		}
	}

	if keyData.KeyType != cryptoDomain.KeyTypeRSA {
		return nil, fmt.Errorf("%w: kty must be %q, got %q", cryptoDomain.ErrKeyImportFailure, cryptoDomain.KeyTypeRSA, keyData.KeyType)
	}
	if keyData.Algorithm != "" && keyData.Algorithm != jwsAlg {
		return nil, fmt.Errorf("%w: alg %q does not match %s", cryptoDomain.ErrKeyImportFailure, keyData.Algorithm, algorithm)
	}
	if keyData.Use != "" && keyData.Use != cryptoDomain.KeyUseSignature {
		return nil, fmt.Errorf("%w: use must be %q, got %q", cryptoDomain.ErrKeyImportFailure, cryptoDomain.KeyUseSignature, keyData.Use)
	}
	if keyData.Extractable != nil && !*keyData.Extractable && extractable {
		return nil, fmt.Errorf("%w: key is marked non-extractable", cryptoDomain.ErrKeyImportFailure)
	}

	publicKey, err := parseRSAPublicJWK(keyData)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyImportFailure, err)
	}

	s.logger.Debug("Imported RSA public key ", keyData.KeyID)
	return &rsaVerifyKey{
		publicKey:   publicKey,
		algorithm:   algorithm,
		extractable: extractable,
		usages:      append([]cryptoDomain.KeyUsage(nil), usages...),
	}, nil
}

// Verify checks an RSASSA-PKCS1-v1_5 signature; a mismatch yields false rather than an error
func (s *nativeSubtle) Verify(ctx context.Context, algorithm cryptoDomain.Algorithm, key cryptoDomain.CryptoKey, signature, data []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("verification not started: %w", err)
	}

	verifyKey, ok := key.(*rsaVerifyKey)
	if !ok || verifyKey == nil {
		return false, fmt.Errorf("%w: key was not imported by this engine", cryptoDomain.ErrPlatformOperationFailure)
	}
	if algorithm.Name != verifyKey.algorithm.Name {
		return false, fmt.Errorf("%w: key algorithm %s cannot be used with %s",
			cryptoDomain.ErrPlatformOperationFailure, verifyKey.algorithm, algorithm.Name)
	}
	if !verifyKey.allows(cryptoDomain.KeyUsageVerify) {
		return false, fmt.Errorf("%w: key usages do not include verify", cryptoDomain.ErrPlatformOperationFailure)
	}

	h := hashes[verifyKey.algorithm.Hash]
	hasher := h.New()
	hasher.Write(data)

	if err := rsa.VerifyPKCS1v15(verifyKey.publicKey, h, hasher.Sum(nil), signature); err != nil {
		s.logger.Debug("RSA signature did not verify")
		return false, nil
	}

	return true, nil
}

// unavailableSubtle models an execution context without the platform capability
type unavailableSubtle struct{}

// NewUnavailableSubtle returns a capability whose Available reports false, as in an insecure context
func NewUnavailableSubtle() cryptoDomain.Subtle {
	return unavailableSubtle{}
}

func (unavailableSubtle) Available() bool { return false }

func (unavailableSubtle) Digest(context.Context, cryptoDomain.AlgorithmIdentifier, []byte) ([]byte, error) {
	return nil, cryptoDomain.ErrUnavailableCapability
}

func (unavailableSubtle) GetRandomValues([]byte) error {
	return cryptoDomain.ErrUnavailableCapability
}

func (unavailableSubtle) ImportKey(context.Context, cryptoDomain.KeyFormat, *cryptoDomain.JSONWebKey,
	cryptoDomain.Algorithm, bool, []cryptoDomain.KeyUsage) (cryptoDomain.CryptoKey, error) {
	return nil, cryptoDomain.ErrUnavailableCapability
}

func (unavailableSubtle) Verify(context.Context, cryptoDomain.Algorithm, cryptoDomain.CryptoKey, []byte, []byte) (bool, error) {
	return false, cryptoDomain.ErrUnavailableCapability
}
