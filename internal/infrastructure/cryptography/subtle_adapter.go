package cryptography

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"
	"github.com/MGTheTrain/subtle-crypto-adapter/internal/pkg/logger"
)

// subtleAdapter struct that implements the Crypto interface on top of a platform Subtle capability
type subtleAdapter struct {
	subtle cryptoDomain.Subtle
	logger logger.Logger
}

// NewSubtleAdapter creates and returns a Crypto backed by subtle.
// It fails with ErrUnavailableCapability when subtle is missing or unusable in the current context.
func NewSubtleAdapter(subtle cryptoDomain.Subtle, logger logger.Logger) (cryptoDomain.Crypto, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if subtle == nil || !subtle.Available() {
		logger.Error("SubtleCrypto capability not found")
		return nil, cryptoDomain.ErrUnavailableCapability
	}

	return &subtleAdapter{
		subtle: subtle,
		logger: logger,
	}, nil
}

// Sha256DigestBase64 digests the UTF-8 encoding of text with SHA-256
func (a *subtleAdapter) Sha256DigestBase64(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("digest not started: %w", err)
	}

	digest, err := a.subtle.Digest(ctx, cryptoDomain.AlgorithmSHA256, encodeUTF8(text))
	if err != nil {
		a.logger.Error("SHA-256 digest failed: ", err)
		return "", platformError("digest", err)
	}

	return base64.StdEncoding.EncodeToString(digest), nil
}

// RandomBytesBase64 fills count bytes from the platform CSPRNG
func (a *subtleAdapter) RandomBytesBase64(count int) (string, error) {
	if count < 0 {
		return "", fmt.Errorf("%w: got %d", cryptoDomain.ErrInvalidByteCount, count)
	}

	buf := make([]byte, count)
	if err := a.subtle.GetRandomValues(buf); err != nil {
		a.logger.Error("random generation failed: ", err)
		return "", platformError("random generation", err)
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// Verify checks an RSASSA-PKCS1-v1_5/SHA-256 signature over the UTF-8 encoding of data
func (a *subtleAdapter) Verify(ctx context.Context, publicKey *cryptoDomain.JSONWebKey, data, signatureBase64 string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("verification not started: %w", err)
	}

	dataBytes := encodeUTF8(data)

	signature, err := decodeSignature(signatureBase64)
	if err != nil {
		a.logger.Error(err)
		return false, err
	}

	key, err := a.subtle.ImportKey(ctx, cryptoDomain.KeyFormatJWK, publicKey, cryptoDomain.RS256, true,
		[]cryptoDomain.KeyUsage{cryptoDomain.KeyUsageVerify})
	if err != nil {
		a.logger.Error("failed to import verification key: ", err)
		if errors.Is(err, cryptoDomain.ErrKeyImportFailure) || isContextError(err) {
			return false, err
		}
		return false, fmt.Errorf("%w: %w", cryptoDomain.ErrKeyImportFailure, err)
	}

	valid, err := a.subtle.Verify(ctx, cryptoDomain.RS256, key, signature, dataBytes)
	if err != nil {
		a.logger.Error("signature verification failed: ", err)
		return false, platformError("verification", err)
	}

	if valid {
		a.logger.Info("RSA signature verified successfully")
	} else {
		a.logger.Warn("RSA signature is invalid")
	}
	return valid, nil
}

// platformError tags err as a platform failure unless it already carries a sentinel or a context error
func platformError(operation string, err error) error {
	switch {
	case errors.Is(err, cryptoDomain.ErrPlatformOperationFailure),
		errors.Is(err, cryptoDomain.ErrUnavailableCapability),
		isContextError(err):
		return err
	default:
		return fmt.Errorf("%w: %s: %w", cryptoDomain.ErrPlatformOperationFailure, operation, err)
	}
}

func isContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
