package crypto

import (
	"context"
	"crypto/rsa"
)

// Crypto is the capability interface exposed to callers: SHA-256 digests, secure random bytes
// and RSASSA-PKCS1-v1_5 signature verification, all exchanged as base64 text.
// Digest and Verify suspend on the platform engine and take a context; random generation is synchronous.
type Crypto interface {
	// Sha256DigestBase64 UTF-8 encodes text, digests it with SHA-256 and returns the raw digest base64-encoded.
	Sha256DigestBase64(ctx context.Context, text string) (string, error)

	// RandomBytesBase64 returns count cryptographically secure random bytes base64-encoded.
	// A count of zero yields an empty string.
	RandomBytesBase64(count int) (string, error)

	// Verify checks signatureBase64 over the UTF-8 encoding of data with publicKey (RS256).
	// A well-formed signature that does not validate returns false and a nil error.
	Verify(ctx context.Context, publicKey *JSONWebKey, data, signatureBase64 string) (bool, error)
}

// Subtle is the platform cryptography service the adapter delegates to.
// Implementations perform all cryptographic computation.
type Subtle interface {
	// Available reports whether the capability can be used in the current execution context.
	Available() bool

	// Digest computes the digest of data with the given algorithm.
	Digest(ctx context.Context, algorithm AlgorithmIdentifier, data []byte) ([]byte, error)

	// GetRandomValues fills buf in place from a CSPRNG.
	GetRandomValues(buf []byte) error

	// ImportKey turns key material into an opaque key handle bound to algorithm and usages.
	ImportKey(ctx context.Context, format KeyFormat, keyData *JSONWebKey, algorithm Algorithm, extractable bool, usages []KeyUsage) (CryptoKey, error)

	// Verify checks signature over data with key, returning false for a signature that does not match.
	Verify(ctx context.Context, algorithm Algorithm, key CryptoKey, signature, data []byte) (bool, error)
}

// CryptoKey is an opaque key handle produced by Subtle.ImportKey
type CryptoKey interface {
	Type() string
	Extractable() bool
	Algorithm() Algorithm
	Usages() []KeyUsage
}

// RSAProcessor reads PEM key material and produces fixtures for the verifier:
// RS256 signatures and public JWKs. It does not generate or store keys.
type RSAProcessor interface {
	// Sign creates an RSASSA-PKCS1-v1_5 signature over the SHA-256 digest of data.
	Sign(data []byte, privateKey *rsa.PrivateKey) ([]byte, error)

	// ExportJWK converts a public key into an RS256 signature JWK.
	ExportJWK(publicKey *rsa.PublicKey) (*JSONWebKey, error)

	// ReadPrivateKey reads an RSA private key from a PEM-encoded file (PKCS#1 or PKCS#8).
	ReadPrivateKey(privateKeyPath string) (*rsa.PrivateKey, error)

	// ReadPublicKey reads an RSA public key from a PEM-encoded file (PKCS#1 or PKIX).
	ReadPublicKey(publicKeyPath string) (*rsa.PublicKey, error)
}
