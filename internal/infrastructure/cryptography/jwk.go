package cryptography

import (
	"crypto"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"
	jose "github.com/go-jose/go-jose/v4"
)

// jwsAlgorithmForHash maps an RSASSA-PKCS1-v1_5 hash onto its JWS "alg" name
var jwsAlgorithmForHash = map[cryptoDomain.AlgorithmIdentifier]string{
	cryptoDomain.AlgorithmSHA1:   "RS1",
	cryptoDomain.AlgorithmSHA256: "RS256",
	cryptoDomain.AlgorithmSHA384: "RS384",
	cryptoDomain.AlgorithmSHA512: "RS512",
}

// parseRSAPublicJWK decodes the n/e members of a JWK into an RSA public key
func parseRSAPublicJWK(key *cryptoDomain.JSONWebKey) (*rsa.PublicKey, error) {
	raw, err := json.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JWK: %w", err)
	}

	var jwk jose.JSONWebKey
	if err := jwk.UnmarshalJSON(raw); err != nil {
		return nil, fmt.Errorf("failed to parse JWK: %w", err)
	}

	publicKey, ok := jwk.Key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("JWK does not hold an RSA public key")
	}

	return publicKey, nil
}

// PublicKeyToJWK exports an RSA public key as an RS256 signature JWK whose "kid" is the RFC 7638 thumbprint
func PublicKeyToJWK(publicKey *rsa.PublicKey) (*cryptoDomain.JSONWebKey, error) {
	if publicKey == nil {
		return nil, fmt.Errorf("public key cannot be nil")
	}

	jwk := jose.JSONWebKey{
		Key:       publicKey,
		Algorithm: jwsAlgorithmForHash[cryptoDomain.AlgorithmSHA256],
		Use:       cryptoDomain.KeyUseSignature,
	}

	thumbprint, err := jwk.Thumbprint(crypto.SHA256)
	if err != nil {
		return nil, fmt.Errorf("failed to compute JWK thumbprint: %w", err)
	}
	jwk.KeyID = base64.RawURLEncoding.EncodeToString(thumbprint)

	raw, err := jwk.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JWK: %w", err)
	}

	var out cryptoDomain.JSONWebKey
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode JWK: %w", err)
	}

	return &out, nil
}
