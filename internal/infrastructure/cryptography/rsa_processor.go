package cryptography

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"
	"github.com/MGTheTrain/subtle-crypto-adapter/internal/pkg/logger"
)

// rsaProcessor struct that implements the RSAProcessor interface
type rsaProcessor struct {
	logger logger.Logger
}

// NewRSAProcessor creates and returns a new instance of rsaProcessor
func NewRSAProcessor(logger logger.Logger) (cryptoDomain.RSAProcessor, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &rsaProcessor{
		logger: logger,
	}, nil
}

// Sign creates an RSASSA-PKCS1-v1_5 signature over the SHA-256 digest of data
func (r *rsaProcessor) Sign(data []byte, privateKey *rsa.PrivateKey) ([]byte, error) {
	if privateKey == nil {
		return nil, fmt.Errorf("private key cannot be nil")
	}

	hashed := sha256.Sum256(data)

	signature, err := rsa.SignPKCS1v15(rand.Reader, privateKey, crypto.SHA256, hashed[:])
	if err != nil {
		return nil, fmt.Errorf("failed to sign data: %w", err)
	}

	r.logger.Info("RSA signing succeeded")
	return signature, nil
}

// ExportJWK converts a public key into an RS256 signature JWK
func (r *rsaProcessor) ExportJWK(publicKey *rsa.PublicKey) (*cryptoDomain.JSONWebKey, error) {
	jwk, err := PublicKeyToJWK(publicKey)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Exported RSA public key as JWK ", jwk.KeyID)
	return jwk, nil
}

// ReadPrivateKey reads an RSA private key from a PEM-encoded file (PKCS#1 or PKCS#8)
func (r *rsaProcessor) ReadPrivateKey(privateKeyPath string) (*rsa.PrivateKey, error) {
	block, err := readPEMBlock(privateKeyPath, "private key")
	if err != nil {
		return nil, err
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err == nil {
		return privateKey, nil
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("unable to parse private key in either PKCS#1 or PKCS#8 format: %w", err)
	}

	privateKey, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not of type RSA")
	}

	return privateKey, nil
}

// ReadPublicKey reads an RSA public key from a PEM-encoded file (PKCS#1 or PKIX)
func (r *rsaProcessor) ReadPublicKey(publicKeyPath string) (*rsa.PublicKey, error) {
	block, err := readPEMBlock(publicKeyPath, "public key")
	if err != nil {
		return nil, err
	}

	publicKey, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err == nil {
		return publicKey, nil
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("unable to parse public key in either PKCS#1 or PKIX format: %w", err)
	}

	publicKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not of type RSA")
	}

	return publicKey, nil
}

func readPEMBlock(path, what string) (*pem.Block, error) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("unable to read %s file: %w", what, err)
	}

	block, _ := pem.Decode(content)
	if block == nil {
		return nil, fmt.Errorf("failed to parse PEM block containing the %s", what)
	}

	return block, nil
}
