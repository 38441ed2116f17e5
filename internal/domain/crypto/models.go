package crypto

import (
	"errors"
	"fmt"

	"github.com/MGTheTrain/subtle-crypto-adapter/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// AlgorithmIdentifier names a digest or signature algorithm, e.g. "SHA-256"
type AlgorithmIdentifier string

// KeyFormat names a key import format
type KeyFormat string

// KeyUsage names an operation a key handle may be used for
type KeyUsage string

// Algorithm is the descriptor passed to key import and verification
type Algorithm struct {
	Name AlgorithmIdentifier `json:"name"`
	Hash AlgorithmIdentifier `json:"hash,omitempty"`
}

// RS256 is RSASSA-PKCS1-v1_5 with SHA-256, the only signature scheme the adapter verifies
var RS256 = Algorithm{Name: AlgorithmRSASSAPKCS1v15, Hash: AlgorithmSHA256}

// String returns "<name>/<hash>"
func (a Algorithm) String() string {
	if a.Hash == "" {
		return string(a.Name)
	}
	return fmt.Sprintf("%s/%s", a.Name, a.Hash)
}

// JSONWebKey holds the public RSA members of a JSON Web Key (RFC 7517/7518).
// The adapter does not interpret it; it is handed to the platform on import.
type JSONWebKey struct {
	KeyType     string   `json:"kty" validate:"required"`
	Modulus     string   `json:"n,omitempty" validate:"required_if=KeyType RSA"`
	Exponent    string   `json:"e,omitempty" validate:"required_if=KeyType RSA"`
	Algorithm   string   `json:"alg,omitempty" validate:"omitempty,jwkalg"`
	Use         string   `json:"use,omitempty" validate:"omitempty,oneof=sig enc"`
	KeyOps      []string `json:"key_ops,omitempty" validate:"omitempty,dive,required"`
	Extractable *bool    `json:"ext,omitempty"`
	KeyID       string   `json:"kid,omitempty"`
}

// Validate for validating JSONWebKey struct
func (k *JSONWebKey) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("jwkalg", validators.JWKAlgorithmValidation); err != nil {
		return fmt.Errorf("failed to register jwkalg validation: %w", err)
	}

	err := validate.Struct(k)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// HasKeyOp reports whether key_ops is absent or lists op
func (k *JSONWebKey) HasKeyOp(op KeyUsage) bool {
	if len(k.KeyOps) == 0 {
		return true
	}
	for _, o := range k.KeyOps {
		if o == string(op) {
			return true
		}
	}
	return false
}
