package v1

import (
	"errors"
	"fmt"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

// DigestRequest holds the text to digest
type DigestRequest struct {
	Data *string `json:"data" validate:"required"`
}

// DigestResponse holds the base64 SHA-256 digest
type DigestResponse struct {
	Digest string `json:"digest"`
}

// RandomResponse holds base64 random bytes
type RandomResponse struct {
	Random string `json:"random"`
	Count  int    `json:"count"`
}

// VerifyRequest holds a public JWK, the signed data and the base64 signature.
// The key is validated by JSONWebKey.Validate.
type VerifyRequest struct {
	JWK       *cryptoDomain.JSONWebKey `json:"jwk" validate:"-"`
	Data      *string                  `json:"data" validate:"required"`
	Signature string                   `json:"signature" validate:"required"`
}

// VerifyResponse holds the verification result
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

// Validate for validating DigestRequest struct
func (r *DigestRequest) Validate() error {
	return validateStruct(r)
}

// Validate for validating VerifyRequest struct, including the nested JWK
func (r *VerifyRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	if r.JWK == nil {
		return fmt.Errorf("validation failed: [Field: JWK, Tag: required]")
	}
	return r.JWK.Validate()
}

func validateStruct(s interface{}) error {
	validate := validator.New()

	err := validate.Struct(s)
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
