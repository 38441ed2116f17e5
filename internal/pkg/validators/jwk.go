package validators

import (
	"github.com/go-playground/validator/v10"
)

// JWKAlgorithmValidation validates the JWK "alg" member against the key type (RSA or EC).
func JWKAlgorithmValidation(fl validator.FieldLevel) bool {
	keyType := fl.Parent().FieldByName("KeyType").String()
	alg := fl.Field().String()

	switch keyType {
	case "RSA":
		switch alg {
		case "RS256", "RS384", "RS512", "PS256", "PS384", "PS512", "RSA-OAEP", "RSA-OAEP-256", "RSA1_5":
			return true
		}
		return false
	case "EC":
		return alg == "ES256" || alg == "ES384" || alg == "ES512" || alg == "ECDH-ES"
	default:
		return false
	}
}
