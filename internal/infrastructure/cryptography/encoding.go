package cryptography

import (
	"encoding/base64"
	"fmt"
	"strings"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// urlSafeAlphabet maps the base64url characters onto the standard alphabet
var urlSafeAlphabet = strings.NewReplacer("-", "+", "_", "/")

// encodeUTF8 returns the UTF-8 bytes of s with ill-formed sequences replaced by U+FFFD
func encodeUTF8(s string) []byte {
	out, _, err := transform.String(runes.ReplaceIllFormed(), s)
	if err != nil {
		// ReplaceIllFormed never fails on in-memory input
		return []byte(s)
	}
	return []byte(out)
}

// padBase64 appends '=' until the length is a multiple of 4
func padBase64(s string) string {
	for len(s)%4 != 0 {
		s += "="
	}
	return s
}

// decodeSignature normalizes padding, accepts both base64 alphabets and decodes
func decodeSignature(signatureBase64 string) ([]byte, error) {
	normalized := padBase64(urlSafeAlphabet.Replace(signatureBase64))

	signature, err := base64.StdEncoding.DecodeString(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrMalformedSignatureEncoding, err)
	}
	return signature, nil
}
