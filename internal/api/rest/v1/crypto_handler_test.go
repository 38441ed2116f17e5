//go:build unit
// +build unit

package v1

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestCryptoHandler_Digest_Success(t *testing.T) {
	mockCrypto := new(MockCrypto)
	handler := NewCryptoHandler(mockCrypto, 1024)

	mockCrypto.
		On("Sha256DigestBase64", mock.Anything, "abc").
		Return("ungWv48Bz+pBQUDeXa4iI7ADYaOWF3qctBD/YfIAFa0=", nil)

	c, w := newTestContext("POST", "/digest", `{"data": "abc"}`)
	handler.Digest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"digest": "ungWv48Bz+pBQUDeXa4iI7ADYaOWF3qctBD/YfIAFa0="}`, w.Body.String())
	mockCrypto.AssertExpectations(t)
}

func TestCryptoHandler_Digest_EmptyText(t *testing.T) {
	mockCrypto := new(MockCrypto)
	handler := NewCryptoHandler(mockCrypto, 1024)

	mockCrypto.
		On("Sha256DigestBase64", mock.Anything, "").
		Return("47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU=", nil)

	c, w := newTestContext("POST", "/digest", `{"data": ""}`)
	handler.Digest(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockCrypto.AssertExpectations(t)
}

func TestCryptoHandler_Digest_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Malformed JSON", `{"data": `},
		{"Missing data", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCrypto := new(MockCrypto)
			handler := NewCryptoHandler(mockCrypto, 1024)

			c, w := newTestContext("POST", "/digest", tt.body)
			handler.Digest(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockCrypto.AssertNotCalled(t, "Sha256DigestBase64", mock.Anything, mock.Anything)
		})
	}
}

func TestCryptoHandler_Digest_PlatformFailure(t *testing.T) {
	mockCrypto := new(MockCrypto)
	handler := NewCryptoHandler(mockCrypto, 1024)

	mockCrypto.
		On("Sha256DigestBase64", mock.Anything, "abc").
		Return("", fmt.Errorf("%w: digest: boom", cryptoDomain.ErrPlatformOperationFailure))

	c, w := newTestContext("POST", "/digest", `{"data": "abc"}`)
	handler.Digest(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "error computing digest")
}

func TestCryptoHandler_Random(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		count      int
		result     string
		err        error
		wantStatus int
		wantCall   bool
	}{
		{"Sixteen bytes", "16", 16, "AAECAwQFBgcICQoLDA0ODw==", nil, http.StatusOK, true},
		{"Zero bytes", "0", 0, "", nil, http.StatusOK, true},
		{"Negative count", "-1", -1, "", fmt.Errorf("%w: got -1", cryptoDomain.ErrInvalidByteCount), http.StatusBadRequest, true},
		{"Above configured maximum", "1025", 0, "", nil, http.StatusBadRequest, false},
		{"Not a number", "abc", 0, "", nil, http.StatusBadRequest, false},
		{"Missing count", "", 0, "", nil, http.StatusBadRequest, false},
		{"Quota exceeded", "512", 512, "", fmt.Errorf("%w: quota exceeded", cryptoDomain.ErrPlatformOperationFailure), http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCrypto := new(MockCrypto)
			handler := NewCryptoHandler(mockCrypto, 1024)
			if tt.wantCall {
				mockCrypto.On("RandomBytesBase64", tt.count).Return(tt.result, tt.err)
			}

			c, w := newTestContext("GET", "/random?count="+tt.query, "")
			handler.Random(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, fmt.Sprintf(`{"random": %q, "count": %d}`, tt.result, tt.count), w.Body.String())
			}
			if tt.wantCall {
				mockCrypto.AssertExpectations(t)
			} else {
				mockCrypto.AssertNotCalled(t, "RandomBytesBase64", mock.Anything)
			}
		})
	}
}

const verifyBody = `{
	"jwk": {"kty": "RSA", "n": "sXch", "e": "AQAB", "alg": "RS256"},
	"data": "hello",
	"signature": "c2lnbmF0dXJl"
}`

func TestCryptoHandler_Verify(t *testing.T) {
	tests := []struct {
		name       string
		valid      bool
		err        error
		wantStatus int
		wantBody   string
	}{
		{"Valid signature", true, nil, http.StatusOK, `{"valid": true}`},
		{"Invalid signature", false, nil, http.StatusOK, `{"valid": false}`},
		{"Key import failure", false, fmt.Errorf("%w: kty must be RSA", cryptoDomain.ErrKeyImportFailure), http.StatusBadRequest, ""},
		{"Malformed signature", false, fmt.Errorf("%w: illegal base64 data", cryptoDomain.ErrMalformedSignatureEncoding), http.StatusBadRequest, ""},
		{"Capability unavailable", false, cryptoDomain.ErrUnavailableCapability, http.StatusServiceUnavailable, ""},
		{"Platform failure", false, errors.New("engine exploded"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCrypto := new(MockCrypto)
			handler := NewCryptoHandler(mockCrypto, 1024)

			mockCrypto.
				On("Verify", mock.Anything, mock.MatchedBy(func(jwk *cryptoDomain.JSONWebKey) bool {
					return jwk.KeyType == "RSA" && jwk.Modulus == "sXch" && jwk.Exponent == "AQAB"
				}), "hello", "c2lnbmF0dXJl").
				Return(tt.valid, tt.err)

			c, w := newTestContext("POST", "/verify", verifyBody)
			handler.Verify(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), "error verifying signature")
			}
			mockCrypto.AssertExpectations(t)
		})
	}
}

func TestCryptoHandler_Verify_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Malformed JSON", `{"jwk": `},
		{"Missing JWK", `{"data": "hello", "signature": "c2ln"}`},
		{"Missing signature", `{"jwk": {"kty": "RSA", "n": "sXch", "e": "AQAB"}, "data": "hello"}`},
		{"JWK without kty", `{"jwk": {"n": "sXch", "e": "AQAB"}, "data": "hello", "signature": "c2ln"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockCrypto := new(MockCrypto)
			handler := NewCryptoHandler(mockCrypto, 1024)

			c, w := newTestContext("POST", "/verify", tt.body)
			handler.Verify(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockCrypto.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Key import", cryptoDomain.ErrKeyImportFailure, http.StatusBadRequest},
		{"Malformed signature", cryptoDomain.ErrMalformedSignatureEncoding, http.StatusBadRequest},
		{"Invalid byte count", cryptoDomain.ErrInvalidByteCount, http.StatusBadRequest},
		{"Unavailable", fmt.Errorf("wrapped: %w", cryptoDomain.ErrUnavailableCapability), http.StatusServiceUnavailable},
		{"Platform", cryptoDomain.ErrPlatformOperationFailure, http.StatusInternalServerError},
		{"Unknown", errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}
