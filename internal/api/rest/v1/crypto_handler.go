package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"

	"github.com/gin-gonic/gin"
)

// CryptoHandler defines the interface for handling digest, random and verify operations
type CryptoHandler interface {
	Digest(ctx *gin.Context)
	Random(ctx *gin.Context)
	Verify(ctx *gin.Context)
}

// cryptoHandler struct holds the crypto adapter
type cryptoHandler struct {
	crypto         cryptoDomain.Crypto
	maxRandomBytes int
}

// NewCryptoHandler creates a new CryptoHandler.
// Random requests above maxRandomBytes are rejected before reaching the adapter.
func NewCryptoHandler(crypto cryptoDomain.Crypto, maxRandomBytes int) CryptoHandler {
	return &cryptoHandler{
		crypto:         crypto,
		maxRandomBytes: maxRandomBytes,
	}
}

// Digest handles the POST request to compute a SHA-256 digest
// @Summary Compute the SHA-256 digest of a text
// @Description UTF-8 encode the provided text, digest it with SHA-256 and return the digest base64-encoded.
// @Tags Crypto
// @Accept json
// @Produce json
// @Param requestBody body DigestRequest true "Text to digest"
// @Success 200 {object} DigestResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /digest [post]
func (handler *cryptoHandler) Digest(ctx *gin.Context) {
	var request DigestRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid digest data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	digest, err := handler.crypto.Sha256DigestBase64(ctx.Request.Context(), *request.Data)
	if err != nil {
		abortWithError(ctx, statusForError(err), fmt.Sprintf("error computing digest: %v", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, DigestResponse{Digest: digest})
}

// Random handles the GET request to generate random bytes
// @Summary Generate cryptographically secure random bytes
// @Description Generate count random bytes and return them base64-encoded.
// @Tags Crypto
// @Produce json
// @Param count query int true "Number of random bytes"
// @Success 200 {object} RandomResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /random [get]
func (handler *cryptoHandler) Random(ctx *gin.Context) {
	count, err := strconv.Atoi(ctx.Query("count"))
	if err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid count: %q", ctx.Query("count")))
		return
	}

	if count > handler.maxRandomBytes {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("count %d exceeds the maximum of %d bytes", count, handler.maxRandomBytes))
		return
	}

	random, err := handler.crypto.RandomBytesBase64(count)
	if err != nil {
		abortWithError(ctx, statusForError(err), fmt.Sprintf("error generating random bytes: %v", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, RandomResponse{Random: random, Count: count})
}

// Verify handles the POST request to verify an RS256 signature
// @Summary Verify an RSASSA-PKCS1-v1_5 SHA-256 signature
// @Description Verify a base64 signature over the UTF-8 encoding of data with the provided public JWK.
// @Tags Crypto
// @Accept json
// @Produce json
// @Param requestBody body VerifyRequest true "Public key, data and signature"
// @Success 200 {object} VerifyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /verify [post]
func (handler *cryptoHandler) Verify(ctx *gin.Context) {
	var request VerifyRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		abortWithError(ctx, http.StatusBadRequest, fmt.Sprintf("invalid verify data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		abortWithError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	valid, err := handler.crypto.Verify(ctx.Request.Context(), request.JWK, *request.Data, request.Signature)
	if err != nil {
		abortWithError(ctx, statusForError(err), fmt.Sprintf("error verifying signature: %v", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, VerifyResponse{Valid: valid})
}

// statusForError maps adapter failures onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, cryptoDomain.ErrKeyImportFailure),
		errors.Is(err, cryptoDomain.ErrMalformedSignatureEncoding),
		errors.Is(err, cryptoDomain.ErrInvalidByteCount):
		return http.StatusBadRequest
	case errors.Is(err, cryptoDomain.ErrUnavailableCapability):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(ctx *gin.Context, status int, message string) {
	var errorResponse ErrorResponse
	errorResponse.Message = message
	errorResponse.RequestID = ctx.GetString(RequestIDHeader)
	ctx.AbortWithStatusJSON(status, errorResponse)
}
