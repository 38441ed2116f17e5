package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestID propagates the caller's X-Request-ID or assigns a new UUID,
// exposing it on the gin context and the response.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx.Set(RequestIDHeader, requestID)
		ctx.Header(RequestIDHeader, requestID)
		ctx.Next()
	}
}
