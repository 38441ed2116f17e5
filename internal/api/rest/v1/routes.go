package v1

import (
	"errors"
	"net/http"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"

	"github.com/gin-gonic/gin"
	"github.com/heptiolabs/healthcheck"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes sets up all the API routes for version 1 together with the health and metrics endpoints.
func SetupRoutes(r *gin.Engine,
	crypto cryptoDomain.Crypto,
	subtle cryptoDomain.Subtle,
	gatherer prometheus.Gatherer,
	maxRandomBytes int) {

	r.Use(RequestID())

	v1 := r.Group(BasePath) // lookup in version file

	// Crypto Routes
	cryptoHandler := NewCryptoHandler(crypto, maxRandomBytes)
	v1.POST("/digest", cryptoHandler.Digest)
	v1.GET("/random", cryptoHandler.Random)
	v1.POST("/verify", cryptoHandler.Verify)

	// Health Routes
	health := NewHealthHandler(subtle)
	r.GET("/healthz/live", gin.WrapH(http.StripPrefix("/healthz", health)))
	r.GET("/healthz/ready", gin.WrapH(http.StripPrefix("/healthz", health)))

	// Metrics Route
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// NewHealthHandler returns liveness and readiness probes; readiness fails while subtle is unavailable
func NewHealthHandler(subtle cryptoDomain.Subtle) healthcheck.Handler {
	health := healthcheck.NewHandler()
	health.AddLivenessCheck("process", func() error { return nil })
	health.AddReadinessCheck("subtle-crypto", func() error {
		if subtle == nil || !subtle.Available() {
			return errors.New("subtle crypto capability unavailable")
		}
		return nil
	})
	return health
}
