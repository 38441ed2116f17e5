package metrics

import (
	"context"
	"fmt"
	"time"

	cryptoDomain "github.com/MGTheTrain/subtle-crypto-adapter/internal/domain/crypto"
	"github.com/prometheus/client_golang/prometheus"
)

// Operation label values
const (
	OperationDigest = "digest"
	OperationRandom = "random"
	OperationVerify = "verify"
)

// Outcome label values
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// instrumentedCrypto decorates a Crypto with operation counters and durations
type instrumentedCrypto struct {
	inner      cryptoDomain.Crypto
	operations *prometheus.CounterVec
	durations  *prometheus.HistogramVec
}

// NewInstrumentedCrypto wraps inner and registers its collectors with reg
func NewInstrumentedCrypto(inner cryptoDomain.Crypto, reg prometheus.Registerer) (cryptoDomain.Crypto, error) {
	if inner == nil {
		return nil, fmt.Errorf("crypto cannot be nil")
	}

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "crypto_adapter",
		Name:      "operations_total",
		Help:      "Crypto adapter operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "crypto_adapter",
		Name:      "operation_duration_seconds",
		Help:      "Time spent waiting on the platform engine per operation.",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
	}, []string{"operation"})

	if err := reg.Register(operations); err != nil {
		return nil, fmt.Errorf("failed to register operations counter: %w", err)
	}
	if err := reg.Register(durations); err != nil {
		return nil, fmt.Errorf("failed to register duration histogram: %w", err)
	}

	return &instrumentedCrypto{
		inner:      inner,
		operations: operations,
		durations:  durations,
	}, nil
}

func (c *instrumentedCrypto) observe(operation string, start time.Time, err error) {
	c.durations.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		c.operations.WithLabelValues(operation, OutcomeError).Inc()
	}
}

// Sha256DigestBase64 delegates to the wrapped Crypto
func (c *instrumentedCrypto) Sha256DigestBase64(ctx context.Context, text string) (string, error) {
	start := time.Now()
	digest, err := c.inner.Sha256DigestBase64(ctx, text)
	c.observe(OperationDigest, start, err)
	if err == nil {
		c.operations.WithLabelValues(OperationDigest, OutcomeOK).Inc()
	}
	return digest, err
}

// RandomBytesBase64 delegates to the wrapped Crypto
func (c *instrumentedCrypto) RandomBytesBase64(count int) (string, error) {
	start := time.Now()
	random, err := c.inner.RandomBytesBase64(count)
	c.observe(OperationRandom, start, err)
	if err == nil {
		c.operations.WithLabelValues(OperationRandom, OutcomeOK).Inc()
	}
	return random, err
}

// Verify delegates to the wrapped Crypto, counting false results as invalid
func (c *instrumentedCrypto) Verify(ctx context.Context, publicKey *cryptoDomain.JSONWebKey, data, signatureBase64 string) (bool, error) {
	start := time.Now()
	valid, err := c.inner.Verify(ctx, publicKey, data, signatureBase64)
	c.observe(OperationVerify, start, err)
	switch {
	case err != nil:
	case valid:
		c.operations.WithLabelValues(OperationVerify, OutcomeOK).Inc()
	default:
		c.operations.WithLabelValues(OperationVerify, OutcomeInvalid).Inc()
	}
	return valid, err
}
