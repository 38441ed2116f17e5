// Package crypto defines the contracts and models for the subtle crypto adapter:
// the platform capability it consumes, the capability interface it exposes, JSON Web Keys
// and the error taxonomy shared by every implementation.

package crypto
