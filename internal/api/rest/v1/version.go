package v1

// BasePath is the route prefix for version 1 of the API
const BasePath = "/api/v1/cas"

// RequestIDHeader carries the per-request identifier
const RequestIDHeader = "X-Request-ID"
