package middleware

// Common context keys and header names
const (
	CompanyContextKey   = "company_id"
	APIKeyContextKey    = "api_key_id"
	RequestIDContextKey = "request_id"

	APIKeyHeader  = "x-api-key"
	CompanyHeader = "x-company-id"
)
