// Package middleware provides the HTTP middleware of the calculator API.
//
//   - CORS: cross-origin access via gin-contrib/cors, exposing the trace headers
//   - RateLimit: per-IP token buckets with idle eviction
//   - GlobalRateLimit: one token bucket shared by every client
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
