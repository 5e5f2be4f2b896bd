// Package middleware provides HTTP middleware for the Grand Line API.
//
// The standard chain, outermost first:
//
//	RequestID -> Logger -> Recovery -> CORS -> RateLimit -> Compress
//
// Auth is applied per-route on everything under /v1 except the auth
// endpoints and the health check. It validates the Bearer token and
// stores the caller's id, email, and claims in the request context.
package middleware
