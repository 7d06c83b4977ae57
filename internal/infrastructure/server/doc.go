// Package server assembles the ucalc HTTP service.
//
// NewServer builds the unit catalogue (built-ins plus any configured
// directory or URL), the session manager and its snapshot store, then
// mounts the middleware stack and routes:
//
//	recovery -> tracing -> metrics -> CORS -> rate limit -> handlers
//
// Run serves until Shutdown is called.
package server
