// Package config loads service configuration from the environment with
// envconfig and validates it before the server starts. Flags in cmd/server
// override individual values after loading.
package config
