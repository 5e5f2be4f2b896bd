// Package config manages application configuration for the Grand Line API.
//
// Configuration is loaded from environment variables (with an optional .env
// file applied first) and validated once at startup:
//
//	cfg, _ := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - DatabaseConfig: SurrealDB connection settings
//   - JWTConfig: JWT signing and validation settings
//   - SessionConfig: game-session retention and sweep cadence
//
// Sensible development defaults are provided for every value, so a bare
// environment boots against a local SurrealDB with an ephemeral JWT key.
package config
