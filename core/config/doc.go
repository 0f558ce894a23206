// Package config loads the application configuration.
//
// Values come from environment variables, optionally seeded from a .env file,
// with defaults taken from the `default` struct tags of each section:
//   - Server: port, API key, replica id
//   - Storage: S3/MinIO endpoint, credentials and bucket of the remote replica
//   - Database: driver (mysql, sqlite) and connection of the local replica
//   - Log: level and format
//   - Sync: object layout, sweep concurrency and dry-run
//
// Nested keys map to upper-case env names joined by underscores, e.g.
// SYNC_DAY_PREFIX sets sync.day_prefix.
//
//	cfg, err := config.LoadConfig(".")
package config
