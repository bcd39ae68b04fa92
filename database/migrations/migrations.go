// Package migrations contains all database migration files.
// Each migration file uses init() to call migration.Register().
// Imported for side effects by internal/server and cmd/server so every
// migration is registered at startup.
package migrations
