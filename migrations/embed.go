// Package migrations embeds the goose SQL migrations that create the
// PostGIS extension and the travelpoint, travelroute and members tables.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// cmd/migrate and the integration tests hand it to goose.NewProvider.
//
//go:embed *.sql
var FS embed.FS
