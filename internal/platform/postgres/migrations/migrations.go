// Package migrations embeds the goose SQL migrations for the schema.
package migrations

import "embed"

// Migrations holds the embedded SQL migration files, applied with goose
// at startup.
//
//go:embed *.sql
var Migrations embed.FS
