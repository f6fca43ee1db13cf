// Package migrations embeds the goose SQL migrations for the device-local
// database. Each version declares a superset of the previous one; families
// are only ever added, never dropped or rewritten.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
