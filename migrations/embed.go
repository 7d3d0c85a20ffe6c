// Package migrations embeds the database schema migrations
package migrations

import "embed"

// FS holds the .sql migrations in apply order by file name
//
//go:embed *.sql
var FS embed.FS
