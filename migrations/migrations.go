// Package migrations embeds the SQL migration files for the review database.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS
