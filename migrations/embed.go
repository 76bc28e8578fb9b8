// Package migrations holds the SQL schema for the track archive.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
