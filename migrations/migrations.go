// Package migrations embeds the goose SQL migrations, including the
// city reference dataset used by the nearest-city resolver.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
