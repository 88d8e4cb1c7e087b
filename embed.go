// Package repsheet embeds the web assets served by the repsheet server.
package repsheet

import "embed"

// WebFS holds the static exercise picker page.
//
//go:embed web/static
var WebFS embed.FS
