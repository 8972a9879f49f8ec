// Package assets embeds the templates, static files and content catalog
// shipped with the binary.
package assets

import "embed"

//go:embed content templates static
var FS embed.FS
