// Package templates holds the HTML pages and static assets, embedded into
// the binary.
package templates

import "embed"

//go:embed *.html
var Pages embed.FS

//go:embed static
var Static embed.FS
