// Package web embeds the HTML templates served by the application.
package web

import "embed"

// Templates holds every page and partial template.
//
//go:embed templates
var Templates embed.FS
