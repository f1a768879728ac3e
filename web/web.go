// Package web menampung aset statis aplikasi (template HTML) yang
// di-embed ke binary.
package web

import "embed"

//go:embed templates/*.html
var TemplatesFS embed.FS
