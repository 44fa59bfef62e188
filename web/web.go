// Package web holds the static capture page served at the root.
package web

import _ "embed"

// IndexHTML is the mobile capture page.
//
//go:embed index.html
var IndexHTML []byte
