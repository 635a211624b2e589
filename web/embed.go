// Package web provides the embedded templates and static assets of the
// Pokédex front end.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var assets embed.FS

// TemplatesFS returns the HTML templates rooted at "templates".
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(assets, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// StaticFS returns the static assets rooted at "static", so files are
// accessed directly (e.g., "pokedex.css" not "static/pokedex.css").
func StaticFS() (fs.FS, error) {
	return fs.Sub(assets, "static")
}
