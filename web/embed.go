// Package web holds the embedded static pages for the support portal.
package web

import (
	"embed"
	"io/fs"
)

//go:embed public
var publicFS embed.FS

// Pages returns the embedded public directory as a filesystem rooted at it.
func Pages() fs.FS {
	sub, err := fs.Sub(publicFS, "public")
	if err != nil {
		panic(err)
	}
	return sub
}
