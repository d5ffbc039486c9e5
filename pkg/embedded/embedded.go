package embedded

import (
	"embed"
	"io/fs"
)

// Browser shell for the index page
//
//go:embed static/app.css static/app.js
var staticFiles embed.FS

// Static returns the assets rooted at static/, for serving under /static
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err) // the embed directive guarantees the directory
	}
	return sub
}
