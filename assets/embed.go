package assets

import (
	"embed"
	"io/fs"
)

//go:embed web
var files embed.FS

// Web returns the browser client rooted at web/ (index.html, app.js, style.css).
func Web() fs.FS {
	sub, err := fs.Sub(files, "web")
	if err != nil {
		panic(err) // the directory is embedded at build time
	}
	return sub
}
