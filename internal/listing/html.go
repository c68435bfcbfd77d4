package listing

import (
	"embed"
	"html/template"
)

//go:embed static/*.html
var pagesFS embed.FS

//go:embed static/app.css
var appCSS []byte

//go:embed static/app.js
var appJS []byte

//go:embed static/description.tmpl.html
var descriptionTemplate []byte

var pages = template.Must(template.ParseFS(pagesFS, "static/index.html", "static/result.html"))
