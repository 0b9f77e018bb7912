package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Storefront is the template name of the product grid page
const Storefront = "storefront.html"

// Load parses the embedded HTML templates
func Load() *template.Template {
	return template.Must(template.ParseFS(files, "*.html"))
}
