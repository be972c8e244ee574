package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle so callers can reuse or
// override individual field templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
