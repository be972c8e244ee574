package formfields

import (
	"io/fs"

	vanilla "github.com/goliatone/go-formfields/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla field templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
