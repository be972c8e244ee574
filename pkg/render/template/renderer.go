package template

import (
	"io"
)

// TemplateRenderer is the part of the github.com/goliatone/go-template engine
// contract the HTML renderers rely on.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
