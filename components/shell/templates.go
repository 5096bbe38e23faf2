package shell

import (
	"embed"
	"fmt"
	"io"
	"io/fs"

	template "github.com/goliatone/go-template"
)

//go:embed templates/*.html
var pageTemplates embed.FS

// Renderer is the subset of go-template the controller needs.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// NewTemplateRenderer loads shell.html from the embedded templates.
func NewTemplateRenderer() (Renderer, error) {
	root, err := fs.Sub(pageTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("shell: page templates: %w", err)
	}
	return template.NewRenderer(
		template.WithFS(root),
		template.WithExtension(".html"),
	)
}
