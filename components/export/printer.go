package export

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"

	template "github.com/goliatone/go-template"
)

const printTemplate = "print.html"

//go:embed templates/*.html
var printTemplates embed.FS

// NewTemplateRenderer returns a go-template renderer over the embedded
// print.html.
func NewTemplateRenderer() (Renderer, error) {
	root, err := fs.Sub(printTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("export: print templates: %w", err)
	}
	return template.NewRenderer(
		template.WithFS(root),
		template.WithExtension(".html"),
	)
}

// Renderer describes the template renderer contract used by HTMLPrinter.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

// HTMLPrinter renders print documents to HTML and hands them to a Delivery
// inline, so the host opens them and triggers its print dialog.
type HTMLPrinter struct {
	renderer Renderer
	delivery Delivery
	template string
}

// NewHTMLPrinter wires a renderer and a delivery target.
func NewHTMLPrinter(renderer Renderer, delivery Delivery) *HTMLPrinter {
	return &HTMLPrinter{renderer: renderer, delivery: delivery, template: printTemplate}
}

// WithTemplate overrides the template name.
func (p *HTMLPrinter) WithTemplate(name string) *HTMLPrinter {
	if name != "" {
		p.template = name
	}
	return p
}

// Print renders doc and delivers it as <filename>.html.
func (p *HTMLPrinter) Print(ctx context.Context, doc PrintDocument, filename string) (Receipt, error) {
	if p.renderer == nil {
		return Receipt{}, fmt.Errorf("export: printer renderer is required")
	}
	if p.delivery == nil {
		return Receipt{}, errNoDelivery
	}
	var buf bytes.Buffer
	html, err := p.renderer.Render(p.template, map[string]any{"document": doc}, &buf)
	if err != nil {
		return Receipt{}, fmt.Errorf("export: render print document: %w", err)
	}
	if buf.Len() == 0 {
		buf.WriteString(html)
	}
	return p.delivery.Deliver(ctx, File{
		Name:        filename + ".html",
		ContentType: "text/html; charset=utf-8",
		Disposition: Inline,
		Data:        buf.Bytes(),
	})
}
