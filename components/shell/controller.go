package shell

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const defaultShellTemplate = "shell.html"

// LayoutResolver produces the composed shell state for a viewer.
type LayoutResolver interface {
	Layout(ctx context.Context, viewer ViewerContext) (Layout, error)
}

// ControllerOptions wires a Controller.
type ControllerOptions struct {
	Shell    LayoutResolver
	Renderer Renderer
	Template string
}

// Controller renders the shell for transports.
type Controller struct {
	shell    LayoutResolver
	renderer Renderer
	template string
}

// NewController builds a controller.
func NewController(opts ControllerOptions) *Controller {
	template := opts.Template
	if template == "" {
		template = defaultShellTemplate
	}
	return &Controller{
		shell:    opts.Shell,
		renderer: opts.Renderer,
		template: template,
	}
}

// Render resolves the layout for a viewer.
func (c *Controller) Render(ctx context.Context, viewer ViewerContext) (Layout, error) {
	if c.shell == nil {
		return Layout{}, errors.New("shell: controller has no shell")
	}
	return c.shell.Layout(ctx, viewer)
}

// RenderTemplate renders the shell page into out.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("shell: controller has no renderer")
	}
	layout, err := c.Render(ctx, viewer)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render(c.template, LayoutPayload(layout), out)
	return err
}

// LayoutPayload flattens a layout into template variables.
func LayoutPayload(layout Layout) map[string]any {
	return map[string]any{
		"active":        string(layout.Active),
		"section":       layout.Section,
		"sidebar":       layout.Sidebar,
		"header":        layout.Header,
		"panel":         map[string]any(layout.Panel),
		"notifications": layout.Notifications,
		"modal":         layout.Modal,
		"modal_body":    modalBodyText(layout.Modal.Body),
		"theme":         layout.Theme,
	}
}

// modalBodyText renders a modal body as text. Structured bodies are shown as
// indented JSON.
func modalBodyText(body any) string {
	switch v := body.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	}
	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return fmt.Sprint(body)
	}
	return string(data)
}
