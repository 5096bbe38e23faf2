package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Format selects the output of an export.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// ParseFormat normalizes a format name. "print" is accepted as an alias of pdf.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "csv":
		return FormatCSV, nil
	case "pdf", "print":
		return FormatPDF, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownFormat, value)
	}
}

// Request describes an export of a tagged dataset.
type Request struct {
	Tag      string
	Format   Format
	Filename string
	Title    string
	Records  []*Record
}

// Options configures a Pipeline.
type Options struct {
	Delivery  Delivery
	Printer   Printer
	Registry  *Registry
	Telemetry Telemetry
	Now       func() time.Time
}

// Telemetry receives export.completed, export.failed and export.empty.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// Pipeline projects datasets and hands the encoded result to the host.
type Pipeline struct {
	delivery  Delivery
	printer   Printer
	registry  *Registry
	telemetry Telemetry
	now       func() time.Time
}

// NewPipeline builds a pipeline. A nil registry uses the built-in recipes.
func NewPipeline(opts Options) *Pipeline {
	registry := opts.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		delivery:  opts.Delivery,
		printer:   opts.Printer,
		registry:  registry,
		telemetry: normalizeTelemetry(opts.Telemetry),
		now:       now,
	}
}

// Registry exposes the projection table.
func (p *Pipeline) Registry() *Registry {
	return p.registry
}

// ProjectForExport applies the recipe registered for tag.
func (p *Pipeline) ProjectForExport(tag string, records []*Record) []*Record {
	return p.registry.Project(tag, records)
}

// Export projects req.Records with req.Tag and dispatches on req.Format.
func (p *Pipeline) Export(ctx context.Context, req Request) (Receipt, error) {
	filename := strings.TrimSpace(req.Filename)
	if filename == "" {
		filename = req.Tag
	}
	if filename == "" {
		filename = "export"
	}
	records := p.ProjectForExport(req.Tag, req.Records)
	switch req.Format {
	case FormatCSV:
		return p.ExportCSV(ctx, records, filename)
	case FormatPDF:
		return p.ExportPDF(ctx, records, filename, req.Title)
	case FormatJSON:
		return p.ExportJSON(ctx, records, filename)
	default:
		return Receipt{}, fmt.Errorf("%w: %q", errUnknownFormat, req.Format)
	}
}

// ExportCSV delivers records as <filename>.csv.
func (p *Pipeline) ExportCSV(ctx context.Context, records []*Record, filename string) (Receipt, error) {
	if len(records) == 0 {
		return Receipt{}, p.empty(ctx, FormatCSV, filename)
	}
	data, err := EncodeCSV(records)
	if err != nil {
		return Receipt{}, err
	}
	return p.deliver(ctx, FormatCSV, len(records), File{
		Name:        filename + ".csv",
		ContentType: "text/csv; charset=utf-8",
		Disposition: Attachment,
		Data:        data,
	})
}

// ExportJSON delivers records as <filename>.json.
func (p *Pipeline) ExportJSON(ctx context.Context, records []*Record, filename string) (Receipt, error) {
	if len(records) == 0 {
		return Receipt{}, p.empty(ctx, FormatJSON, filename)
	}
	data, err := EncodeJSON(records)
	if err != nil {
		return Receipt{}, err
	}
	return p.deliver(ctx, FormatJSON, len(records), File{
		Name:        filename + ".json",
		ContentType: "application/json",
		Disposition: Attachment,
		Data:        data,
	})
}

// ExportPDF renders a titled table and hands it to the printer.
func (p *Pipeline) ExportPDF(ctx context.Context, records []*Record, filename, title string) (Receipt, error) {
	if len(records) == 0 {
		return Receipt{}, p.empty(ctx, FormatPDF, filename)
	}
	if p.printer == nil {
		return Receipt{}, errNoPrinter
	}
	doc, err := BuildPrintDocument(records, title, p.now())
	if err != nil {
		return Receipt{}, err
	}
	receipt, err := p.printer.Print(ctx, doc, filename)
	if err != nil {
		p.telemetry.Record(ctx, "export.failed", map[string]any{
			"level":    "error",
			"format":   string(FormatPDF),
			"filename": filename,
			"error":    err.Error(),
		})
		return Receipt{}, err
	}
	p.telemetry.Record(ctx, "export.completed", map[string]any{
		"format":   string(FormatPDF),
		"filename": receipt.Filename,
		"records":  len(records),
	})
	return receipt, nil
}

func (p *Pipeline) deliver(ctx context.Context, format Format, count int, file File) (Receipt, error) {
	if p.delivery == nil {
		return Receipt{}, errNoDelivery
	}
	receipt, err := p.delivery.Deliver(ctx, file)
	if err != nil {
		p.telemetry.Record(ctx, "export.failed", map[string]any{
			"level":    "error",
			"format":   string(format),
			"filename": file.Name,
			"error":    err.Error(),
		})
		return Receipt{}, fmt.Errorf("export: deliver %s: %w", file.Name, err)
	}
	p.telemetry.Record(ctx, "export.completed", map[string]any{
		"format":   string(format),
		"filename": file.Name,
		"records":  count,
		"bytes":    len(file.Data),
	})
	return receipt, nil
}

func (p *Pipeline) empty(ctx context.Context, format Format, filename string) error {
	p.telemetry.Record(ctx, "export.empty", map[string]any{
		"level":    "warn",
		"format":   string(format),
		"filename": filename,
	})
	return ErrNoData
}

// IsNoData reports whether err is the benign empty dataset signal.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}
