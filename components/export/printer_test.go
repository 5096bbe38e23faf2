package export

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	lastTemplate string
	lastData     any
	output       string
}

func (s *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	s.lastTemplate = name
	s.lastData = data
	for _, w := range out {
		if _, err := io.WriteString(w, s.output); err != nil {
			return "", err
		}
	}
	return s.output, nil
}

func TestHTMLPrinterDeliversInlineHTML(t *testing.T) {
	renderer := &stubRenderer{output: "<html>report</html>"}
	delivery := &recordingDelivery{}
	printer := NewHTMLPrinter(renderer, delivery)

	doc, err := BuildPrintDocument([]*Record{NewRecord(F("a", 1))}, "Report", fixedNow())
	require.NoError(t, err)

	receipt, err := printer.Print(context.Background(), doc, "report")
	require.NoError(t, err)
	assert.Equal(t, "report.html", receipt.Filename)
	assert.Equal(t, printTemplate, renderer.lastTemplate)

	data, ok := renderer.lastData.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, doc, data["document"])

	require.Len(t, delivery.files, 1)
	assert.Equal(t, Inline, delivery.files[0].Disposition)
	assert.Equal(t, "<html>report</html>", string(delivery.files[0].Data))
}

func TestHTMLPrinterRequiresRenderer(t *testing.T) {
	printer := NewHTMLPrinter(nil, &recordingDelivery{})
	_, err := printer.Print(context.Background(), PrintDocument{}, "x")
	require.Error(t, err)
}

func TestHTMLPrinterRendersEmbeddedTemplate(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	delivery := &recordingDelivery{}
	printer := NewHTMLPrinter(renderer, delivery)

	records := []*Record{
		NewRecord(F("name", "Ada"), F("lastContact", "2024-02-28")),
		NewRecord(F("name", "Grace"), F("lastContact", "2024-02-29")),
	}
	doc, err := BuildPrintDocument(records, "Leads Report", fixedNow())
	require.NoError(t, err)

	_, err = printer.Print(context.Background(), doc, "leads")
	require.NoError(t, err)
	require.Len(t, delivery.files, 1)

	html := string(delivery.files[0].Data)
	assert.Contains(t, html, "<title>Leads Report</title>")
	assert.Contains(t, html, "<h1>Leads Report</h1>")
	assert.Contains(t, html, "<th>Name</th><th>Last Contact</th>")
	assert.Contains(t, html, "Records: 2")
	assert.Contains(t, html, "Generated: 2024-03-01 09:30:00")
	assert.Contains(t, html, "<td>Grace</td><td>2024-02-29</td>")
}
