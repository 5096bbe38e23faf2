package export

import (
	"time"
)

// PrintColumn is a header cell of a print document.
type PrintColumn struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// PrintDocument is a titled table ready to be rendered for printing.
type PrintDocument struct {
	Title       string        `json:"title"`
	GeneratedAt time.Time     `json:"generated_at"`
	Generated   string        `json:"generated"`
	Count       int           `json:"count"`
	Columns     []PrintColumn `json:"columns"`
	Rows        [][]string    `json:"rows"`
}

// BuildPrintDocument lays records out as a table with humanized headers.
// Missing values render as empty cells.
func BuildPrintDocument(records []*Record, title string, now time.Time) (PrintDocument, error) {
	if len(records) == 0 {
		return PrintDocument{}, ErrNoData
	}
	keys := records[0].Keys()
	columns := make([]PrintColumn, len(keys))
	for i, key := range keys {
		columns[i] = PrintColumn{Key: key, Label: Humanize(key)}
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(keys))
		for i, key := range keys {
			row[i] = FormatValue(rec.Value(key))
		}
		rows = append(rows, row)
	}
	if title == "" {
		title = "Export"
	}
	return PrintDocument{
		Title:       title,
		GeneratedAt: now,
		Generated:   now.Format("2006-01-02 15:04:05"),
		Count:       len(records),
		Columns:     columns,
		Rows:        rows,
	}, nil
}
