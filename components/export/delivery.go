package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Disposition tells the host how to present a delivered file.
type Disposition string

const (
	// Attachment asks the host to save the file.
	Attachment Disposition = "attachment"
	// Inline asks the host to display the file, e.g. to open a print dialog.
	Inline Disposition = "inline"
)

// File is a named payload handed to a Delivery.
type File struct {
	Name        string
	ContentType string
	Disposition Disposition
	Data        []byte
}

// Receipt identifies a delivered file.
type Receipt struct {
	Token    string `json:"token,omitempty"`
	Filename string `json:"filename"`
	Location string `json:"location,omitempty"`
	Size     int    `json:"size"`
}

// Delivery hands bytes to the host as a named file.
type Delivery interface {
	Deliver(ctx context.Context, file File) (Receipt, error)
}

// DeliveryFunc adapts a function into a Delivery.
type DeliveryFunc func(ctx context.Context, file File) (Receipt, error)

// Deliver calls f.
func (f DeliveryFunc) Deliver(ctx context.Context, file File) (Receipt, error) {
	return f(ctx, file)
}

// Printer renders a document for the host's print facility.
type Printer interface {
	Print(ctx context.Context, doc PrintDocument, filename string) (Receipt, error)
}

// DirDelivery writes files into a directory.
type DirDelivery struct {
	Dir string
}

// Deliver writes the file under Dir, creating the directory if needed.
func (d DirDelivery) Deliver(ctx context.Context, file File) (Receipt, error) {
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}
	name := filepath.Base(strings.TrimSpace(file.Name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return Receipt{}, fmt.Errorf("export: invalid file name %q", file.Name)
	}
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Receipt{}, fmt.Errorf("export: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return Receipt{}, fmt.Errorf("export: write %s: %w", path, err)
	}
	return Receipt{Filename: name, Location: path, Size: len(file.Data)}, nil
}
