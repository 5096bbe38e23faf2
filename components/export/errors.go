package export

import "errors"

// ErrNoData reports an export attempted with zero records. It is benign:
// nothing was delivered and callers usually surface it as a warning.
var ErrNoData = errors.New("export: no data to export")

var (
	errUnknownFormat = errors.New("export: unknown format")
	errNoDelivery    = errors.New("export: delivery target is required")
	errNoPrinter     = errors.New("export: printer is required")
)
