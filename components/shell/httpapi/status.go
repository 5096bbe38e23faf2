package httpapi

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-dashboard-shell/components/shell"
	"github.com/goliatone/go-dashboard-shell/components/shell/commands"
	"github.com/goliatone/go-dashboard-shell/components/shell/queries"
)

// StatusFor maps shell errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, commands.ErrInvalidPayload), errors.Is(err, shell.ErrInvalidAction):
		return http.StatusBadRequest
	case errors.Is(err, queries.ErrDownloadNotFound):
		return http.StatusNotFound
	case errors.Is(err, shell.ErrUnknownAction):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
