package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/goliatone/go-dashboard-shell/components/shell"
	"github.com/goliatone/go-dashboard-shell/components/shell/commands"
)

// PageRenderer renders the shell page for a viewer.
type PageRenderer interface {
	RenderTemplate(ctx context.Context, viewer shell.ViewerContext, out io.Writer) error
}

// Handlers exposes the shell over plain net/http.
type Handlers struct {
	API       Executor
	Page      PageRenderer
	Layout    gocommand.Querier[shell.ViewerContext, shell.Layout]
	Downloads gocommand.Querier[string, export.File]
	Broadcast *shell.Broadcast
	// Viewer resolves the viewer of a request. Nil reads the locale query
	// parameter and the Accept-Language header.
	Viewer func(*http.Request) shell.ViewerContext
}

// Routes mounts every handler under base, e.g. "/admin".
func (h *Handlers) Routes(base string) *http.ServeMux {
	base = strings.TrimRight(base, "/")
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+base+"/shell", h.HandlePage)
	mux.HandleFunc("GET "+base+"/shell/_state", h.HandleState)
	mux.HandleFunc("POST "+base+"/shell/section", h.HandleSetSection)
	mux.HandleFunc("POST "+base+"/shell/search", h.HandleSearch)
	mux.HandleFunc("POST "+base+"/shell/notifications", h.HandleShowNotification)
	mux.HandleFunc("DELETE "+base+"/shell/notifications/{id}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleRemoveNotification(w, r, r.PathValue("id"))
	})
	mux.HandleFunc("POST "+base+"/shell/modal/press", h.HandlePressModal)
	mux.HandleFunc("POST "+base+"/shell/modal/dismiss", h.HandleDismissModal)
	mux.HandleFunc("POST "+base+"/shell/theme/toggle", h.HandleToggleTheme)
	mux.HandleFunc("POST "+base+"/shell/panels/{section}/actions/{action}", func(w http.ResponseWriter, r *http.Request) {
		h.HandlePanelAction(w, r, r.PathValue("section"), r.PathValue("action"))
	})
	mux.HandleFunc("GET "+base+"/shell/downloads/{token}", func(w http.ResponseWriter, r *http.Request) {
		h.HandleDownload(w, r, r.PathValue("token"))
	})
	if h.Broadcast != nil {
		mux.HandleFunc("GET "+base+"/shell/ws", h.Broadcast.ServeWebSocket)
		mux.HandleFunc("GET "+base+"/shell/events", h.Broadcast.ServeSSE)
	}
	return mux
}

func (h *Handlers) viewer(r *http.Request) shell.ViewerContext {
	if h.Viewer != nil {
		return h.Viewer(r)
	}
	return ViewerFromRequest(r)
}

// ViewerFromRequest reads the locale from ?locale= or Accept-Language.
func ViewerFromRequest(r *http.Request) shell.ViewerContext {
	locale := strings.TrimSpace(r.URL.Query().Get("locale"))
	if locale == "" {
		locale = ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	}
	return shell.ViewerContext{Locale: strings.ToLower(locale)}
}

// ParseAcceptLanguage returns the first language tag of header.
func ParseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token = strings.TrimSpace(token); token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

// HandlePage renders the shell page. A section query parameter switches
// the active section first, so menu links can deep-link into a panel.
func (h *Handlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	if h.Page == nil {
		writeError(w, http.StatusNotImplemented, errors.New("page renderer not configured"))
		return
	}
	if section := strings.TrimSpace(r.URL.Query().Get("section")); section != "" && h.API != nil {
		if err := h.API.SetSection(r.Context(), commands.SetSectionInput{Section: section}); err != nil {
			writeError(w, StatusFor(err), err)
			return
		}
	}
	var buf bytes.Buffer
	if err := h.Page.RenderTemplate(r.Context(), h.viewer(r), &buf); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *Handlers) HandleState(w http.ResponseWriter, r *http.Request) {
	if h.Layout == nil {
		writeError(w, http.StatusNotImplemented, errors.New("layout query not configured"))
		return
	}
	layout, err := h.Layout.Query(r.Context(), h.viewer(r))
	if err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func (h *Handlers) HandleSetSection(w http.ResponseWriter, r *http.Request) {
	var payload commands.SetSectionInput
	if !decode(w, r, &payload) {
		return
	}
	h.respond(w, h.API.SetSection(r.Context(), payload), http.StatusOK, "switched")
}

func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var payload commands.SearchInput
	if !decode(w, r, &payload) {
		return
	}
	h.respond(w, h.API.Search(r.Context(), payload), http.StatusAccepted, "searched")
}

func (h *Handlers) HandleShowNotification(w http.ResponseWriter, r *http.Request) {
	var payload commands.ShowNotificationInput
	if !decode(w, r, &payload) {
		return
	}
	result, err := h.API.ShowNotification(r.Context(), payload)
	if err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handlers) HandleRemoveNotification(w http.ResponseWriter, r *http.Request, id string) {
	err := h.API.RemoveNotification(r.Context(), commands.RemoveNotificationInput{ID: id})
	if err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandlePressModal(w http.ResponseWriter, r *http.Request) {
	var payload commands.PressModalInput
	if !decode(w, r, &payload) {
		return
	}
	h.respond(w, h.API.PressModal(r.Context(), payload), http.StatusOK, "pressed")
}

func (h *Handlers) HandleDismissModal(w http.ResponseWriter, r *http.Request) {
	var payload commands.DismissModalInput
	if r.ContentLength != 0 && !decode(w, r, &payload) {
		return
	}
	h.respond(w, h.API.DismissModal(r.Context(), payload), http.StatusOK, "dismissed")
}

func (h *Handlers) HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	h.respond(w, h.API.ToggleTheme(r.Context()), http.StatusOK, "toggled")
}

// HandlePanelAction dispatches an action; the body, when present, holds the
// action params.
func (h *Handlers) HandlePanelAction(w http.ResponseWriter, r *http.Request, section, action string) {
	input := commands.PanelActionInput{Section: section, Name: action}
	if r.ContentLength != 0 {
		var params map[string]any
		if !decode(w, r, &params) {
			return
		}
		input.Params = params
	}
	h.respond(w, h.API.PanelAction(r.Context(), input), http.StatusAccepted, "dispatched")
}

func (h *Handlers) HandleDownload(w http.ResponseWriter, r *http.Request, token string) {
	if h.Downloads == nil {
		writeError(w, http.StatusNotImplemented, errors.New("downloads not configured"))
		return
	}
	file, err := h.Downloads.Query(r.Context(), token)
	if err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	disposition := file.Disposition
	if disposition == "" {
		disposition = export.Attachment
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", string(disposition)+"; filename="+strconv.Quote(file.Name))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	_, _ = w.Write(file.Data)
}

func (h *Handlers) respond(w http.ResponseWriter, err error, status int, label string) {
	if err != nil {
		writeError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, status, map[string]string{"status": label})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
