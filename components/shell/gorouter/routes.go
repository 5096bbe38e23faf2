package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	gocommand "github.com/goliatone/go-command"
	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-dashboard-shell/components/export"
	"github.com/goliatone/go-dashboard-shell/components/shell"
	"github.com/goliatone/go-dashboard-shell/components/shell/commands"
	"github.com/goliatone/go-dashboard-shell/components/shell/httpapi"
)

// ViewerResolver converts a router.Context into a shell.ViewerContext.
type ViewerResolver func(router.Context) shell.ViewerContext

// Config wires go-router with the shell controller, API and event stream.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *shell.Controller
	API            httpapi.Executor
	Downloads      gocommand.Querier[string, export.File]
	Broadcast      *shell.Broadcast
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths of the shell endpoints.
type RouteConfig struct {
	HTML           string
	State          string
	Section        string
	Search         string
	Notifications  string
	NotificationID string
	ModalPress     string
	ModalDismiss   string
	ThemeToggle    string
	PanelAction    string
	Download       string
	WebSocket      string
}

// Register mounts the shell routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := DefaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		if section := strings.TrimSpace(ctx.Query("section")); section != "" && cfg.API != nil {
			if err := cfg.API.SetSection(ctx.Context(), commands.SetSectionInput{Section: section}); err != nil {
				return respondError(ctx, httpapi.StatusFor(err), err)
			}
		}
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), viewerResolver(ctx), &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.State, router.WrapHandler(func(ctx router.Context) error {
		layout, err := cfg.Controller.Render(ctx.Context(), viewerResolver(ctx))
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, layout)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes)
	}
	if cfg.Downloads != nil {
		registerDownloads(group, cfg.Downloads, routes.Download)
	}
	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}
	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Post(routes.Section, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SetSectionInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		return respond(ctx, api.SetSection(ctx.Context(), payload), http.StatusOK, "switched")
	}))

	r.Post(routes.Search, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SearchInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		return respond(ctx, api.Search(ctx.Context(), payload), http.StatusAccepted, "searched")
	}))

	r.Post(routes.Notifications, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ShowNotificationInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		result, err := api.ShowNotification(ctx.Context(), payload)
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		return ctx.JSON(http.StatusCreated, result)
	}))

	r.Delete(routes.NotificationID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("notification id is required"))
		}
		return respond(ctx, api.RemoveNotification(ctx.Context(), commands.RemoveNotificationInput{ID: id}), http.StatusOK, "removed")
	}))

	r.Post(routes.ModalPress, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.PressModalInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		return respond(ctx, api.PressModal(ctx.Context(), payload), http.StatusOK, "pressed")
	}))

	r.Post(routes.ModalDismiss, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.DismissModalInput
		if body := ctx.Body(); len(body) > 0 {
			if err := json.Unmarshal(body, &payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
		}
		return respond(ctx, api.DismissModal(ctx.Context(), payload), http.StatusOK, "dismissed")
	}))

	r.Post(routes.ThemeToggle, router.WrapHandler(func(ctx router.Context) error {
		return respond(ctx, api.ToggleTheme(ctx.Context()), http.StatusOK, "toggled")
	}))

	r.Post(routes.PanelAction, router.WrapHandler(func(ctx router.Context) error {
		input := commands.PanelActionInput{Section: ctx.Param("section"), Name: ctx.Param("action")}
		if body := ctx.Body(); len(body) > 0 {
			if err := json.Unmarshal(body, &input.Params); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
		}
		return respond(ctx, api.PanelAction(ctx.Context(), input), http.StatusAccepted, "dispatched")
	}))
}

func registerDownloads[T any](r router.Router[T], downloads gocommand.Querier[string, export.File], path string) {
	r.Get(path, router.WrapHandler(func(ctx router.Context) error {
		file, err := downloads.Query(ctx.Context(), ctx.Param("token"))
		if err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
		disposition := file.Disposition
		if disposition == "" {
			disposition = export.Attachment
		}
		ctx.SetHeader("Content-Type", file.ContentType)
		ctx.SetHeader("Content-Disposition", string(disposition)+"; filename="+strconv.Quote(file.Name))
		return ctx.Send(file.Data)
	}))
}

func registerWebSocket[T any](r router.Router[T], hub *shell.Broadcast, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hub.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func defaultViewerResolver(ctx router.Context) shell.ViewerContext {
	var viewer shell.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	return httpapi.ParseAcceptLanguage(ctx.Header("Accept-Language"))
}

func respond(ctx router.Context, err error, status int, label string) error {
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(status, map[string]string{"status": label})
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

// DefaultRouteConfig fills the unset paths of routes.
func DefaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/shell"
	}
	if routes.State == "" {
		routes.State = "/shell/_state"
	}
	if routes.Section == "" {
		routes.Section = "/shell/section"
	}
	if routes.Search == "" {
		routes.Search = "/shell/search"
	}
	if routes.Notifications == "" {
		routes.Notifications = "/shell/notifications"
	}
	if routes.NotificationID == "" {
		routes.NotificationID = "/shell/notifications/:id"
	}
	if routes.ModalPress == "" {
		routes.ModalPress = "/shell/modal/press"
	}
	if routes.ModalDismiss == "" {
		routes.ModalDismiss = "/shell/modal/dismiss"
	}
	if routes.ThemeToggle == "" {
		routes.ThemeToggle = "/shell/theme/toggle"
	}
	if routes.PanelAction == "" {
		routes.PanelAction = "/shell/panels/:section/actions/:action"
	}
	if routes.Download == "" {
		routes.Download = "/shell/downloads/:token"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/shell/ws"
	}
	return routes
}
