package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"core_site_echo/internal/content"
	"core_site_echo/internal/middleware"
	"core_site_echo/internal/session"
	"core_site_echo/internal/site"
	"core_site_echo/web/templates/pages"
)

// PageHandler serves the registered static pages
type PageHandler struct {
	registry *site.Registry
	content  *content.Library
	apiKey   string
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(registry *site.Registry, library *content.Library, apiKey string) *PageHandler {
	return &PageHandler{registry: registry, content: library, apiKey: apiKey}
}

// Show navigates the visitor to the requested path and renders its page
func (h *PageHandler) Show(c echo.Context) error {
	route, ok := h.registry.Resolve(c.Request().URL.Path)
	if !ok {
		return h.NotFound(c)
	}

	sess := middleware.SessionFrom(c)
	navigate(c, sess, route.Path)

	page, ok := h.content.Page(string(route.Page))
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Page content is missing.")
	}

	props := pages.PageProps{
		Shell: h.shell(c, sess, route.Title, page.Summary),
		Route: route,
		Page:  page,
	}
	return render(c, http.StatusOK, pages.ContentPage(props))
}

// NotFound renders the not found view for paths without a page
func (h *PageHandler) NotFound(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	if c.Request().Method == http.MethodGet {
		navigate(c, sess, c.Request().URL.Path)
	}
	return render(c, http.StatusNotFound, pages.NotFound(h.shell(c, sess, "Page Not Found", "")))
}

func (h *PageHandler) shell(c echo.Context, sess *session.Session, title, description string) pages.ShellProps {
	current := sess.Navigation.CurrentPath
	return pages.ShellProps{
		Title:       title,
		Description: description,
		CurrentPath: current,
		NavLinks:    h.registry.NavLinks(current),
		Demo:        sess.Demo,
		APIKey:      h.apiKey,
		CSRFToken:   csrfToken(c),
		TabID:       sess.TabID,
	}
}

func navigate(c echo.Context, sess *session.Session, path string) {
	nav := site.NewNavigator(sess.Navigation, hxViewport{c: c})
	nav.Navigate(path)
	sess.Navigation = nav.State()
}

// hxViewport scrolls the browser through htmx response headers
type hxViewport struct {
	c echo.Context
}

// ScrollTo only supports the window top; htmx has no way to show other offsets.
// Full document loads already start at the top.
func (v hxViewport) ScrollTo(x, y int) {
	if x != 0 || y != 0 || !middleware.IsHTMX(v.c.Request()) {
		return
	}
	v.c.Response().Header().Set("HX-Reswap", "innerHTML show:window:top")
}
