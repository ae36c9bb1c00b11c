package shared

import (
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// LayoutProps configures the document head
type LayoutProps struct {
	Title       string
	Description string
	// APIKey is the opaque site key handed to client scripts
	APIKey    string
	CSRFToken string
	// TabID ties htmx requests from this document to its own UI state
	TabID string
}

// Layout renders a complete HTML document around content
func Layout(props LayoutProps, content ...g.Node) g.Node {
	if props.Title == "" {
		props.Title = "CORE Platform"
	} else {
		props.Title = props.Title + " | CORE Platform"
	}
	if props.Description == "" {
		props.Description = "CORE is the operating platform for modern infrastructure teams."
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(props.Title)),
				Meta(Name("description"), Content(props.Description)),
				g.If(props.APIKey != "", Meta(Name("site-api-key"), Content(props.APIKey))),
				g.If(props.CSRFToken != "", Meta(Name("csrf-token"), Content(props.CSRFToken))),
				g.If(props.TabID != "", Meta(Name("tab-id"), Content(props.TabID))),

				Meta(g.Attr("property", "og:title"), Content(props.Title)),
				Meta(g.Attr("property", "og:description"), Content(props.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),

				Link(Rel("icon"), Href("/static/favicon.svg")),
				Link(Rel("stylesheet"), Href("/static/styles.css")),

				Script(Src(htmxSrc)),
			),
			Body(
				g.Attr("hx-boost", "true"),
				g.Attr("hx-headers", requestHeaders(props)),
				g.Group(content),

				Script(Src("/static/js/site.js"), Defer()),
			),
		),
	})
}

func requestHeaders(props LayoutProps) string {
	headers := make([]string, 0, 2)
	if props.CSRFToken != "" {
		headers = append(headers, fmt.Sprintf(`"X-CSRF-Token": %q`, props.CSRFToken))
	}
	if props.TabID != "" {
		headers = append(headers, fmt.Sprintf(`"X-Tab-ID": %q`, props.TabID))
	}
	return "{" + strings.Join(headers, ", ") + "}"
}
