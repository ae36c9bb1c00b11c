package shared

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"core_site_echo/internal/site"
)

// Logo is the brand mark linking home
func Logo() g.Node {
	return A(
		Href(site.DefaultPath),
		Class("brand"),
		Span(Class("brand-mark"), g.Text("◆")),
		Span(Class("brand-name"), g.Text("CORE")),
	)
}

// Navbar is shown on every page
func Navbar(links []site.NavLink) g.Node {
	return Header(
		Class("navbar"),
		Nav(
			Class("container navbar-inner"),
			g.Attr("aria-label", "Main"),
			Logo(),
			Ul(
				Class("nav-links"),
				g.Group(g.Map(links, func(l site.NavLink) g.Node {
					return Li(navLink(l))
				})),
			),
			DemoButton("Request Demo", "btn btn-primary"),
		),
	)
}

func navLink(l site.NavLink) g.Node {
	if l.Active {
		return A(Href(l.Path), Class("nav-link active"), g.Attr("aria-current", "page"), g.Text(l.Label))
	}
	return A(Href(l.Path), Class("nav-link"), g.Text(l.Label))
}

// DemoButton opens the demo request modal. Without scripting it falls back to the demo page.
func DemoButton(label, class string) g.Node {
	return A(
		Href("/demo"),
		Class(class),
		g.Attr("hx-post", "/demo/open"),
		g.Attr("hx-target", "#"+DemoModalID),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("hx-sync", "#"+DemoModalID+":drop"),
		g.Attr("hx-push-url", "false"),
		g.Text(label),
	)
}
