package shared

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"core_site_echo/internal/site"
)

// MinimalFooter is the shared footer for pages that don't render their own
func MinimalFooter() g.Node {
	return Footer(
		ID("minimal-footer"),
		Class("footer-minimal"),
		Div(
			Class("container"),
			P(g.Text("© 2024 CORE Platform. All systems operational.")),
		),
	)
}

// RichFooter is the full footer rendered by landing pages themselves
func RichFooter(links []site.NavLink) g.Node {
	return Footer(
		ID("site-footer"),
		Class("footer-rich"),
		Div(
			Class("container footer-grid"),
			Div(
				Class("footer-brand"),
				Logo(),
				P(Class("muted"), g.Text("The operating platform for modern infrastructure teams.")),
			),
			Div(
				H3(g.Text("Explore")),
				Ul(g.Group(g.Map(links, func(l site.NavLink) g.Node {
					return Li(A(Href(l.Path), g.Text(l.Label)))
				}))),
			),
			Div(
				H3(g.Text("Get started")),
				P(Class("muted"), g.Text("See CORE running against your own workloads.")),
				DemoButton("Book a demo", "btn btn-outline"),
			),
		),
		Div(
			Class("container footer-bottom"),
			P(g.Text("© 2024 CORE Platform. All rights reserved.")),
		),
	)
}
