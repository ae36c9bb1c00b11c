package pages

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"core_site_echo/internal/content"
	"core_site_echo/internal/site"
	"core_site_echo/web/templates/shared"
)

// PageProps renders one registered route
type PageProps struct {
	Shell ShellProps
	Route site.Route
	Page  content.Page
}

// ContentPage renders a static page inside the site shell
func ContentPage(props PageProps) templ.Component {
	p := props.Page
	return componentOf(shell(props.Shell,
		Section(
			Class("hero"),
			Div(
				Class("container"),
				g.If(p.Hero.Eyebrow != "", P(Class("eyebrow"), g.Text(p.Hero.Eyebrow))),
				H1(g.Text(p.Hero.Headline)),
				g.If(p.Hero.Subhead != "", P(Class("lead"), g.Text(p.Hero.Subhead))),
				g.If(p.ShowDemoCTA, Div(
					Class("hero-actions"),
					shared.DemoButton("Request Demo", "btn btn-primary btn-lg"),
				)),
			),
		),
		g.If(len(p.Highlights) > 0, highlights(p.Highlights)),
		g.If(p.Body != "", Section(
			Class("prose-section"),
			Div(Class("container prose"), g.Raw(p.Body)),
		)),
		g.If(p.ShowDemoCTA, demoCTA()),
		g.If(props.Route.RichFooter, shared.RichFooter(props.Shell.NavLinks)),
	))
}

func highlights(items []content.Highlight) g.Node {
	return Section(
		Class("highlights"),
		Div(
			Class("container grid"),
			g.Group(g.Map(items, func(h content.Highlight) g.Node {
				return Div(
					Class("card"),
					g.If(h.Icon != "", Span(Class("card-icon"), g.Attr("aria-hidden", "true"), g.Text(h.Icon))),
					H3(g.Text(h.Title)),
					P(g.Text(h.Description)),
				)
			})),
		),
	)
}

func demoCTA() g.Node {
	return Section(
		Class("cta"),
		Div(
			Class("container cta-inner"),
			H2(g.Text("See CORE in action")),
			P(g.Text("A 30 minute walkthrough tailored to your stack.")),
			shared.DemoButton("Request Demo", "btn btn-primary btn-lg"),
		),
	)
}
