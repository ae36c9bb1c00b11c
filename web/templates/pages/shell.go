package pages

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"core_site_echo/internal/demo"
	"core_site_echo/internal/site"
	"core_site_echo/web/templates/shared"
)

// ShellProps is shared by every public page
type ShellProps struct {
	Title       string
	Description string
	CurrentPath string
	NavLinks    []site.NavLink
	Demo        demo.State
	APIKey      string
	CSRFToken   string
	TabID       string
}

// shell wraps main in the navbar, the route dependent footer and the demo modal
func shell(props ShellProps, main ...g.Node) g.Node {
	return shared.Layout(
		shared.LayoutProps{
			Title:       props.Title,
			Description: props.Description,
			APIKey:      props.APIKey,
			CSRFToken:   props.CSRFToken,
			TabID:       props.TabID,
		},
		shared.Navbar(props.NavLinks),
		Main(ID("main"), g.Group(main)),
		g.If(site.ShowMinimalFooter(props.CurrentPath), shared.MinimalFooter()),
		shared.DemoModal(props.Demo),
		shared.ToastRegion(),
	)
}
