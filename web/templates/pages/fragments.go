package pages

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"

	"core_site_echo/internal/demo"
	"core_site_echo/web/templates/shared"
)

func componentOf(n g.Node) templ.Component {
	return shared.Component(n)
}

// DemoModal renders only the modal container
func DemoModal(state demo.State) templ.Component {
	return componentOf(shared.DemoModal(state))
}

// DemoSubmitted renders the closed modal plus an out of band confirmation
func DemoSubmitted(state demo.State, message string) templ.Component {
	return componentOf(g.Group([]g.Node{
		shared.DemoModal(state),
		shared.Toast(message),
	}))
}
