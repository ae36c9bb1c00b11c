package pages

import (
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"core_site_echo/internal/site"
)

// ErrorPageProps describes a failed request
type ErrorPageProps struct {
	Shell        ShellProps
	Code         int
	ErrorTitle   string
	ErrorMessage string
}

// ErrorPage renders an error inside the site shell
func ErrorPage(props ErrorPageProps) templ.Component {
	return componentOf(shell(props.Shell,
		Section(
			Class("error-page"),
			Div(
				Class("container narrow"),
				P(Class("eyebrow"), g.Text(strconv.Itoa(props.Code))),
				H1(g.Text(props.ErrorTitle)),
				P(Class("lead"), g.Text(props.ErrorMessage)),
				A(Href(site.DefaultPath), Class("btn btn-outline"), g.Text("Back to home")),
			),
		),
	))
}

// NotFound is shown for paths without a registered page
func NotFound(shellProps ShellProps) templ.Component {
	return ErrorPage(ErrorPageProps{
		Shell:        shellProps,
		Code:         404,
		ErrorTitle:   "Page Not Found",
		ErrorMessage: "The page you're looking for doesn't exist.",
	})
}
