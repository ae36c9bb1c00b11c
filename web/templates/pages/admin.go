package pages

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"core_site_echo/internal/models"
	"core_site_echo/internal/services"
	"core_site_echo/web/templates/shared"
)

const firebaseSDK = "https://www.gstatic.com/firebasejs/10.12.2"

// LoginProps configures the Firebase web client of the admin login
type LoginProps struct {
	FirebaseAPIKey     string
	FirebaseAuthDomain string
	FirebaseProjectID  string
	CSRFToken          string
	Error              string
}

// Login renders the admin sign in page
func Login(props LoginProps) templ.Component {
	return componentOf(shared.Layout(
		shared.LayoutProps{Title: "Admin sign in", CSRFToken: props.CSRFToken},
		Main(
			Class("container narrow admin-login"),
			H1(g.Text("Sign in")),
			P(Class("muted"), g.Text("Sales console for CORE demo requests.")),
			g.If(props.Error != "", Div(Class("alert alert-error"), g.Attr("role", "alert"), g.Text(props.Error))),
			Button(ID("google-sign-in"), Type("button"), Class("btn btn-primary"), g.Text("Continue with Google")),
			P(ID("login-status"), Class("muted")),
			Div(
				ID("firebase-config"),
				g.Attr("hidden", ""),
				g.Attr("data-api-key", props.FirebaseAPIKey),
				g.Attr("data-auth-domain", props.FirebaseAuthDomain),
				g.Attr("data-project-id", props.FirebaseProjectID),
				g.Attr("data-sdk", firebaseSDK),
			),
			Script(Type("module"), Src("/static/js/admin-login.js")),
		),
	))
}

// LeadsProps lists demo requests for the sales team
type LeadsProps struct {
	UserEmail string
	CSRFToken string
	Filter    models.LeadStatus
	Stats     services.LeadStats
	Leads     []models.DemoRequest
}

// Leads renders the admin leads console
func Leads(props LeadsProps) templ.Component {
	return componentOf(shared.Layout(
		shared.LayoutProps{Title: "Demo requests", CSRFToken: props.CSRFToken},
		Header(
			Class("navbar"),
			Nav(
				Class("container navbar-inner"),
				shared.Logo(),
				Span(Class("muted"), g.Text(props.UserEmail)),
				Button(
					Type("button"),
					Class("btn btn-ghost"),
					g.Attr("hx-post", "/auth/logout"),
					g.Attr("hx-on::after-request", "window.location.href='/admin/login'"),
					g.Text("Sign out"),
				),
			),
		),
		Main(
			Class("container admin"),
			H1(g.Text("Demo requests")),
			statusFilter(props.Filter, props.Stats),
			g.If(len(props.Leads) == 0, P(Class("muted"), g.Text("No demo requests yet."))),
			g.If(len(props.Leads) > 0, Table(
				Class("table"),
				g.El("thead", Tr(
					Th(g.Text("Received")),
					Th(g.Text("Name")),
					Th(g.Text("Company")),
					Th(g.Text("Email")),
					Th(g.Text("From")),
					Th(g.Text("Status")),
				)),
				g.El("tbody", g.Group(g.Map(props.Leads, func(l models.DemoRequest) g.Node {
					return leadRow(l)
				}))),
			)),
		),
	))
}

func statusFilter(current models.LeadStatus, stats services.LeadStats) g.Node {
	item := func(label, href string, count int64, active bool) g.Node {
		class := "chip"
		if active {
			class = "chip active"
		}
		return A(Href(href), Class(class), g.Textf("%s (%d)", label, count))
	}

	nodes := []g.Node{item("All", "/admin/leads", stats.Total, current == "")}
	for _, s := range models.LeadStatuses {
		nodes = append(nodes, item(string(s), "/admin/leads?status="+string(s), stats.ByStatus[s], current == s))
	}
	return Div(Class("chips"), g.Group(nodes))
}

// LeadRow renders one table row. It is also the response of a status update.
func LeadRow(lead models.DemoRequest) templ.Component {
	return componentOf(leadRow(lead))
}

func leadRow(lead models.DemoRequest) g.Node {
	rowID := fmt.Sprintf("lead-%d", lead.ID)
	return Tr(
		ID(rowID),
		Td(g.Text(lead.CreatedAt.Format("Jan 2, 15:04"))),
		Td(g.Text(lead.Name), g.If(lead.Role != "", Small(Class("muted"), g.Text(" "+lead.Role)))),
		Td(g.Text(lead.Company)),
		Td(A(Href("mailto:"+lead.Email), g.Text(lead.Email))),
		Td(g.Text(lead.SourcePath)),
		Td(g.El("form",
			g.Attr("hx-post", "/admin/leads/"+strconv.FormatUint(uint64(lead.ID), 10)+"/status"),
			g.Attr("hx-target", "#"+rowID),
			g.Attr("hx-swap", "outerHTML"),
			g.Attr("hx-trigger", "change"),
			Select(
				Name("status"),
				g.Group(g.Map(models.LeadStatuses, func(s models.LeadStatus) g.Node {
					return Option(Value(string(s)), g.If(s == lead.Status, Selected()), g.Text(string(s)))
				})),
			),
		)),
	)
}
