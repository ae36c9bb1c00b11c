package shared

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"core_site_echo/internal/demo"
)

// DemoModalID is the element every demo request endpoint swaps
const DemoModalID = "demo-modal"

// ToastID is the region receiving out-of-band confirmations
const ToastID = "toast"

// swap targets the modal container with the response
func swap(endpoint string) g.Node {
	return g.Group([]g.Node{
		g.Attr("hx-post", endpoint),
		g.Attr("hx-target", "#"+DemoModalID),
		g.Attr("hx-swap", "outerHTML"),
		g.Attr("hx-sync", "#"+DemoModalID+":drop"),
	})
}

// DemoModal renders the modal container. It is empty while the modal is closed.
func DemoModal(state demo.State) g.Node {
	if !state.Open {
		return Div(ID(DemoModalID), Class("modal-root"))
	}

	return Div(
		ID(DemoModalID),
		Class("modal-root open"),
		g.Attr("role", "dialog"),
		g.Attr("aria-modal", "true"),
		g.Attr("aria-labelledby", "demo-modal-title"),

		Div(Class("modal-backdrop"), swap("/demo/close"), g.Attr("hx-trigger", "click")),

		Div(
			Class("modal-panel"),
			Button(
				Type("button"),
				Class("modal-close"),
				g.Attr("aria-label", "Close"),
				swap("/demo/close"),
				g.Attr("hx-trigger", "click, keyup[key=='Escape'] from:body"),
				g.Text("×"),
			),
			H2(ID("demo-modal-title"), g.Text("Request a demo")),
			P(Class("muted"), g.Text("Tell us a little about your team and we'll set up a walkthrough.")),
			g.If(state.Error != "", Div(
				Class("alert alert-error"),
				g.Attr("role", "alert"),
				g.Text(state.Error),
			)),
			g.El("form",
				Class("demo-form"),
				swap("/demo/submit"),
				g.Attr("hx-disabled-elt", "find button[type='submit']"),
				g.Group(g.Map(demo.FormFields, func(f demo.FieldSpec) g.Node {
					return demoField(f, state.Fields[f.Name], state.FieldErrors[f.Name])
				})),
				Div(
					Class("form-actions"),
					Button(Type("button"), Class("btn btn-ghost"), swap("/demo/close"), g.Text("Cancel")),
					Button(Type("submit"), Class("btn btn-primary"), g.Text("Send request")),
				),
			),
		),
	)
}

func demoField(f demo.FieldSpec, value, fieldErr string) g.Node {
	id := "demo-" + f.Name
	class := "field"
	if fieldErr != "" {
		class = "field has-error"
	}

	attrs := []g.Node{
		ID(id),
		Name(f.Name),
		g.If(f.MaxLen > 0, g.Attr("maxlength", strconv.Itoa(f.MaxLen))),
		g.If(f.Required, Required()),
		g.If(fieldErr != "", g.Attr("aria-invalid", "true")),
		g.If(fieldErr != "", g.Attr("aria-describedby", id+"-error")),
	}

	var input g.Node
	if f.Multi {
		input = Textarea(append(attrs, g.Attr("rows", "4"), g.Text(value))...)
	} else {
		input = Input(append(attrs, Type(inputType(f.Name)), Value(value))...)
	}

	label := f.Label
	if f.Required {
		label += " *"
	}

	return Div(
		Class(class),
		Label(g.Attr("for", id), g.Text(label)),
		input,
		g.If(fieldErr != "", P(ID(id+"-error"), Class("field-error"), g.Text(fieldErr))),
	)
}

func inputType(field string) string {
	switch field {
	case demo.FieldEmail:
		return "email"
	case demo.FieldPhone:
		return "tel"
	default:
		return "text"
	}
}

// ToastRegion is the empty placeholder for confirmations
func ToastRegion() g.Node {
	return Div(ID(ToastID), Class("toast-region"), g.Attr("aria-live", "polite"))
}

// Toast replaces the toast region out of band
func Toast(message string) g.Node {
	return Div(
		ID(ToastID),
		Class("toast-region"),
		g.Attr("aria-live", "polite"),
		g.Attr("hx-swap-oob", "true"),
		Div(Class("toast toast-success"), g.Attr("role", "status"), g.Text(message)),
	)
}
