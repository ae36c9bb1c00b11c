package demo

import (
	"html"
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Form field names
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldCompany = "company"
	FieldRole    = "role"
	FieldPhone   = "phone"
	FieldMessage = "message"
)

// FieldSpec describes one input of the demo request form
type FieldSpec struct {
	Name     string
	Label    string
	Required bool
	MaxLen   int
	Multi    bool // rendered as a textarea
}

// FormFields is the demo request form, in display order
var FormFields = []FieldSpec{
	{Name: FieldName, Label: "Full name", Required: true, MaxLen: 120},
	{Name: FieldEmail, Label: "Work email", Required: true, MaxLen: 254},
	{Name: FieldCompany, Label: "Company", Required: true, MaxLen: 160},
	{Name: FieldRole, Label: "Role", MaxLen: 120},
	{Name: FieldPhone, Label: "Phone", MaxLen: 40},
	{Name: FieldMessage, Label: "What would you like to see?", MaxLen: 2000, Multi: true},
}

// Fields maps a form field name to its value
type Fields map[string]string

var stripTags = bluemonday.StrictPolicy()

// Sanitize keeps the known form fields, trims whitespace and strips any markup
func Sanitize(in map[string][]string) Fields {
	out := make(Fields, len(FormFields))
	for _, field := range FormFields {
		values, ok := in[field.Name]
		if !ok || len(values) == 0 {
			continue
		}
		// the policy escapes entities; values are escaped again on render
		v := strings.TrimSpace(html.UnescapeString(stripTags.Sanitize(values[0])))
		if v != "" {
			out[field.Name] = v
		}
	}
	return out
}

// Clone returns an independent copy
func (f Fields) Clone() Fields {
	if f == nil {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// ValidationError lists the invalid fields with a message per field
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid demo request fields: " + strings.Join(names, ", ")
}

// UserMessage implements UserError
func (e *ValidationError) UserMessage() string {
	return "Please check the highlighted fields."
}

// Validate checks required fields, lengths and the email address
func Validate(f Fields) error {
	problems := make(map[string]string)
	for _, field := range FormFields {
		v := f[field.Name]
		if field.Required && v == "" {
			problems[field.Name] = field.Label + " is required"
			continue
		}
		if field.MaxLen > 0 && utf8.RuneCountInString(v) > field.MaxLen {
			problems[field.Name] = field.Label + " is too long"
		}
	}

	if email := f[FieldEmail]; email != "" && problems[FieldEmail] == "" {
		addr, err := mail.ParseAddress(email)
		if err != nil || addr.Address != email {
			problems[FieldEmail] = "Enter a valid email address"
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Fields: problems}
	}
	return nil
}
