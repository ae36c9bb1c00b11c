package site

import (
	"fmt"
)

// PageKey identifies the content renderer for a route
type PageKey string

const (
	PageHome      PageKey = "home"
	PageSolutions PageKey = "solutions"
	PageServices  PageKey = "services"
	PagePartners  PageKey = "partners"
	PageInvestors PageKey = "investors"
	PageProduct   PageKey = "product"
	PageSupport   PageKey = "support"
	PageDemo      PageKey = "demo"
)

// DefaultPath is the entry path a fresh visitor starts on
const DefaultPath = "/"

// Route associates a URL path with the page it renders
type Route struct {
	Path  string
	Page  PageKey
	Title string

	// NavLabel is shown in the navbar. Empty means the route is not linked from the navbar.
	NavLabel string

	// RichFooter marks pages that render their own footer
	RichFooter bool
}

// NavLink is a navbar entry
type NavLink struct {
	Label  string
	Path   string
	Active bool
}

// Registry is an ordered, immutable table of routes
type Registry struct {
	routes []Route
	byPath map[string]int
}

// NewRegistry builds a registry. Paths must be unique and non-empty.
func NewRegistry(routes ...Route) (*Registry, error) {
	r := &Registry{
		routes: make([]Route, 0, len(routes)),
		byPath: make(map[string]int, len(routes)),
	}
	for _, route := range routes {
		if route.Path == "" {
			return nil, fmt.Errorf("route for page %q has an empty path", route.Page)
		}
		if _, exists := r.byPath[route.Path]; exists {
			return nil, fmt.Errorf("duplicate route path %q", route.Path)
		}
		r.byPath[route.Path] = len(r.routes)
		r.routes = append(r.routes, route)
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on an invalid table
func MustRegistry(routes ...Route) *Registry {
	r, err := NewRegistry(routes...)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve finds the route registered for path by exact match
func (r *Registry) Resolve(path string) (Route, bool) {
	i, ok := r.byPath[path]
	if !ok {
		return Route{}, false
	}
	return r.routes[i], true
}

// Routes returns the table in registration order
func (r *Registry) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// NavLinks builds the navbar entries, marking the one matching currentPath
func (r *Registry) NavLinks(currentPath string) []NavLink {
	links := make([]NavLink, 0, len(r.routes))
	for _, route := range r.routes {
		if route.NavLabel == "" {
			continue
		}
		links = append(links, NavLink{
			Label:  route.NavLabel,
			Path:   route.Path,
			Active: route.Path == currentPath,
		})
	}
	return links
}

// Pages is the site's route table. The RichFooter flags must stay in sync with
// SuppressedFooterPaths; see footer.go.
var Pages = MustRegistry(
	Route{Path: "/", Page: PageHome, Title: "CORE Platform", RichFooter: true},
	Route{Path: "/solutions", Page: PageSolutions, Title: "Solutions", NavLabel: "Solutions", RichFooter: true},
	Route{Path: "/services", Page: PageServices, Title: "Services", NavLabel: "Services", RichFooter: true},
	Route{Path: "/partners", Page: PagePartners, Title: "Partners", NavLabel: "Partners", RichFooter: true},
	Route{Path: "/investors", Page: PageInvestors, Title: "Investors", NavLabel: "Investors", RichFooter: true},
	Route{Path: "/product", Page: PageProduct, Title: "Product", NavLabel: "Product"},
	Route{Path: "/support", Page: PageSupport, Title: "Support", NavLabel: "Support", RichFooter: true},
	Route{Path: "/demo", Page: PageDemo, Title: "Request a Demo", RichFooter: true},
)
