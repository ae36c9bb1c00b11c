package site

import (
	"testing"
)

func TestShowMinimalFooter(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "home", path: "/", expected: false},
		{name: "solutions", path: "/solutions", expected: false},
		{name: "services", path: "/services", expected: false},
		{name: "partners", path: "/partners", expected: false},
		{name: "investors", path: "/investors", expected: false},
		{name: "demo", path: "/demo", expected: false},
		{name: "support", path: "/support", expected: false},
		{name: "product", path: "/product", expected: true},
		{name: "unregistered path", path: "/careers", expected: true},
		{name: "trailing slash is a different path", path: "/support/", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ShowMinimalFooter(tt.path)
			if result != tt.expected {
				t.Errorf("ShowMinimalFooter(%q) = %v; want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestSuppressedPathsHaveRichFooterPages(t *testing.T) {
	for _, path := range SuppressedFooterPaths {
		route, ok := Pages.Resolve(path)
		if !ok {
			t.Errorf("suppressed path %q has no registered page", path)
			continue
		}
		if !route.RichFooter {
			t.Errorf("suppressed path %q renders page %q which has no footer of its own", path, route.Page)
		}
	}

	// and the other direction: a rich-footer page outside the set would show two footers
	for _, route := range Pages.Routes() {
		if route.RichFooter && ShowMinimalFooter(route.Path) {
			t.Errorf("page %q at %q renders its own footer but is not in SuppressedFooterPaths", route.Page, route.Path)
		}
	}
}

func TestNewRegistryRejectsDuplicatePaths(t *testing.T) {
	_, err := NewRegistry(
		Route{Path: "/", Page: PageHome},
		Route{Path: "/product", Page: PageProduct},
		Route{Path: "/product", Page: PageDemo},
	)
	if err == nil {
		t.Fatal("expected duplicate path error")
	}

	if _, err := NewRegistry(Route{Path: "", Page: PageHome}); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestRegistryResolve(t *testing.T) {
	expected := map[string]PageKey{
		"/":          PageHome,
		"/solutions": PageSolutions,
		"/services":  PageServices,
		"/partners":  PagePartners,
		"/investors": PageInvestors,
		"/product":   PageProduct,
		"/support":   PageSupport,
		"/demo":      PageDemo,
	}
	if got := len(Pages.Routes()); got != len(expected) {
		t.Fatalf("Pages has %d routes; want %d", got, len(expected))
	}
	for path, page := range expected {
		route, ok := Pages.Resolve(path)
		if !ok {
			t.Errorf("Resolve(%q) found nothing", path)
			continue
		}
		if route.Page != page {
			t.Errorf("Resolve(%q) = %q; want %q", path, route.Page, page)
		}
	}

	for _, path := range []string{"", "/Product", "/product/", "/demo?x=1", "/nope"} {
		if _, ok := Pages.Resolve(path); ok {
			t.Errorf("Resolve(%q) matched; want no match", path)
		}
	}
}

func TestNavLinksMarksActive(t *testing.T) {
	links := Pages.NavLinks("/partners")
	active := 0
	for _, l := range links {
		if l.Path == "/" || l.Path == "/demo" {
			t.Errorf("unexpected nav link %q", l.Path)
		}
		if l.Active {
			active++
			if l.Path != "/partners" {
				t.Errorf("link %q marked active", l.Path)
			}
		}
	}
	if active != 1 {
		t.Errorf("got %d active links; want 1", active)
	}
}

type recordingViewport struct {
	calls [][2]int
}

func (v *recordingViewport) ScrollTo(x, y int) {
	v.calls = append(v.calls, [2]int{x, y})
}

func TestNavigateUpdatesPathAndScrollsToTop(t *testing.T) {
	for _, route := range Pages.Routes() {
		t.Run(route.Path, func(t *testing.T) {
			vp := &recordingViewport{}
			nav := NewNavigator(NavigationState{CurrentPath: "/product"}, vp)

			nav.Navigate(route.Path)

			if nav.CurrentPath() != route.Path {
				t.Errorf("CurrentPath() = %q; want %q", nav.CurrentPath(), route.Path)
			}
			if len(vp.calls) != 1 || vp.calls[0] != [2]int{0, 0} {
				t.Errorf("viewport calls = %v; want one ScrollTo(0, 0)", vp.calls)
			}
		})
	}
}

func TestNavigatorResetAndDefaults(t *testing.T) {
	nav := NewNavigator(NavigationState{}, nil)
	if nav.CurrentPath() != DefaultPath {
		t.Fatalf("fresh navigator at %q; want %q", nav.CurrentPath(), DefaultPath)
	}

	nav.Navigate("/support")
	nav.Reset()
	if nav.CurrentPath() != DefaultPath {
		t.Errorf("after Reset at %q; want %q", nav.CurrentPath(), DefaultPath)
	}
	if nav.State().CurrentPath != DefaultPath {
		t.Errorf("State() = %+v", nav.State())
	}
}
