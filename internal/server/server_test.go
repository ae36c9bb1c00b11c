package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"core_site_echo/internal/config"
	"core_site_echo/internal/content"
	"core_site_echo/internal/demo"
	appMiddleware "core_site_echo/internal/middleware"
	"core_site_echo/internal/models"
	"core_site_echo/internal/services"
	"core_site_echo/internal/session"
	"core_site_echo/internal/site"
)

type fakeLeads struct {
	mu         sync.Mutex
	err        error
	calls      int
	lastPath   string
	lastFields demo.Fields
}

func (f *fakeLeads) SubmitFrom(ctx context.Context, sourcePath string, fields demo.Fields) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastPath = sourcePath
	f.lastFields = fields
	return f.err
}

func (f *fakeLeads) List(ctx context.Context, status models.LeadStatus, limit int) ([]models.DemoRequest, error) {
	return nil, nil
}

func (f *fakeLeads) Stats(ctx context.Context) (services.LeadStats, error) {
	return services.LeadStats{}, nil
}

func (f *fakeLeads) Get(ctx context.Context, id uint) (models.DemoRequest, error) {
	return models.DemoRequest{}, errors.New("not found")
}

func (f *fakeLeads) UpdateStatus(ctx context.Context, id uint, status models.LeadStatus) error {
	return nil
}

func (f *fakeLeads) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// client keeps cookies between requests and sends the CSRF token and tab id like
// the page does. It drives one tab at a time.
type client struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
	tab     string
}

var tabMeta = regexp.MustCompile(`<meta name="tab-id" content="([^"]+)">`)

func newClient(t *testing.T, leads *fakeLeads) *client {
	t.Helper()

	library, err := content.Load()
	if err != nil {
		t.Fatalf("content.Load() error = %v", err)
	}

	e := New(Deps{
		Config: &config.Config{
			Env:               "test",
			SiteAPIKey:        "test-key",
			SessionTTL:        time.Hour,
			DemoSubmitTimeout: time.Second,
		},
		Registry: site.Pages,
		Content:  library,
		Sessions: session.NewMemoryStore(time.Hour),
		Leads:    leads,
		Quiet:    true,
	})
	return &client{t: t, e: e, cookies: make(map[string]*http.Cookie)}
}

func (c *client) do(method, path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	c.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
		if c.tab != "" {
			req.Header.Set(appMiddleware.TabHeader, c.tab)
		}
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	if csrf, ok := c.cookies["_csrf"]; ok && method != http.MethodGet {
		req.Header.Set("X-CSRF-Token", csrf.Value)
	}

	rec := httptest.NewRecorder()
	c.e.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

// load is a full document load in the current tab, like typing the URL or reloading
func (c *client) load(path string) *httptest.ResponseRecorder {
	rec := c.do(http.MethodGet, path, nil, false)
	if m := tabMeta.FindStringSubmatch(rec.Body.String()); m != nil {
		c.tab = m[1]
	}
	return rec
}

// loadInNewTab loads path in another tab of the same browser and stays on the current tab
func (c *client) loadInNewTab(path string) *httptest.ResponseRecorder {
	current := c.tab
	rec := c.load(path)
	c.tab = current
	return rec
}

// navigate is a boosted link click
func (c *client) navigate(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil, true)
}

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return c.do(http.MethodPost, path, form, true)
}

func validForm() url.Values {
	return url.Values{
		"name":    {"Ada Lovelace"},
		"email":   {"ada@example.com"},
		"company": {"Analytical Engines"},
	}
}

const (
	openModal   = `class="modal-root open"`
	closedModal = `<div id="demo-modal" class="modal-root"></div>`
)

func TestFooterFollowsRoute(t *testing.T) {
	c := newClient(t, &fakeLeads{})

	for _, route := range site.Pages.Routes() {
		t.Run(route.Path, func(t *testing.T) {
			rec := c.load(route.Path)
			if rec.Code != http.StatusOK {
				t.Fatalf("GET %s = %d", route.Path, rec.Code)
			}
			body := rec.Body.String()

			hasMinimal := strings.Contains(body, `id="minimal-footer"`)
			if want := site.ShowMinimalFooter(route.Path); hasMinimal != want {
				t.Errorf("minimal footer shown = %v, want %v", hasMinimal, want)
			}
			hasRich := strings.Contains(body, `id="site-footer"`)
			if hasRich != route.RichFooter {
				t.Errorf("rich footer shown = %v, want %v", hasRich, route.RichFooter)
			}
			if hasMinimal && hasRich {
				t.Error("both footers rendered")
			}
		})
	}
}

func TestProductShowsMinimalFooter(t *testing.T) {
	c := newClient(t, &fakeLeads{})
	body := c.load("/product").Body.String()
	if !strings.Contains(body, "© 2024 CORE Platform. All systems operational.") {
		t.Error("minimal footer text missing on /product")
	}
}

func TestLayoutCarriesSiteKeyAndCSRF(t *testing.T) {
	c := newClient(t, &fakeLeads{})
	body := c.load("/").Body.String()

	if !strings.Contains(body, `<meta name="site-api-key" content="test-key">`) {
		t.Error("site api key meta missing")
	}
	if !strings.Contains(body, `hx-headers=`) {
		t.Error("csrf headers missing from body")
	}
	if c.tab == "" || !strings.Contains(body, "X-Tab-ID") {
		t.Error("tab id missing from the page")
	}
	if _, ok := c.cookies["_csrf"]; !ok {
		t.Error("csrf cookie not set")
	}
}

func TestNavigateUpdatesPathAndScrollsToTop(t *testing.T) {
	leads := &fakeLeads{}
	c := newClient(t, leads)

	if rec := c.load("/"); rec.Header().Get("HX-Reswap") != "" {
		t.Errorf("full load HX-Reswap = %q, want none", rec.Header().Get("HX-Reswap"))
	}

	rec := c.navigate("/solutions")
	if rec.Code != http.StatusOK {
		t.Fatalf("navigate = %d", rec.Code)
	}
	if got := rec.Header().Get("HX-Reswap"); got != "innerHTML show:window:top" {
		t.Errorf("HX-Reswap = %q", got)
	}
	if !strings.Contains(rec.Body.String(), `<a href="/solutions" class="nav-link active" aria-current="page">`) {
		t.Error("solutions link not marked active")
	}

	// the current path travels with the demo request
	c.post("/demo/open", nil)
	if rec := c.post("/demo/submit", validForm()); rec.Code != http.StatusOK {
		t.Fatalf("submit = %d", rec.Code)
	}
	if leads.lastPath != "/solutions" {
		t.Errorf("source path = %q, want /solutions", leads.lastPath)
	}
}

func TestDemoOpenIsIdempotent(t *testing.T) {
	c := newClient(t, &fakeLeads{})
	c.load("/")

	for i := 0; i < 2; i++ {
		rec := c.post("/demo/open", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("open #%d = %d", i+1, rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, openModal) {
			t.Fatalf("open #%d did not render the modal: %s", i+1, body)
		}
		if n := strings.Count(body, `id="demo-modal"`); n != 1 {
			t.Errorf("open #%d rendered %d modals", i+1, n)
		}
	}

	// a boosted navigation keeps the modal open
	if body := c.navigate("/product").Body.String(); !strings.Contains(body, openModal) {
		t.Error("modal closed by navigation")
	}
}

func TestModalDismissTriggers(t *testing.T) {
	c := newClient(t, &fakeLeads{})
	c.load("/")
	body := c.post("/demo/open", nil).Body.String()

	for _, want := range []string{
		`class="modal-backdrop" hx-post="/demo/close"`,
		`from:body`,
		`aria-label="Close"`,
		`hx-sync="#demo-modal:drop"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("modal missing %q", want)
		}
	}
}

func TestDemoSubmitSuccessClosesWithConfirmation(t *testing.T) {
	leads := &fakeLeads{}
	c := newClient(t, leads)
	c.load("/")
	c.post("/demo/open", nil)

	rec := c.post("/demo/submit", validForm())
	if rec.Code != http.StatusOK {
		t.Fatalf("submit = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, closedModal) {
		t.Errorf("modal not closed: %s", body)
	}
	if !strings.Contains(body, `hx-swap-oob="true"`) {
		t.Error("confirmation toast missing")
	}
	if got := rec.Header().Get("HX-Trigger"); got != "demo-submitted" {
		t.Errorf("HX-Trigger = %q", got)
	}
	if leads.Calls() != 1 {
		t.Errorf("submitter calls = %d, want 1", leads.Calls())
	}
	if leads.lastFields[demo.FieldEmail] != "ada@example.com" {
		t.Errorf("fields = %v", leads.lastFields)
	}

	// reopening starts from an empty form
	body = c.post("/demo/open", nil).Body.String()
	if strings.Contains(body, "Ada Lovelace") {
		t.Error("draft kept after a successful submission")
	}
}

func TestDemoSubmitFailureStaysOpen(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "delivery failure",
			err:  errors.New("smtp: connection refused"),
			want: "Please try again.",
		},
		{
			name: "rate limited",
			err:  services.ErrTooManyRequests,
			want: "several requests",
		},
		{
			name: "invalid field",
			err:  &demo.ValidationError{Fields: map[string]string{demo.FieldEmail: "Enter a valid email address."}},
			want: "Enter a valid email address.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, &fakeLeads{err: tt.err})
			c.load("/")
			c.post("/demo/open", nil)

			rec := c.post("/demo/submit", validForm())
			if rec.Code != http.StatusOK {
				t.Fatalf("submit = %d", rec.Code)
			}
			body := rec.Body.String()
			if !strings.Contains(body, openModal) {
				t.Error("modal closed after a failure")
			}
			if !strings.Contains(body, tt.want) {
				t.Errorf("body missing %q", tt.want)
			}
			if strings.Contains(body, "connection refused") {
				t.Error("internal error leaked to the visitor")
			}
			// the draft is kept for a retry
			if !strings.Contains(body, `value="Ada Lovelace"`) {
				t.Error("draft lost after a failure")
			}
		})
	}
}

func TestDemoSubmitHighlightsField(t *testing.T) {
	c := newClient(t, &fakeLeads{err: &demo.ValidationError{Fields: map[string]string{demo.FieldCompany: "Company is required."}}})
	c.load("/")
	c.post("/demo/open", nil)

	body := c.post("/demo/submit", validForm()).Body.String()
	if !strings.Contains(body, `class="field has-error"`) {
		t.Error("field not highlighted")
	}
	if !strings.Contains(body, `id="demo-company-error"`) {
		t.Error("field error not rendered")
	}
}

func TestDemoDismissDoesNotSubmit(t *testing.T) {
	leads := &fakeLeads{}
	c := newClient(t, leads)
	c.load("/")
	c.post("/demo/open", nil)

	rec := c.post("/demo/close", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("close = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), closedModal) {
		t.Error("modal not closed")
	}
	if leads.Calls() != 0 {
		t.Errorf("submitter called %d times on dismiss", leads.Calls())
	}
}

func TestDemoSubmitWhileClosedReopensWithDraft(t *testing.T) {
	leads := &fakeLeads{}
	c := newClient(t, leads)
	c.load("/")

	rec := c.post("/demo/submit", validForm())
	if rec.Code != http.StatusOK {
		t.Fatalf("submit while closed = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, openModal) {
		t.Error("modal not shown")
	}
	if !strings.Contains(body, "send it again") {
		t.Error("resend message missing")
	}
	if !strings.Contains(body, `value="Ada Lovelace"`) {
		t.Error("draft lost")
	}
	if leads.Calls() != 0 {
		t.Error("submitter called while closed")
	}

	// sending again goes through
	if rec := c.post("/demo/submit", validForm()); !strings.Contains(rec.Body.String(), closedModal) {
		t.Errorf("resend did not close the modal: %s", rec.Body.String())
	}
	if leads.Calls() != 1 {
		t.Errorf("submitter calls = %d, want 1", leads.Calls())
	}
}

func TestReloadResetsState(t *testing.T) {
	leads := &fakeLeads{}
	c := newClient(t, leads)
	c.load("/")
	c.navigate("/partners")
	c.post("/demo/open", nil)
	before := c.tab

	body := c.load("/support").Body.String()
	if !strings.Contains(body, closedModal) {
		t.Error("modal survived a reload")
	}
	if c.tab == before {
		t.Error("reload kept the tab id")
	}

	c.post("/demo/open", nil)
	c.post("/demo/submit", validForm())
	if leads.lastPath != "/support" {
		t.Errorf("source path = %q, want /support", leads.lastPath)
	}
}

func TestOpenModalSurvivesOtherRequests(t *testing.T) {
	tests := []struct {
		name  string
		stray func(c *client) *httptest.ResponseRecorder
	}{
		{
			name:  "second tab",
			stray: func(c *client) *httptest.ResponseRecorder { return c.loadInNewTab("/") },
		},
		{
			name: "favicon",
			stray: func(c *client) *httptest.ResponseRecorder {
				return c.do(http.MethodGet, "/favicon.ico", nil, false)
			},
		},
		{
			name: "unknown path",
			stray: func(c *client) *httptest.ResponseRecorder {
				return c.do(http.MethodGet, "/apple-touch-icon.png", nil, false)
			},
		},
		{
			name: "head request",
			stray: func(c *client) *httptest.ResponseRecorder {
				return c.do(http.MethodHead, "/", nil, false)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leads := &fakeLeads{}
			c := newClient(t, leads)
			c.load("/product")
			c.post("/demo/open", nil)

			tt.stray(c)

			if body := c.navigate("/solutions").Body.String(); !strings.Contains(body, openModal) {
				t.Error("modal closed by a request from elsewhere")
			}
			rec := c.post("/demo/submit", validForm())
			if rec.Code != http.StatusOK {
				t.Fatalf("submit = %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), closedModal) {
				t.Errorf("submit did not close the modal: %s", rec.Body.String())
			}
			if leads.Calls() != 1 || leads.lastPath != "/solutions" {
				t.Errorf("calls = %d, source = %q; want 1, /solutions", leads.Calls(), leads.lastPath)
			}
		})
	}
}

func TestSecondTabHasItsOwnModal(t *testing.T) {
	c := newClient(t, &fakeLeads{})
	c.load("/")
	first := c.tab
	c.post("/demo/open", nil)

	body := c.loadInNewTab("/").Body.String()
	if !strings.Contains(body, closedModal) {
		t.Error("second tab shows the first tab's modal")
	}
	if m := tabMeta.FindStringSubmatch(body); m == nil || m[1] == first {
		t.Errorf("second tab id = %v; want a new id", m)
	}
}

func TestPagesAnswerHead(t *testing.T) {
	c := newClient(t, &fakeLeads{})

	tests := []struct {
		path string
		want int
	}{
		{"/", http.StatusOK},
		{"/product", http.StatusOK},
		{"/pricing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if rec := c.do(http.MethodHead, tt.path, nil, false); rec.Code != tt.want {
				t.Errorf("HEAD %s = %d, want %d", tt.path, rec.Code, tt.want)
			}
		})
	}
}

func TestUnknownPathRendersNotFound(t *testing.T) {
	c := newClient(t, &fakeLeads{})

	rec := c.load("/pricing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("GET /pricing = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Page Not Found") {
		t.Error("not found view missing")
	}
	if !strings.Contains(body, `id="minimal-footer"`) {
		t.Error("minimal footer missing on unknown path")
	}
}

func TestDemoRequiresCSRFToken(t *testing.T) {
	c := newClient(t, &fakeLeads{})

	rec := c.post("/demo/open", nil)
	if rec.Code == http.StatusOK {
		t.Error("open accepted without a csrf token")
	}
}

func TestAdminWithoutFirebaseRedirects(t *testing.T) {
	c := newClient(t, &fakeLeads{})

	rec := c.load("/admin/leads")
	if rec.Code != http.StatusTemporaryRedirect {
		t.Fatalf("GET /admin/leads = %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/admin/login?error=auth_not_configured" {
		t.Errorf("Location = %q", loc)
	}

	body := c.load("/admin/login?error=auth_not_configured").Body.String()
	if !strings.Contains(body, "Sign in is not configured") {
		t.Error("login page does not explain the missing configuration")
	}
}

func TestHealthAndStatic(t *testing.T) {
	c := newClient(t, &fakeLeads{})

	if rec := c.load("/health"); rec.Code != http.StatusOK {
		t.Errorf("GET /health = %d", rec.Code)
	}
	if rec := c.load("/static/styles.css"); rec.Code != http.StatusOK {
		t.Errorf("GET /static/styles.css = %d", rec.Code)
	}
	rec := c.load("/favicon.ico")
	if rec.Code != http.StatusMovedPermanently || rec.Header().Get(echo.HeaderLocation) != "/static/favicon.svg" {
		t.Errorf("GET /favicon.ico = %d to %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}
