package server

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"core_site_echo/internal/config"
	"core_site_echo/internal/content"
	"core_site_echo/internal/handlers"
	appMiddleware "core_site_echo/internal/middleware"
	"core_site_echo/internal/session"
	"core_site_echo/internal/site"
	"core_site_echo/web"
)

// Leads is the lead intake and console backend
type Leads interface {
	handlers.LeadSubmitter
	handlers.LeadConsole
}

// Deps are the collaborators of the HTTP server
type Deps struct {
	Config   *config.Config
	Registry *site.Registry
	Content  *content.Library
	Sessions session.Store
	Leads    Leads
	// Auth may be nil; the admin console then refuses every sign in
	Auth *auth.Client
	// Quiet disables the request log
	Quiet bool
}

// New builds the echo instance with every route registered
func New(deps Deps) *echo.Echo {
	cfg := deps.Config

	e := echo.New()
	e.HideBanner = true

	pageHandler := handlers.NewPageHandler(deps.Registry, deps.Content, cfg.SiteAPIKey)
	demoHandler := handlers.NewDemoHandler(deps.Leads, cfg.DemoSubmitTimeout)
	authHandler := handlers.NewAuthHandler(deps.Auth, cfg)
	leadHandler := handlers.NewLeadHandler(deps.Leads)

	e.HTTPErrorHandler = pageHandler.HandleError

	// Middleware
	if !deps.Quiet {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		Skipper:        appMiddleware.SkipPrefixes("/static", "/health"),
		TokenLookup:    "header:X-CSRF-Token",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: http.SameSiteLaxMode,
	}))
	e.Use(appMiddleware.Sessions(appMiddleware.SessionConfig{
		Store:   deps.Sessions,
		TTL:     cfg.SessionTTL,
		Secure:  cfg.IsProduction(),
		Skipper: appMiddleware.SkipPrefixes("/static", "/health", "/favicon.ico", "/admin", "/auth"),
	}))

	// Static file serving
	e.StaticFS("/static", web.Static())
	e.GET("/health", handlers.Health)
	e.GET("/favicon.ico", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/static/favicon.svg")
	})

	// Site pages
	pageMethods := []string{http.MethodGet, http.MethodHead}
	for _, route := range deps.Registry.Routes() {
		e.Match(pageMethods, route.Path, pageHandler.Show)
	}
	e.RouteNotFound("/*", pageHandler.NotFound)

	// Demo request modal
	e.POST("/demo/open", demoHandler.Open)
	e.POST("/demo/close", demoHandler.Close)
	e.POST("/demo/submit", demoHandler.Submit)

	// Admin authentication
	e.GET(appMiddleware.LoginPath, authHandler.LoginPage)
	e.POST("/auth/login", authHandler.HandleLogin)
	e.POST("/auth/logout", authHandler.HandleLogout)

	// Protected routes
	admin := e.Group("/admin")
	admin.Use(appMiddleware.RequireAuth(deps.Auth))
	admin.GET("", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/admin/leads")
	})
	admin.GET("/leads", leadHandler.ListLeads)
	admin.POST("/leads/:id/status", leadHandler.UpdateLeadStatus)

	return e
}
