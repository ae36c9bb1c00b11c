package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"core_site_echo/internal/session"
)

// SessionCookie identifies a visitor
const SessionCookie = "site_session"

// TabHeader carries the tab id rendered into each page. htmx sends it with every request.
const TabHeader = "X-Tab-ID"

const sessionContextKey = "session"

// SessionConfig configures Sessions
type SessionConfig struct {
	Store  session.Store
	TTL    time.Duration
	Secure bool
	// Skipper excludes requests that don't touch visitor state, like assets
	Skipper echomw.Skipper
}

// SkipPrefixes skips requests whose path starts with any prefix
func SkipPrefixes(prefixes ...string) echomw.Skipper {
	return func(c echo.Context) bool {
		path := c.Request().URL.Path
		for _, p := range prefixes {
			if strings.HasPrefix(path, p) {
				return true
			}
		}
		return false
	}
}

// Sessions loads the state of the requesting tab before the handler and saves it
// afterwards. A full document load (a GET not issued by htmx) starts a new tab,
// so reloading one tab leaves the visitor's other tabs alone.
func Sessions(cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = echomw.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			ctx := req.Context()

			visitorID := ""
			if cookie, err := c.Cookie(SessionCookie); err == nil && session.ValidID(cookie.Value) {
				visitorID = cookie.Value
			}
			tabID := ""
			if !IsDocumentLoad(req) {
				if id := req.Header.Get(TabHeader); session.ValidID(id) {
					tabID = id
				}
			}

			var sess *session.Session
			if visitorID != "" && tabID != "" {
				loaded, err := cfg.Store.Get(ctx, visitorID, tabID)
				switch {
				case err == nil:
					sess = loaded
				case errors.Is(err, session.ErrNotFound):
				default:
					c.Logger().Warnf("failed to load session: %v", err)
				}
			}
			if sess == nil {
				sess = session.New(visitorID, tabID)
			}

			c.SetCookie(&http.Cookie{
				Name:     SessionCookie,
				Value:    sess.ID,
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			c.Set(sessionContextKey, sess)

			err := next(c)

			// HEAD requests never belong to a tab
			if req.Method == http.MethodHead {
				return err
			}
			if saveErr := cfg.Store.Save(ctx, sess); saveErr != nil {
				c.Logger().Errorf("failed to save session %s: %v", sess.ID, saveErr)
			}
			return err
		}
	}
}

// IsDocumentLoad reports whether r loads a whole page rather than an htmx fragment
func IsDocumentLoad(r *http.Request) bool {
	return r.Method == http.MethodGet && !IsHTMX(r)
}

// IsHTMX reports whether r was issued by htmx
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// SessionFrom returns the tab state of c. Requests skipped by Sessions get a
// fresh one that is never saved.
func SessionFrom(c echo.Context) *session.Session {
	if sess, ok := c.Get(sessionContextKey).(*session.Session); ok {
		return sess
	}
	return session.New("", "")
}
