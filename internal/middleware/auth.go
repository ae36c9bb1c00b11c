package middleware

import (
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

// AdminCookie holds the Firebase session cookie of a signed in admin
const AdminCookie = "admin_session"

// LoginPath is where unauthenticated admins are sent
const LoginPath = "/admin/login"

// ClearAdminCookie expires the admin session cookie
func ClearAdminCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     AdminCookie,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Path:     "/",
	})
}

// RequireAuth returns a middleware that verifies Firebase session cookies
func RequireAuth(authClient *auth.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Check if Firebase is initialized
			if authClient == nil {
				return c.Redirect(http.StatusTemporaryRedirect, LoginPath+"?error=auth_not_configured")
			}

			cookie, err := c.Cookie(AdminCookie)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusTemporaryRedirect, LoginPath)
			}

			decodedToken, err := authClient.VerifySessionCookieAndCheckRevoked(c.Request().Context(), cookie.Value)
			if err != nil {
				ClearAdminCookie(c)
				return c.Redirect(http.StatusTemporaryRedirect, LoginPath)
			}

			// Set user info in context for downstream handlers
			c.Set("userUID", decodedToken.UID)
			if email, ok := decodedToken.Claims["email"].(string); ok {
				c.Set("userEmail", email)
			}
			if name, ok := decodedToken.Claims["name"].(string); ok {
				c.Set("userName", name)
			}

			return next(c)
		}
	}
}
