package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"core_site_echo/internal/middleware"
	"core_site_echo/web/templates/pages"
)

// HandleError renders echo errors as titled pages inside the site shell
func (h *PageHandler) HandleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	errorTitle := "Internal Server Error"
	errorMessage := ""

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code

		// Try to extract message from HTTPError
		if msg, ok := he.Message.(string); ok && msg != "" {
			errorMessage = msg
		}

		switch code {
		case http.StatusNotFound:
			errorTitle = "Page Not Found"
			if errorMessage == "" || errorMessage == http.StatusText(code) {
				errorMessage = "The page you're looking for doesn't exist."
			}
		case http.StatusForbidden:
			errorTitle = "Access Denied"
			if errorMessage == "" || errorMessage == http.StatusText(code) {
				errorMessage = "You don't have permission to access this resource."
			}
		case http.StatusUnauthorized:
			errorTitle = "Unauthorized"
			if errorMessage == "" || errorMessage == http.StatusText(code) {
				errorMessage = "Please log in to continue."
			}
		case http.StatusBadRequest:
			errorTitle = "Bad Request"
			if errorMessage == "" || errorMessage == http.StatusText(code) {
				errorMessage = "The request could not be processed."
			}
		default:
			errorTitle = http.StatusText(code)
			if errorMessage == "" {
				errorMessage = "Something went wrong. Please try again later."
			}
		}
	} else {
		errorMessage = "Something went wrong. Please try again later."
	}

	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	} else {
		c.Logger().Debug(err)
	}

	// htmx fragments and HEAD requests get no page
	if middleware.IsHTMX(c.Request()) || c.Request().Method == http.MethodHead {
		if err := c.NoContent(code); err != nil {
			c.Logger().Error(err)
		}
		return
	}

	sess := middleware.SessionFrom(c)
	props := pages.ErrorPageProps{
		Shell:        h.shell(c, sess, errorTitle, ""),
		Code:         code,
		ErrorTitle:   errorTitle,
		ErrorMessage: errorMessage,
	}

	if renderErr := render(c, code, pages.ErrorPage(props)); renderErr != nil {
		// Fallback to plain text if template fails
		c.Logger().Error(fmt.Errorf("failed to render error page: %w", renderErr))
		c.String(code, errorMessage)
	}
}
