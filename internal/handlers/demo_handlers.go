package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"core_site_echo/internal/demo"
	"core_site_echo/internal/middleware"
	"core_site_echo/internal/session"
	"core_site_echo/web/templates/pages"
)

// DemoSubmittedEvent is triggered client side after a successful request
const DemoSubmittedEvent = "demo-submitted"

const submittedMessage = "Thanks! Our team will reach out within one business day."

// LeadSubmitter accepts a demo request made from sourcePath
type LeadSubmitter interface {
	SubmitFrom(ctx context.Context, sourcePath string, fields demo.Fields) error
}

// DemoHandler drives the demo request modal
type DemoHandler struct {
	leads   LeadSubmitter
	timeout time.Duration
}

// NewDemoHandler creates a new DemoHandler. Submissions are bounded by timeout.
func NewDemoHandler(leads LeadSubmitter, timeout time.Duration) *DemoHandler {
	return &DemoHandler{leads: leads, timeout: timeout}
}

func (h *DemoHandler) store(sess *session.Session) *demo.Store {
	sourcePath := sess.Navigation.CurrentPath
	submitter := demo.SubmitterFunc(func(ctx context.Context, fields demo.Fields) error {
		return h.leads.SubmitFrom(ctx, sourcePath, fields)
	})
	return demo.Resume(sess.Demo, submitter, demo.WithTimeout(h.timeout))
}

// Open shows the modal. Opening an open modal changes nothing.
func (h *DemoHandler) Open(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	store := h.store(sess)
	store.Open()
	sess.Demo = store.State()

	return render(c, http.StatusOK, pages.DemoModal(sess.Demo))
}

// Close dismisses the modal without submitting
func (h *DemoHandler) Close(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	store := h.store(sess)
	store.Close()
	sess.Demo = store.State()

	return render(c, http.StatusOK, pages.DemoModal(sess.Demo))
}

// Submit sends the form. Failures keep the modal open with an inline message, and
// a form this tab no longer has open comes back with the draft to send again.
func (h *DemoHandler) Submit(c echo.Context) error {
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data.")
	}

	sess := middleware.SessionFrom(c)
	store := h.store(sess)
	fields := demo.Sanitize(form)
	err = store.Submit(c.Request().Context(), fields)

	var validationErr *demo.ValidationError
	switch {
	case err == nil:
		sess.Demo = store.State()
		c.Response().Header().Set("HX-Trigger", DemoSubmittedEvent)
		return render(c, http.StatusOK, pages.DemoSubmitted(sess.Demo, submittedMessage))
	case errors.Is(err, demo.ErrNotOpen):
		// the page still shows the form but this tab's state was lost
		c.Logger().Infof("demo form submitted from a closed state in tab %s", sess.TabID)
		store.Reopen(fields)
	case !errors.As(err, &validationErr):
		c.Logger().Warnf("demo request from %s failed: %v", sess.Navigation.CurrentPath, err)
	}
	sess.Demo = store.State()

	return render(c, http.StatusOK, pages.DemoModal(sess.Demo))
}
