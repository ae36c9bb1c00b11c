package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"core_site_echo/internal/models"
	"core_site_echo/internal/services"
	"core_site_echo/web/templates/pages"
)

const leadsPageSize = 100

// LeadConsole is what the admin console needs from lead storage
type LeadConsole interface {
	List(ctx context.Context, status models.LeadStatus, limit int) ([]models.DemoRequest, error)
	Stats(ctx context.Context) (services.LeadStats, error)
	Get(ctx context.Context, id uint) (models.DemoRequest, error)
	UpdateStatus(ctx context.Context, id uint, status models.LeadStatus) error
}

// LeadHandler serves the admin leads console
type LeadHandler struct {
	leads LeadConsole
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leads LeadConsole) *LeadHandler {
	return &LeadHandler{leads: leads}
}

// ListLeads renders the most recent demo requests
func (h *LeadHandler) ListLeads(c echo.Context) error {
	ctx := c.Request().Context()

	status := models.LeadStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown lead status.")
	}

	leads, err := h.leads.List(ctx, status, leadsPageSize)
	if err != nil {
		c.Logger().Errorf("failed to list leads: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch demo requests.")
	}

	stats, err := h.leads.Stats(ctx)
	if err != nil {
		c.Logger().Warnf("failed to count leads: %v", err)
	}

	props := pages.LeadsProps{
		UserEmail: getStringFromContext(c, "userEmail"),
		CSRFToken: csrfToken(c),
		Filter:    status,
		Stats:     stats,
		Leads:     leads,
	}
	return render(c, http.StatusOK, pages.Leads(props))
}

// UpdateLeadStatus moves a lead through the pipeline and returns its table row
func (h *LeadHandler) UpdateLeadStatus(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid lead ID.")
	}

	status := models.LeadStatus(c.FormValue("status"))
	if !status.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown lead status.")
	}

	if err := h.leads.UpdateStatus(ctx, uint(id), status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Demo request not found.")
		}
		c.Logger().Errorf("failed to update lead %d: %v", id, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update demo request.")
	}

	lead, err := h.leads.Get(ctx, uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch demo request.")
	}
	return render(c, http.StatusOK, pages.LeadRow(lead))
}
