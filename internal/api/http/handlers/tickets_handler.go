package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/support-kit/analytics-service/internal/api/dto"
	"github.com/support-kit/analytics-service/internal/domain"
	"github.com/support-kit/analytics-service/internal/service"
	"github.com/support-kit/analytics-service/pkg/util"
)

const displayDateLayout = "02/01 03:04"

// TicketsHandler serves the ticket dashboard endpoints.
type TicketsHandler struct {
	dashboard *service.DashboardService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(dashboard *service.DashboardService) *TicketsHandler {
	return &TicketsHandler{dashboard: dashboard}
}

// Main GET /ticket/main.
func (h *TicketsHandler) Main(c *fiber.Ctx) error {
	overview, err := h.dashboard.Overview(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(overview)
}

// Trend GET /ticket/trend/:tagName.
func (h *TicketsHandler) Trend(c *fiber.Ctx) error {
	series, err := h.dashboard.TrendSeries(c.UserContext(), c.Params("tagName", "all"))
	if err != nil {
		return err
	}
	return c.JSON(series)
}

// TrendValue GET /ticket/trend/value/:tagName.
func (h *TicketsHandler) TrendValue(c *fiber.Ctx) error {
	total, trend, err := h.dashboard.TrendValue(c.UserContext(), c.Params("tagName", "all"))
	if err != nil {
		return err
	}
	return c.JSON(dto.TrendValueResponse{Total: total, Trend: trend})
}

// All GET /ticket/all.
func (h *TicketsHandler) All(c *fiber.Ctx) error {
	tickets, err := h.dashboard.WeekTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(simpleTickets(tickets))
}

// CountByStatus GET /ticket/status/:statusName.
func (h *TicketsHandler) CountByStatus(c *fiber.Ctx) error {
	count, err := h.dashboard.CountByStatus(c.UserContext(), c.Params("statusName", "new"))
	if err != nil {
		return err
	}
	return c.JSON(count)
}

// Search POST /ticket/search. The body is the raw search string; a blank
// body returns the weekly listing.
func (h *TicketsHandler) Search(c *fiber.Ctx) error {
	search := strings.TrimSpace(string(c.Body()))
	tickets, err := h.dashboard.SearchTickets(c.UserContext(), search)
	if err != nil {
		return err
	}
	return c.JSON(simpleTickets(tickets))
}

func simpleTickets(tickets []domain.Ticket) []dto.SimpleTicket {
	items := make([]dto.SimpleTicket, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, dto.SimpleTicket{
			SourceID: t.SourceID,
			Status:   t.Status,
			Created:  t.CreatedDate.Format(displayDateLayout),
			Updated:  t.UpdatedDate.Format(displayDateLayout),
			Tags:     strings.Join(t.Tags, ", "),
			Name:     t.Name,
			Email:    t.Email,
			Subject:  t.Subject,
			Message:  util.Truncate(util.EscapeLine(t.Message), 200),
		})
	}
	return items
}
