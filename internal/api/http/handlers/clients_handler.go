package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/support-kit/analytics-service/internal/api/dto"
	"github.com/support-kit/analytics-service/internal/domain"
	"github.com/support-kit/analytics-service/internal/repository"
	apperrors "github.com/support-kit/analytics-service/pkg/util"
)

// ClientsHandler serves the client view endpoints.
type ClientsHandler struct {
	clients    repository.ClientViewRepository
	activities repository.ActivityViewRepository
}

// NewClientsHandler constructs handler.
func NewClientsHandler(clients repository.ClientViewRepository, activities repository.ActivityViewRepository) *ClientsHandler {
	return &ClientsHandler{clients: clients, activities: activities}
}

// Search POST /clients/search.
func (h *ClientsHandler) Search(c *fiber.Ctx) error {
	var body dto.SearchBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	limit, offset := pageToLimitOffset(body.Page, body.Size)
	clients, err := h.clients.Search(c.UserContext(), body.Search, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(clientResponses(clients))
}

// Client GET /clients/client/:clientId.
func (h *ClientsHandler) Client(c *fiber.Ctx) error {
	client, err := h.clients.GetByID(c.UserContext(), c.Params("clientId"))
	if err != nil {
		return err
	}
	return c.JSON(clientResponse(client))
}

// Activities GET /clients/client/activities/:clientId.
func (h *ClientsHandler) Activities(c *fiber.Ctx) error {
	activities, err := h.activities.ListByClient(c.UserContext(), c.Params("clientId"))
	if err != nil {
		return err
	}
	items := make([]dto.ActivityResponse, 0, len(activities))
	for _, a := range activities {
		items = append(items, dto.ActivityResponse{
			ID:          a.ID,
			ClientID:    a.ClientID,
			Type:        string(a.Type),
			Description: a.Description,
			Date:        a.Date,
			SourceID:    a.SourceID,
		})
	}
	return c.JSON(items)
}

func clientResponses(clients []domain.Client) []dto.ClientResponse {
	items := make([]dto.ClientResponse, 0, len(clients))
	for i := range clients {
		items = append(items, clientResponse(&clients[i]))
	}
	return items
}

func clientResponse(client *domain.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:     client.ID,
		Name:   client.Name,
		Email:  client.Email,
		Status: client.Status,
		Tags:   client.Tags,
		Score:  client.Score,
	}
}

func pageToLimitOffset(page, size int) (limit, offset int) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	return size, page * size
}
