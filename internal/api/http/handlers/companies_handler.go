package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/support-kit/analytics-service/internal/api/dto"
	"github.com/support-kit/analytics-service/internal/domain"
	"github.com/support-kit/analytics-service/internal/repository"
	apperrors "github.com/support-kit/analytics-service/pkg/util"
)

// CompaniesHandler serves the company view endpoints.
type CompaniesHandler struct {
	companies repository.CompanyViewRepository
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(companies repository.CompanyViewRepository) *CompaniesHandler {
	return &CompaniesHandler{companies: companies}
}

// Search POST /companies/search.
func (h *CompaniesHandler) Search(c *fiber.Ctx) error {
	var body dto.SearchBody
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	limit, offset := pageToLimitOffset(body.Page, body.Size)
	companies, err := h.companies.Search(c.UserContext(), body.Search, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(companyResponses(companies))
}

// Client GET /companies/client/:clientId.
func (h *CompaniesHandler) Client(c *fiber.Ctx) error {
	company, err := h.companies.GetByID(c.UserContext(), c.Params("clientId"))
	if err != nil {
		return err
	}
	return c.JSON(companyResponse(company))
}

func companyResponses(companies []domain.Company) []dto.CompanyResponse {
	items := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		items = append(items, companyResponse(&companies[i]))
	}
	return items
}

func companyResponse(company *domain.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:      company.ID,
		Name:    company.Name,
		Email:   company.Email,
		Country: company.Country,
		Score:   company.Score,
	}
}
