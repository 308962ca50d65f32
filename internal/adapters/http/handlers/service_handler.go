package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"isuhub/internal/core/domain"
	"isuhub/internal/core/services"
	"isuhub/internal/pkg/pagination"
	"isuhub/internal/pkg/response"
)

// ServiceHandler handles service catalog endpoints
type ServiceHandler struct {
	catalog *services.ServiceCatalog
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(catalog *services.ServiceCatalog) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// PublishServiceRequest represents a publish service request body
type PublishServiceRequest struct {
	ProfessionType string `json:"profession_type"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	EstimatedHours string `json:"estimated_hours"`
}

// Publish creates a new available service
// @Summary Publish a service
// @Description Publish a service priced at the profession's effective rate times the estimated hours
// @Tags Services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body PublishServiceRequest true "Service data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /services [post]
func (h *ServiceHandler) Publish(c *fiber.Ctx) error {
	providerID, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req PublishServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	professionType, err := domain.ParseProfessionType(req.ProfessionType)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	hours, err := decimal.NewFromString(req.EstimatedHours)
	if err != nil {
		return response.BadRequest(c, "Invalid estimated hours")
	}

	service, err := h.catalog.Publish(c.Context(), &services.PublishServiceInput{
		ProviderID:     providerID,
		ProfessionType: professionType,
		Title:          req.Title,
		Description:    req.Description,
		EstimatedHours: hours,
	})
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Created(c, "Service published successfully", fiber.Map{
		"service": toServiceResponse(service),
	})
}

// List returns available services
// @Summary List available services
// @Description List available services, optionally filtered by profession type
// @Tags Services
// @Accept json
// @Produce json
// @Param profession_type query string false "Profession type filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /services [get]
func (h *ServiceHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	var filter *domain.ProfessionType
	if raw := c.Query("profession_type"); raw != "" {
		professionType, err := domain.ParseProfessionType(raw)
		if err != nil {
			return response.FromDomainError(c, err)
		}
		filter = &professionType
	}

	list, total, err := h.catalog.ListAvailable(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Services retrieved successfully",
		pagination.NewResponse(toServiceResponses(list), params, total))
}

// Get returns one service
// @Summary Get a service
// @Description Get a published service by ID
// @Tags Services
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /services/{id} [get]
func (h *ServiceHandler) Get(c *fiber.Ctx) error {
	service, err := h.catalog.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Service retrieved successfully", fiber.Map{
		"service": toServiceResponse(service),
	})
}

// Mine returns the authenticated member's services
// @Summary List own services
// @Description List the services published by the authenticated member
// @Tags Services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /services/mine [get]
func (h *ServiceHandler) Mine(c *fiber.Ctx) error {
	providerID, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	list, err := h.catalog.ListByProvider(c.Context(), providerID)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Services retrieved successfully", fiber.Map{
		"services": toServiceResponses(list),
	})
}

// Cancel withdraws a published service
// @Summary Cancel a service
// @Description Cancel an available service; only the provider may do this
// @Tags Services
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Service ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /services/{id} [delete]
func (h *ServiceHandler) Cancel(c *fiber.Ctx) error {
	providerID, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	service, err := h.catalog.Cancel(c.Context(), c.Params("id"), providerID)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Service cancelled successfully", fiber.Map{
		"service": toServiceResponse(service),
	})
}
