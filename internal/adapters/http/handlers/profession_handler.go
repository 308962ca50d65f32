package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"isuhub/internal/core/domain"
	"isuhub/internal/core/services"
	"isuhub/internal/pkg/pagination"
	"isuhub/internal/pkg/response"
)

// ProfessionHandler handles profession standard endpoints
type ProfessionHandler struct {
	professionService *services.ProfessionService
}

// NewProfessionHandler creates a new profession handler
func NewProfessionHandler(professionService *services.ProfessionService) *ProfessionHandler {
	return &ProfessionHandler{professionService: professionService}
}

// ListRates returns the effective rate for every profession type
// @Summary List effective rates
// @Description Get the effective hourly rate for all profession types
// @Tags Professions
// @Accept json
// @Produce json
// @Success 200 {object} response.Response
// @Router /professions/rates [get]
func (h *ProfessionHandler) ListRates(c *fiber.Ctx) error {
	rates := make([]fiber.Map, 0, len(domain.AllProfessionTypes()))
	for _, professionType := range domain.AllProfessionTypes() {
		rate, err := h.professionService.EffectiveRate(c.Context(), professionType)
		if err != nil {
			return response.FromDomainError(c, err)
		}
		rates = append(rates, fiber.Map{
			"profession_type": string(professionType),
			"display_name":    professionType.DisplayName(),
			"rate":            rate.Rate(),
		})
	}

	return response.Success(c, "Rates retrieved successfully", fiber.Map{
		"rates": rates,
	})
}

// GetRate returns the effective rate for one profession type
// @Summary Get effective rate
// @Description Get the effective hourly rate for a profession type
// @Tags Professions
// @Accept json
// @Produce json
// @Param type path string true "Profession type"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /professions/{type}/rate [get]
func (h *ProfessionHandler) GetRate(c *fiber.Ctx) error {
	professionType, err := domain.ParseProfessionType(c.Params("type"))
	if err != nil {
		return response.FromDomainError(c, err)
	}

	rate, err := h.professionService.EffectiveRate(c.Context(), professionType)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Rate retrieved successfully", fiber.Map{
		"profession_type": string(professionType),
		"rate":            rate.Rate(),
	})
}

// UpdateRateRequest represents a rate update request body
type UpdateRateRequest struct {
	NewRate string `json:"new_rate"`
	Reason  string `json:"reason"`
}

// UpdateRate changes a profession's effective rate
// @Summary Update profession rate
// @Description Change the effective rate for a profession type (admin, or decider managing it)
// @Tags Professions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param type path string true "Profession type"
// @Param body body UpdateRateRequest true "New rate data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /professions/{type}/rate [put]
func (h *ProfessionHandler) UpdateRate(c *fiber.Ctx) error {
	requesterID, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	professionType, err := domain.ParseProfessionType(c.Params("type"))
	if err != nil {
		return response.FromDomainError(c, err)
	}

	var req UpdateRateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	newRate, err := decimal.NewFromString(req.NewRate)
	if err != nil {
		return response.BadRequest(c, "Invalid rate value")
	}

	result, err := h.professionService.UpdateRate(c.Context(), &services.UpdateRateInput{
		RequesterID:    requesterID,
		ProfessionType: professionType,
		NewRate:        newRate,
		Reason:         req.Reason,
	})
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Rate updated successfully", fiber.Map{
		"profession_type": string(result.ProfessionType),
		"old_rate":        result.OldRate.Rate(),
		"new_rate":        result.NewRate.Rate(),
	})
}

// GetHistory returns the change history of a standard
// @Summary Get standard history
// @Description Get the audit trail of changes to a profession standard, newest first
// @Tags Professions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Standard ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /professions/standards/{id}/history [get]
func (h *ProfessionHandler) GetHistory(c *fiber.Ctx) error {
	standardID := c.Params("id")
	params := pagination.GetParams(c)

	history, total, err := h.professionService.GetHistory(c.Context(), standardID, params.Offset, params.Limit)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "History retrieved successfully",
		pagination.NewResponse(toStandardHistoryResponses(history), params, total))
}

// MyStandards returns the standards the authenticated decider manages
// @Summary Get managed standards
// @Description Get the active standards for the profession types the member manages
// @Tags Professions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /professions/standards/mine [get]
func (h *ProfessionHandler) MyStandards(c *fiber.Ctx) error {
	id, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	standards, err := h.professionService.StandardsByManager(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Standards retrieved successfully", fiber.Map{
		"standards": toStandardResponses(standards),
	})
}

// AssignDeciderRequest represents an assign decider request body
type AssignDeciderRequest struct {
	MemberID    string   `json:"member_id"`
	Professions []string `json:"professions"`
}

// AssignDecider promotes a member to decider
// @Summary Assign decider rights
// @Description Promote a regular member to decider for the given profession types
// @Tags Professions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AssignDeciderRequest true "Assignment data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/deciders [post]
func (h *ProfessionHandler) AssignDecider(c *fiber.Ctx) error {
	adminID, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req AssignDeciderRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.MemberID == "" {
		return response.BadRequest(c, "Member ID is required")
	}

	professions := make([]domain.ProfessionType, 0, len(req.Professions))
	for _, raw := range req.Professions {
		professionType, err := domain.ParseProfessionType(raw)
		if err != nil {
			return response.FromDomainError(c, err)
		}
		professions = append(professions, professionType)
	}

	member, err := h.professionService.AssignDecider(c.Context(), &services.AssignDeciderInput{
		AdminID:        adminID,
		TargetMemberID: req.MemberID,
		Professions:    professions,
	})
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Decider assigned successfully", fiber.Map{
		"member": toMemberResponse(member),
	})
}

// RevokeDecider demotes a decider back to regular
// @Summary Revoke decider rights
// @Description Demote a decider back to a regular member
// @Tags Professions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param member_id path string true "Decider's member ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/deciders/{member_id} [delete]
func (h *ProfessionHandler) RevokeDecider(c *fiber.Ctx) error {
	adminID, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	member, err := h.professionService.RevokeDecider(c.Context(), adminID, c.Params("member_id"))
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Decider revoked successfully", fiber.Map{
		"member": toMemberResponse(member),
	})
}
