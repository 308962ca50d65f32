package handlers

import (
	"isuhub/internal/core/domain"
	"isuhub/internal/core/services"
	"isuhub/internal/pkg/pagination"
	"isuhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler handles ISU account endpoints
type AccountHandler struct {
	accountService *services.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// GetBalance returns the authenticated member's account
// @Summary Get own account balance
// @Description Get the authenticated member's ISU account and balance
// @Tags Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /accounts/me [get]
func (h *AccountHandler) GetBalance(c *fiber.Ctx) error {
	id, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	account, err := h.accountService.GetByOwner(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Account retrieved successfully", fiber.Map{
		"account": toAccountResponse(account),
	})
}

// GetHistory returns a member's ledger history
// @Summary Get account ledger history
// @Description Get the ledger entries touching a member's account, newest first
// @Tags Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param owner_id path string true "Account owner's member ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /accounts/{owner_id}/history [get]
func (h *AccountHandler) GetHistory(c *fiber.Ctx) error {
	requesterID, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	ownerID := c.Params("owner_id")
	params := pagination.GetParams(c)

	entries, total, err := h.accountService.GetHistory(c.Context(), requesterID, ownerID, params.Offset, params.Limit)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Ledger history retrieved successfully",
		pagination.NewResponse(toLedgerEntryResponses(entries), params, total))
}

// AdjustRequest represents an admin balance adjustment request body
type AdjustRequest struct {
	OwnerID     string `json:"owner_id"`
	Amount      string `json:"amount"`
	Credit      bool   `json:"credit"`
	Description string `json:"description"`
}

// Adjust applies an admin balance correction
// @Summary Adjust a member's balance
// @Description Credit or debit a member's account and record an admin_adjustment ledger entry
// @Tags Accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AdjustRequest true "Adjustment data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /admin/accounts/adjust [post]
func (h *AccountHandler) Adjust(c *fiber.Ctx) error {
	adminID, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req AdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.OwnerID == "" {
		return response.BadRequest(c, "Owner ID is required")
	}

	amount, err := domain.NewISUFromString(req.Amount)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	account, err := h.accountService.Adjust(c.Context(), &services.AdjustInput{
		AdminID:     adminID,
		OwnerID:     req.OwnerID,
		Amount:      amount,
		Credit:      req.Credit,
		Description: req.Description,
	})
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Balance adjusted successfully", fiber.Map{
		"account": toAccountResponse(account),
	})
}
