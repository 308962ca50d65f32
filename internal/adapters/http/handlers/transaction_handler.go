package handlers

import (
	"github.com/gofiber/fiber/v2"

	"isuhub/internal/core/services"
	"isuhub/internal/pkg/pagination"
	"isuhub/internal/pkg/response"
)

// TransactionHandler handles transaction lifecycle endpoints
type TransactionHandler struct {
	transactionService *services.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents a create transaction request body
type CreateTransactionRequest struct {
	ServiceID   string `json:"service_id"`
	Description string `json:"description"`
}

// Create opens a pending transaction for a service
// @Summary Create a transaction
// @Description Open a pending transaction as buyer for an available service
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateTransactionRequest true "Transaction data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	buyerID, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.ServiceID == "" {
		return response.BadRequest(c, "Service ID is required")
	}

	transaction, err := h.transactionService.Create(c.Context(), &services.CreateTransactionInput{
		BuyerID:     buyerID,
		ServiceID:   req.ServiceID,
		Description: req.Description,
	})
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Created(c, "Transaction created successfully", fiber.Map{
		"transaction": toTransactionResponse(transaction),
	})
}

// Confirm accepts a pending transaction and moves the ISU
// @Summary Confirm a transaction
// @Description Seller accepts a pending transaction; payment transfers atomically
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /transactions/{id}/confirm [post]
func (h *TransactionHandler) Confirm(c *fiber.Ctx) error {
	sellerID, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	transaction, err := h.transactionService.Confirm(c.Context(), c.Params("id"), sellerID)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Transaction confirmed successfully", fiber.Map{
		"transaction": toTransactionResponse(transaction),
	})
}

// Complete marks an in-progress transaction as done
// @Summary Complete a transaction
// @Description Either participant marks the work as delivered
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /transactions/{id}/complete [post]
func (h *TransactionHandler) Complete(c *fiber.Ctx) error {
	requesterID, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	transaction, err := h.transactionService.Complete(c.Context(), c.Params("id"), requesterID)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Transaction completed successfully", fiber.Map{
		"transaction": toTransactionResponse(transaction),
	})
}

// Cancel aborts a transaction before work starts
// @Summary Cancel a transaction
// @Description Either participant cancels a pending or confirmed transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /transactions/{id}/cancel [post]
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	requesterID, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	transaction, err := h.transactionService.Cancel(c.Context(), c.Params("id"), requesterID)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Transaction cancelled successfully", fiber.Map{
		"transaction": toTransactionResponse(transaction),
	})
}

// Dispute flags an in-progress transaction
// @Summary Dispute a transaction
// @Description Either participant raises a dispute on an in-progress transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /transactions/{id}/dispute [post]
func (h *TransactionHandler) Dispute(c *fiber.Ctx) error {
	requesterID, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	transaction, err := h.transactionService.Dispute(c.Context(), c.Params("id"), requesterID)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Transaction disputed successfully", fiber.Map{
		"transaction": toTransactionResponse(transaction),
	})
}

// List returns the member's transactions
// @Summary List own transactions
// @Description List transactions where the member is buyer or seller, newest first
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Router /transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	id, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)

	transactions, total, err := h.transactionService.ListByParticipant(c.Context(), id, params.Offset, params.Limit)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Transactions retrieved successfully",
		pagination.NewResponse(toTransactionResponses(transactions), params, total))
}

// Pending returns pending transactions awaiting the seller
// @Summary List pending transactions
// @Description List pending transactions waiting for the member's confirmation, oldest first
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /transactions/pending [get]
func (h *TransactionHandler) Pending(c *fiber.Ctx) error {
	id, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	transactions, err := h.transactionService.PendingForSeller(c.Context(), id)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Pending transactions retrieved successfully", fiber.Map{
		"transactions": toTransactionResponses(transactions),
	})
}

// Get returns one transaction
// @Summary Get a transaction
// @Description Get a transaction by ID; participants only
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, ok := c.Locals("memberID").(string)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	transaction, err := h.transactionService.GetByID(c.Context(), c.Params("id"), id)
	if err != nil {
		return response.FromDomainError(c, err)
	}

	return response.Success(c, "Transaction retrieved successfully", fiber.Map{
		"transaction": toTransactionResponse(transaction),
	})
}
