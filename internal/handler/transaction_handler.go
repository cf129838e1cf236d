package handler

import (
	"errors"
	"net/http"
	"sort"

	"github.com/centime/centime-backend/internal/domain"
	"github.com/centime/centime-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	ledger *service.LedgerService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(ledger *service.LedgerService) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

// TransactionResponse is the wire form of a transaction
type TransactionResponse struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    int32  `json:"category"`
	Notes       string `json:"notes"`
}

func toTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Date:        t.Date.String(),
		Amount:      t.Amount.String(),
		Description: t.Description,
		Category:    t.CategoryID,
		Notes:       t.Notes,
	}
}

// CreateTransactionRequest is the request body for creating a transaction
type CreateTransactionRequest struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    int32  `json:"category"`
	Notes       string `json:"notes"`
}

// UpdateTransactionRequest is the request body for editing a transaction
type UpdateTransactionRequest struct {
	Date        *string `json:"date"`
	Amount      *string `json:"amount"`
	Description *string `json:"description"`
	Category    *int32  `json:"category"`
	Notes       *string `json:"notes"`
}

// GetTransactions handles GET /api/v1/transactions
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	txns := h.ledger.Transactions()

	// Insertion order carries no meaning; display newest first.
	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date.Time().After(txns[j].Date.Time())
	})

	out := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, toTransactionResponse(t))
	}
	return c.JSON(http.StatusOK, out)
}

// CreateTransaction handles POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var date domain.Date
	if req.Date != "" {
		date, err = domain.ParseDate(req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Expected YYYY-MM-DD"},
			})
		}
	}

	txn, err := h.ledger.CreateTransaction(service.CreateTransactionInput{
		Date:        date,
		Amount:      amount,
		Description: req.Description,
		CategoryID:  req.Category,
		Notes:       req.Notes,
	})
	if err != nil {
		return h.mapError(c, err, "Failed to create transaction")
	}

	log.Info().Str("transaction_id", txn.ID).Str("amount", txn.Amount.String()).Msg("Transaction created")
	return c.JSON(http.StatusCreated, toTransactionResponse(txn))
}

// UpdateTransaction handles PUT /api/v1/transactions/:id
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	id := c.Param("id")

	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := service.UpdateTransactionInput{
		Description: req.Description,
		CategoryID:  req.Category,
		Notes:       req.Notes,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Must be a valid decimal number"},
			})
		}
		input.Amount = &amount
	}
	if req.Date != nil {
		date, err := domain.ParseDate(*req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Expected YYYY-MM-DD"},
			})
		}
		input.Date = &date
	}

	txn, err := h.ledger.UpdateTransaction(id, input)
	if err != nil {
		return h.mapError(c, err, "Failed to update transaction")
	}
	return c.JSON(http.StatusOK, toTransactionResponse(txn))
}

// DeleteTransaction handles DELETE /api/v1/transactions/:id
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	id := c.Param("id")
	if err := h.ledger.DeleteTransaction(id); err != nil {
		return h.mapError(c, err, "Failed to delete transaction")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TransactionHandler) mapError(c echo.Context, err error, detail string) error {
	switch {
	case errors.Is(err, domain.ErrTransactionNotFound):
		return NewNotFoundError(c, "Transaction not found")
	case errors.Is(err, domain.ErrCategoryNotFound):
		return NewNotFoundError(c, "Category not found")
	case errors.Is(err, domain.ErrNameTooLong), errors.Is(err, domain.ErrNotesTooLong):
		return NewValidationError(c, "Field exceeds maximum length", nil)
	default:
		log.Error().Err(err).Msg(detail)
		return NewInternalError(c, detail)
	}
}
