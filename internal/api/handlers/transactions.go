package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/avolkov/pennywise/internal/api/middleware"
	"github.com/avolkov/pennywise/internal/ledger"
)

// TransactionsHandler handles /api/transactions.
type TransactionsHandler struct {
	ledger *ledger.Ledger
	log    zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(l *ledger.Ledger, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{ledger: l, log: log}
}

// transactionRequest is the wire shape of create and update bodies.
type transactionRequest struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Amount      json.Number    `json:"amount"`
	Date        string         `json:"date"`
	Category    string         `json:"category"`
	Type        string         `json:"type"`
	Notes       string         `json:"notes"`
	Attributes  map[string]any `json:"attributes"`
	Status      string         `json:"status"`
	RecurringID *string        `json:"recurringId"`
	AutoConfirm bool           `json:"autoConfirm"`
}

func (req transactionRequest) input() (ledger.TransactionInput, error) {
	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil {
		return ledger.TransactionInput{}, errors.New("amount is required")
	}
	return ledger.TransactionInput{
		ID:          req.ID,
		Name:        req.Name,
		Amount:      amount,
		Date:        req.Date,
		Category:    req.Category,
		Type:        req.Type,
		Notes:       req.Notes,
		Attributes:  req.Attributes,
		Status:      req.Status,
		RecurringID: req.RecurringID,
		AutoConfirm: req.AutoConfirm,
	}, nil
}

// List handles GET /api/transactions.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "User ID required")
		return
	}

	txs, err := h.ledger.Transactions(r.Context(), userID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to load transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to load transactions")
		return
	}

	docs := make([]map[string]any, 0, len(txs))
	for _, t := range txs {
		docs = append(docs, t.Document())
	}
	middleware.WriteJSON(w, http.StatusOK, docs)
}

// Create handles POST /api/transactions.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "User ID required")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	in, err := req.input()
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.ledger.CreateTransaction(r.Context(), userID, in)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Failed to create transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, t.Document())
}

// Update handles PUT /api/transactions.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "User ID required")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	in, err := req.input()
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	t, err := h.ledger.UpdateTransaction(r.Context(), userID, in)
	if errors.Is(err, ledger.ErrTransactionNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Str("transaction_id", in.ID).Msg("Failed to update transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to update transaction")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, t.Document())
}

// Delete handles DELETE /api/transactions?id=...
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r)
	if userID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "User ID required")
		return
	}

	id := r.URL.Query().Get("id")
	err := h.ledger.DeleteTransaction(r.Context(), userID, id)
	if errors.Is(err, ledger.ErrTransactionNotFound) {
		middleware.WriteError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Str("transaction_id", id).Msg("Failed to delete transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
