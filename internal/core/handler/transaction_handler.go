package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"banking-service/internal/core/domain/entity"
	"banking-service/internal/core/usecase"
)

// TransactionHandler exposes the staging API. Mutations return 202:
// the transaction is accepted as PENDING and the outcome is
// asynchronous, observable via the status endpoint or the owner's
// notification channel.
type TransactionHandler struct {
	stage   *usecase.StageTransactionUseCase
	status  *usecase.GetTransactionStatusUseCase
	balance *usecase.GetBalanceUseCase
	history *usecase.GetBalanceHistoryUseCase
}

type (
	depositRequest struct {
		ToAccountID uuid.UUID       `json:"to_account_id"`
		Amount      decimal.Decimal `json:"amount"`
	}

	withdrawRequest struct {
		FromAccountID uuid.UUID       `json:"from_account_id"`
		Amount        decimal.Decimal `json:"amount"`
	}

	transferRequest struct {
		FromAccountID uuid.UUID       `json:"from_account_id"`
		ToAccountID   uuid.UUID       `json:"to_account_id"`
		Amount        decimal.Decimal `json:"amount"`
	}
)

func NewTransactionHandler(f *usecase.Factory) *TransactionHandler {
	return &TransactionHandler{
		stage:   f.Stage,
		status:  f.Status,
		balance: f.Balance,
		history: f.History,
	}
}

func (h *TransactionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/transactions/deposit", h.wrap(h.handleDeposit))
	mux.HandleFunc("POST /api/v1/transactions/withdraw", h.wrap(h.handleWithdraw))
	mux.HandleFunc("POST /api/v1/transactions/transfer", h.wrap(h.handleTransfer))
	mux.HandleFunc("GET /api/v1/transactions/{id}", h.wrap(h.handleGetStatus))
	mux.HandleFunc("GET /api/v1/accounts/{id}/balance", h.wrap(h.handleGetBalance))
	mux.HandleFunc("GET /api/v1/accounts/{id}/history", h.wrap(h.handleGetHistory))
}

func (h *TransactionHandler) handleDeposit(w http.ResponseWriter, r *http.Request) error {
	var req depositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return nil
	}

	return h.stageAndRespond(w, r, usecase.StageInput{
		ToAccountID: &req.ToAccountID,
		Amount:      req.Amount,
	})
}

func (h *TransactionHandler) handleWithdraw(w http.ResponseWriter, r *http.Request) error {
	var req withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return nil
	}

	return h.stageAndRespond(w, r, usecase.StageInput{
		FromAccountID: &req.FromAccountID,
		Amount:        req.Amount,
	})
}

func (h *TransactionHandler) handleTransfer(w http.ResponseWriter, r *http.Request) error {
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return nil
	}

	return h.stageAndRespond(w, r, usecase.StageInput{
		FromAccountID: &req.FromAccountID,
		ToAccountID:   &req.ToAccountID,
		Amount:        req.Amount,
	})
}

func (h *TransactionHandler) stageAndRespond(w http.ResponseWriter, r *http.Request, input usecase.StageInput) error {
	out, err := h.stage.Execute(r.Context(), input)
	if err != nil {
		if errors.Is(err, entity.ErrAmountMustBePositive) ||
			errors.Is(err, entity.ErrSameAccount) ||
			errors.Is(err, entity.ErrNoAccounts) ||
			errors.Is(err, entity.ErrInsufficientFunds) {
			respondWithError(w, r, http.StatusBadRequest, "validation error", err.Error())
			return nil
		}
		return err
	}

	respondWithSuccess(w, http.StatusAccepted, "transaction accepted", map[string]string{
		"id":     out.ID.String(),
		"status": out.Status,
	})
	return nil
}

func (h *TransactionHandler) handleGetStatus(w http.ResponseWriter, r *http.Request) error {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, "invalid parameter", "transaction id must be a uuid")
		return nil
	}

	out, err := h.status.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrTransactionNotFound) {
			respondWithError(w, r, http.StatusNotFound, "not found", err.Error())
			return nil
		}
		return err
	}

	respondWithSuccess(w, http.StatusOK, "ok", out)
	return nil
}

func (h *TransactionHandler) handleGetBalance(w http.ResponseWriter, r *http.Request) error {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, "invalid parameter", "account id must be a uuid")
		return nil
	}

	out, err := h.balance.Execute(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrAccountNotFound) {
			respondWithError(w, r, http.StatusNotFound, "not found", err.Error())
			return nil
		}
		return err
	}

	respondWithSuccess(w, http.StatusOK, "ok", map[string]any{
		"account_id": out.AccountID.String(),
		"balance":    out.Balance,
		"cached":     out.Cached,
	})
	return nil
}

func (h *TransactionHandler) handleGetHistory(w http.ResponseWriter, r *http.Request) error {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, "invalid parameter", "account id must be a uuid")
		return nil
	}

	out, err := h.history.Execute(r.Context(), id, 0)
	if err != nil {
		return err
	}

	respondWithSuccess(w, http.StatusOK, "ok", out)
	return nil
}

func (h *TransactionHandler) wrap(fn func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			respondWithError(w, r, http.StatusInternalServerError, "internal server error", err.Error())
		}
	}
}
