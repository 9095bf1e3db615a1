package expense

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/finito-app/expense-tracker/internal/transport"
	"github.com/finito-app/expense-tracker/pkg/logger"
	"github.com/go-chi/chi"
)

const (
	defaultListLimit = 100
	maxListLimit     = 100
)

type ServiceAPI interface {
	CreateExpense(ctx context.Context, dto CreateExpenseDTO) (*ExpenseResponse, error)
	GetAllExpenses(ctx context.Context, input GetAllExpensesInput) ([]*ExpenseResponse, error)
	GetExpenseByID(ctx context.Context, id string) (*ExpenseResponse, error)
	UpdateExpense(ctx context.Context, id string, dto UpdateExpenseDTO) (*ExpenseResponse, error)
	DeleteExpense(ctx context.Context, id string) (bool, error)
	GetAmountsAndTypes(ctx context.Context, groupID string) ([]AmountAndType, error)
	RestoreExpense(ctx context.Context, id string) (bool, error)
	PurgeExpense(ctx context.Context, id string) (bool, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var dto CreateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateExpense: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.CreateExpense(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateExpense: service error", "error", err, "group_id", dto.GroupID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) GetAllExpenses(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")

	skip, limit := paginationParams(r)
	input := GetAllExpensesInput{GroupID: groupID, Skip: skip, Limit: limit}

	expenses, err := h.Service.GetAllExpenses(r.Context(), input)
	if err != nil {
		h.Logger.Error("GetAllExpenses: service error", "error", err, "group_id", groupID)
		h.HandleServiceError(w, err)
		return
	}

	if expenses == nil {
		expenses = []*ExpenseResponse{}
	}
	h.WriteJSON(w, http.StatusOK, expenses)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "id")

	resp, err := h.Service.GetExpenseByID(r.Context(), expenseID)
	if err != nil {
		h.Logger.Error("GetExpense: service error", "error", err, "expense_id", expenseID)
		h.HandleServiceError(w, err)
		return
	}
	if resp == nil {
		h.WriteError(w, http.StatusNotFound, "expense not found")
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "id")

	var dto UpdateExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateExpense: invalid request body", "error", err, "expense_id", expenseID)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.UpdateExpense(r.Context(), expenseID, dto)
	if err != nil {
		h.Logger.Error("UpdateExpense: service error", "error", err, "expense_id", expenseID)
		h.HandleServiceError(w, err)
		return
	}
	if resp == nil {
		h.WriteError(w, http.StatusNotFound, "expense not found")
		return
	}

	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "id")

	affected, err := h.Service.DeleteExpense(r.Context(), expenseID)
	if err != nil {
		h.Logger.Error("DeleteExpense: service error", "error", err, "expense_id", expenseID)
		h.HandleServiceError(w, err)
		return
	}
	if !affected {
		h.WriteError(w, http.StatusNotFound, "expense not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	groupID := chi.URLParam(r, "id")

	data, err := h.Service.GetAmountsAndTypes(r.Context(), groupID)
	if err != nil {
		h.Logger.Error("GetAnalytics: service error", "error", err, "group_id", groupID)
		h.HandleServiceError(w, err)
		return
	}

	if data == nil {
		data = []AmountAndType{}
	}
	h.WriteJSON(w, http.StatusOK, data)
}

func (h *Handler) RestoreExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "id")

	restored, err := h.Service.RestoreExpense(r.Context(), expenseID)
	if err != nil {
		h.Logger.Error("RestoreExpense: service error", "error", err, "expense_id", expenseID)
		h.HandleServiceError(w, err)
		return
	}
	if !restored {
		h.WriteError(w, http.StatusNotFound, "expense not found or not deleted")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "restored"})
}

func (h *Handler) PurgeExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "id")

	purged, err := h.Service.PurgeExpense(r.Context(), expenseID)
	if err != nil {
		h.Logger.Error("PurgeExpense: service error", "error", err, "expense_id", expenseID)
		h.HandleServiceError(w, err)
		return
	}
	if !purged {
		h.WriteError(w, http.StatusNotFound, "expense not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCategories lists the fixed category labels so clients can build
// pickers without hardcoding the set.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": Categories(),
	})
}

func paginationParams(r *http.Request) (skip, limit int64) {
	skip = 0
	limit = defaultListLimit

	if s := r.URL.Query().Get("skip"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v >= 0 {
			skip = v
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.ParseInt(l, 10, 64); err == nil && v > 0 && v <= maxListLimit {
			limit = v
		}
	}
	return skip, limit
}
