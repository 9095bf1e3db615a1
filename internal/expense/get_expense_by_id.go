package expense

import (
	"context"
	"log/slog"
)

// GetExpenseByID fetches one active expense. A missing or soft-deleted
// expense yields (nil, nil), not an error.
type GetExpenseByID struct {
	repo   Repository
	logger *slog.Logger
}

func NewGetExpenseByID(repo Repository, logger *slog.Logger) *GetExpenseByID {
	return &GetExpenseByID{repo: repo, logger: logger}
}

func (uc *GetExpenseByID) Execute(ctx context.Context, id string) (*ExpenseResponse, error) {
	entity, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, err
	}
	if entity == nil {
		uc.logger.Warn("expense not found", "expense_id", id)
		return nil, nil
	}

	return ToResponse(entity), nil
}
