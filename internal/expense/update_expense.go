package expense

import (
	"context"
	"log/slog"
)

// UpdateExpense applies a partial update: the current active entity is
// loaded, only explicitly present fields are overlaid, updated_at is
// refreshed and the merged entity persisted.
type UpdateExpense struct {
	repo   Repository
	logger *slog.Logger
}

func NewUpdateExpense(repo Repository, logger *slog.Logger) *UpdateExpense {
	return &UpdateExpense{repo: repo, logger: logger}
}

func (uc *UpdateExpense) Execute(ctx context.Context, id string, dto UpdateExpenseDTO) (*ExpenseResponse, error) {
	if err := dto.Validate(); err != nil {
		uc.logger.Error("update validation failed", "error", err, "expense_id", id)
		return nil, err
	}

	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Error("failed to load expense for update", "error", err, "expense_id", id)
		return nil, err
	}
	if current == nil {
		uc.logger.Warn("expense not found for update", "expense_id", id)
		return nil, nil
	}

	dto.ApplyTo(current)
	if err := current.Validate(); err != nil {
		uc.logger.Error("merged expense failed validation", "error", err, "expense_id", id)
		return nil, err
	}

	updated, err := uc.repo.Update(ctx, id, current)
	if err != nil {
		uc.logger.Error("failed to update expense", "error", err, "expense_id", id)
		return nil, err
	}
	if updated == nil {
		uc.logger.Warn("expense vanished during update", "expense_id", id)
		return nil, nil
	}

	uc.logger.Info("expense updated", "expense_id", id)
	return ToResponse(updated), nil
}
