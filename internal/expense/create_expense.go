package expense

import (
	"context"
	"log/slog"
)

// CreateExpense records a new expense in a group. Any group member can
// contribute under the same group_id.
type CreateExpense struct {
	repo   Repository
	logger *slog.Logger
}

func NewCreateExpense(repo Repository, logger *slog.Logger) *CreateExpense {
	return &CreateExpense{repo: repo, logger: logger}
}

func (uc *CreateExpense) Execute(ctx context.Context, dto CreateExpenseDTO) (*ExpenseResponse, error) {
	entity, err := New(dto)
	if err != nil {
		uc.logger.Error("expense validation failed", "error", err, "group_id", dto.GroupID)
		return nil, err
	}

	created, err := uc.repo.Create(ctx, entity)
	if err != nil {
		uc.logger.Error("failed to create expense", "error", err, "group_id", dto.GroupID)
		return nil, err
	}

	uc.logger.Info("expense created",
		"expense_id", created.ID,
		"group_id", created.GroupID,
		"amount_cents", created.AmountCents,
		"spent_by", created.SpentBy)

	return ToResponse(created), nil
}
