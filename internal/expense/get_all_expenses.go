package expense

import (
	"context"
	"log/slog"
)

// GetAllExpenses lists a group's active expenses, newest date first.
type GetAllExpenses struct {
	repo   Repository
	logger *slog.Logger
}

func NewGetAllExpenses(repo Repository, logger *slog.Logger) *GetAllExpenses {
	return &GetAllExpenses{repo: repo, logger: logger}
}

func (uc *GetAllExpenses) Execute(ctx context.Context, input GetAllExpensesInput) ([]*ExpenseResponse, error) {
	expenses, err := uc.repo.GetAll(ctx, input.GroupID, input.Skip, input.Limit)
	if err != nil {
		uc.logger.Error("failed to list expenses", "error", err, "group_id", input.GroupID)
		return nil, err
	}

	uc.logger.Info("expenses listed",
		"group_id", input.GroupID,
		"count", len(expenses),
		"skip", input.Skip,
		"limit", input.Limit)

	return ToResponseSlice(expenses), nil
}
