package expense

import (
	"context"
	"log/slog"
)

// DeleteExpense soft-deletes: the record is flagged, kept in storage,
// and disappears from every read path. Hard removal lives on the
// administrative purge path only.
type DeleteExpense struct {
	repo   Repository
	logger *slog.Logger
}

func NewDeleteExpense(repo Repository, logger *slog.Logger) *DeleteExpense {
	return &DeleteExpense{repo: repo, logger: logger}
}

func (uc *DeleteExpense) Execute(ctx context.Context, id string) (bool, error) {
	affected, err := uc.repo.Delete(ctx, id)
	if err != nil {
		uc.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return false, err
	}

	if affected {
		uc.logger.Info("expense soft-deleted", "expense_id", id)
	} else {
		uc.logger.Warn("expense not found for deletion", "expense_id", id)
	}
	return affected, nil
}
