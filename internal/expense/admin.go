package expense

import (
	"context"
	"log/slog"
)

// Administrative operations outside the normal expense flow. Restore
// reverses a soft delete; Purge removes the record for good.

type RestoreExpense struct {
	repo   Repository
	logger *slog.Logger
}

func NewRestoreExpense(repo Repository, logger *slog.Logger) *RestoreExpense {
	return &RestoreExpense{repo: repo, logger: logger}
}

func (uc *RestoreExpense) Execute(ctx context.Context, id string) (bool, error) {
	restored, err := uc.repo.Restore(ctx, id)
	if err != nil {
		uc.logger.Error("failed to restore expense", "error", err, "expense_id", id)
		return false, err
	}

	if restored {
		uc.logger.Info("expense restored", "expense_id", id)
	} else {
		uc.logger.Warn("expense not found for restore, or not deleted", "expense_id", id)
	}
	return restored, nil
}

type PurgeExpense struct {
	repo   Repository
	logger *slog.Logger
}

func NewPurgeExpense(repo Repository, logger *slog.Logger) *PurgeExpense {
	return &PurgeExpense{repo: repo, logger: logger}
}

func (uc *PurgeExpense) Execute(ctx context.Context, id string) (bool, error) {
	purged, err := uc.repo.DeletePermanently(ctx, id)
	if err != nil {
		uc.logger.Error("failed to purge expense", "error", err, "expense_id", id)
		return false, err
	}

	if purged {
		uc.logger.Warn("expense permanently deleted", "expense_id", id)
	} else {
		uc.logger.Warn("expense not found for purge", "expense_id", id)
	}
	return purged, nil
}
