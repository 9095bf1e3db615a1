package expense

import (
	"context"
	"log/slog"
)

// GetAmountsAndTypes returns the minimal projection a client needs to
// compute per-group totals, without materializing full records.
type GetAmountsAndTypes struct {
	repo   Repository
	logger *slog.Logger
}

func NewGetAmountsAndTypes(repo Repository, logger *slog.Logger) *GetAmountsAndTypes {
	return &GetAmountsAndTypes{repo: repo, logger: logger}
}

func (uc *GetAmountsAndTypes) Execute(ctx context.Context, groupID string) ([]AmountAndType, error) {
	data, err := uc.repo.GetAmountsAndTypes(ctx, groupID)
	if err != nil {
		uc.logger.Error("failed to load amounts and types", "error", err, "group_id", groupID)
		return nil, err
	}

	uc.logger.Info("amounts and types loaded", "group_id", groupID, "count", len(data))
	return data, nil
}
