package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finito-app/expense-tracker/internal"
	expenseDatamodel "github.com/finito-app/expense-tracker/internal/core/datamodel/expense"
	"github.com/finito-app/expense-tracker/internal/expense"
	"gorm.io/gorm"
)

// ExpenseRepository implements expense.Repository on a relational
// store through GORM. Semantics mirror the document-store backend:
// soft-deleted rows are invisible to every read path.
type ExpenseRepository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewExpenseRepository(db *gorm.DB, logger *slog.Logger) expense.Repository {
	return &ExpenseRepository{db: db, logger: logger}
}

func toDataModel(e *expense.Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:          e.ID,
		GroupID:     e.GroupID,
		AmountCents: e.AmountCents,
		Category:    e.Category.String(),
		TypeExpense: e.TypeExpense.String(),
		SpentBy:     e.SpentBy,
		Date:        e.Date,
		Note:        e.Note,
		IsDeleted:   e.IsDeleted,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func fromDataModel(dm *expenseDatamodel.Expense) *expense.Expense {
	return &expense.Expense{
		ID:          dm.ID,
		GroupID:     dm.GroupID,
		AmountCents: dm.AmountCents,
		Category:    expense.Category(dm.Category),
		TypeExpense: expense.ExpenseType(dm.TypeExpense),
		SpentBy:     dm.SpentBy,
		Date:        dm.Date,
		Note:        dm.Note,
		IsDeleted:   dm.IsDeleted,
		CreatedAt:   dm.CreatedAt,
		UpdatedAt:   dm.UpdatedAt,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) (*expense.Expense, error) {
	if e.ID != "" {
		return nil, internal.NewValidationFieldError("id", "id is assigned by the store", internal.ErrCodeValidationFailed)
	}

	dm := toDataModel(e)
	if err := r.db.WithContext(ctx).Create(dm).Error; err != nil {
		return nil, internal.NewStorageError("failed to insert expense", err)
	}

	e.ID = dm.ID
	r.logger.Debug("expense row inserted", "expense_id", e.ID, "group_id", e.GroupID)
	return e, nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*expense.Expense, error) {
	var dm expenseDatamodel.Expense
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&dm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, internal.NewStorageError("failed to load expense", err)
	}

	return fromDataModel(&dm), nil
}

func (r *ExpenseRepository) GetAll(ctx context.Context, groupID string, skip, limit int64) ([]*expense.Expense, error) {
	var rows []*expenseDatamodel.Expense
	err := r.db.WithContext(ctx).
		Where("group_id = ? AND is_deleted = ?", groupID, false).
		Order("date DESC, id ASC").
		Offset(int(skip)).
		Limit(int(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, internal.NewStorageError("failed to list expenses", err)
	}

	expenses := make([]*expense.Expense, len(rows))
	for i, dm := range rows {
		expenses[i] = fromDataModel(dm)
	}
	return expenses, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, id string, e *expense.Expense) (*expense.Expense, error) {
	// created_at and is_deleted stay out of the update set; updated_at
	// always comes along.
	updates := map[string]interface{}{
		"group_id":     e.GroupID,
		"amount_cents": e.AmountCents,
		"category":     e.Category.String(),
		"type_expense": e.TypeExpense.String(),
		"spent_by":     e.SpentBy,
		"date":         e.Date,
		"note":         e.Note,
		"updated_at":   e.UpdatedAt,
	}

	result := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return nil, internal.NewStorageError("failed to update expense", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{"is_deleted": true, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return false, internal.NewStorageError("failed to soft-delete expense", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *ExpenseRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Count(&count).Error
	if err != nil {
		return false, internal.NewStorageError("failed to check expense existence", err)
	}

	return count > 0, nil
}

func (r *ExpenseRepository) GetAmountsAndTypes(ctx context.Context, groupID string) ([]expense.AmountAndType, error) {
	results := make([]expense.AmountAndType, 0)
	err := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Select("amount_cents", "type_expense").
		Where("group_id = ? AND is_deleted = ?", groupID, false).
		Scan(&results).Error
	if err != nil {
		return nil, internal.NewStorageError("failed to load amounts and types", err)
	}

	return results, nil
}

func (r *ExpenseRepository) Restore(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Where("id = ? AND is_deleted = ?", id, true).
		Updates(map[string]interface{}{"is_deleted": false, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return false, internal.NewStorageError("failed to restore expense", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *ExpenseRepository) DeletePermanently(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&expenseDatamodel.Expense{})
	if result.Error != nil {
		return false, internal.NewStorageError("failed to permanently delete expense", result.Error)
	}

	return result.RowsAffected > 0, nil
}
