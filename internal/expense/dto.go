package expense

import (
	"time"

	"github.com/finito-app/expense-tracker/internal"
	"github.com/finito-app/expense-tracker/internal/core/common/validation"
)

// CreateExpenseDTO is the request payload for recording an expense.
// Date is optional and defaults to creation time; note is optional.
type CreateExpenseDTO struct {
	GroupID     string      `json:"group_id"`
	AmountCents int64       `json:"amount_cents"`
	Category    Category    `json:"category"`
	TypeExpense ExpenseType `json:"type_expense"`
	SpentBy     string      `json:"spent_by"`
	Date        *time.Time  `json:"date,omitempty"`
	Note        *string     `json:"note,omitempty"`
}

func (dto CreateExpenseDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("group_id", dto.GroupID).Required()
	v.Field("amount_cents", dto.AmountCents).
		MinInt(1, internal.ErrCodeInvalidAmount).
		MaxInt(MaxAmountCents, internal.ErrCodeAmountTooHigh)
	v.Field("spent_by", dto.SpentBy).Required().MaxLength(MaxSpentByLen)
	v.Field("note", dto.Note).MaxLength(MaxNoteLen)

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateExpenseDTO is a partial update. Pointer fields distinguish
// "omitted" from "set": only non-nil fields are applied, so a PATCH
// can never erase a field by accident.
type UpdateExpenseDTO struct {
	AmountCents *int64       `json:"amount_cents,omitempty"`
	Category    *Category    `json:"category,omitempty"`
	TypeExpense *ExpenseType `json:"type_expense,omitempty"`
	SpentBy     *string      `json:"spent_by,omitempty"`
	Date        *time.Time   `json:"date,omitempty"`
	Note        *string      `json:"note,omitempty"`
}

func (dto UpdateExpenseDTO) Validate() error {
	v := validation.NewValidator()
	if dto.AmountCents != nil {
		v.Field("amount_cents", *dto.AmountCents).
			MinInt(1, internal.ErrCodeInvalidAmount).
			MaxInt(MaxAmountCents, internal.ErrCodeAmountTooHigh)
	}
	if dto.SpentBy != nil {
		v.Field("spent_by", *dto.SpentBy).Required().MaxLength(MaxSpentByLen)
	}
	v.Field("note", dto.Note).MaxLength(MaxNoteLen)

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// ApplyTo overlays the present fields onto an existing expense and
// refreshes its modification time.
func (dto UpdateExpenseDTO) ApplyTo(e *Expense) {
	if dto.AmountCents != nil {
		e.AmountCents = *dto.AmountCents
	}
	if dto.Category != nil {
		e.Category = *dto.Category
	}
	if dto.TypeExpense != nil {
		e.TypeExpense = *dto.TypeExpense
	}
	if dto.SpentBy != nil {
		e.SpentBy = *dto.SpentBy
	}
	if dto.Date != nil {
		e.Date = dto.Date.UTC()
	}
	if dto.Note != nil {
		e.Note = dto.Note
	}
	e.Touch()
}

// ExpenseResponse is the transport projection of an expense.
type ExpenseResponse struct {
	ID          string      `json:"id"`
	GroupID     string      `json:"group_id"`
	AmountCents int64       `json:"amount_cents"`
	Category    Category    `json:"category"`
	TypeExpense ExpenseType `json:"type_expense"`
	SpentBy     string      `json:"spent_by"`
	Date        time.Time   `json:"date"`
	Note        *string     `json:"note,omitempty"`
	IsDeleted   bool        `json:"is_deleted"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func ToResponse(e *Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID,
		GroupID:     e.GroupID,
		AmountCents: e.AmountCents,
		Category:    e.Category,
		TypeExpense: e.TypeExpense,
		SpentBy:     e.SpentBy,
		Date:        e.Date,
		Note:        e.Note,
		IsDeleted:   e.IsDeleted,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToResponseSlice(expenses []*Expense) []*ExpenseResponse {
	result := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		result[i] = ToResponse(e)
	}
	return result
}

// AmountAndType is the minimal analytics projection: enough to compute
// totals per payment type without shipping full records.
type AmountAndType struct {
	AmountCents int64       `json:"amount_cents" bson:"amount_cents" gorm:"column:amount_cents"`
	TypeExpense ExpenseType `json:"type_expense" bson:"type_expense" gorm:"column:type_expense"`
}

// GetAllExpensesInput carries the list-operation parameters.
type GetAllExpensesInput struct {
	GroupID string
	Skip    int64
	Limit   int64
}
