package expense

import (
	"math"
	"time"

	"github.com/finito-app/expense-tracker/internal"
	"github.com/finito-app/expense-tracker/internal/core/common/validation"
)

// Amounts are stored as integer cents; floats never reach storage or
// validation, only the display conversion below.
const (
	MaxAmountCents = 9_999_999
	MaxSpentByLen  = 100
	MaxNoteLen     = 500
)

// Expense is one financial transaction recorded against a group. The
// ID is empty until the store assigns one and immutable afterwards.
type Expense struct {
	ID          string      `json:"id,omitempty"`
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

// New builds a validated expense from creation input. Date defaults to
// now; created_at and updated_at start equal.
func New(dto CreateExpenseDTO) (*Expense, error) {
	now := time.Now().UTC()

	date := now
	if dto.Date != nil {
		date = dto.Date.UTC()
	}

	e := &Expense{
		GroupID:     dto.GroupID,
		AmountCents: dto.AmountCents,
		Category:    dto.Category,
		TypeExpense: dto.TypeExpense,
		SpentBy:     dto.SpentBy,
		Date:        date,
		Note:        dto.Note,
		IsDeleted:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Expense) Validate() error {
	v := validation.NewValidator()
	v.Field("group_id", e.GroupID).Required()
	v.Field("amount_cents", e.AmountCents).
		MinInt(1, internal.ErrCodeInvalidAmount).
		MaxInt(MaxAmountCents, internal.ErrCodeAmountTooHigh)
	v.Field("spent_by", e.SpentBy).Required().MaxLength(MaxSpentByLen)
	v.Field("note", e.Note).MaxLength(MaxNoteLen)
	v.Field("category", e.Category).Custom(func(interface{}) *internal.AppError {
		if !e.Category.Valid() {
			return internal.NewValidationFieldError("category", "category is not a recognized label", internal.ErrCodeInvalidCategory)
		}
		return nil
	})
	v.Field("type_expense", e.TypeExpense).Custom(func(interface{}) *internal.AppError {
		if !e.TypeExpense.Valid() {
			return internal.NewValidationFieldError("type_expense", "type_expense is not a recognized label", internal.ErrCodeInvalidType)
		}
		return nil
	})

	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// Touch refreshes updated_at; created_at is never touched after
// construction.
func (e *Expense) Touch() {
	e.UpdatedAt = time.Now().UTC()
}

// AmountDecimal converts cents to decimal units for display only.
func (e *Expense) AmountDecimal() float64 {
	return float64(e.AmountCents) / 100
}

// CentsFromDecimal converts a decimal amount to cents, rounding to the
// nearest cent.
func CentsFromDecimal(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
