package expense

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense is the relational row shape. Ids are store-generated uuids;
// enums are stored as flat strings.
type Expense struct {
	ID          string    `gorm:"primaryKey;column:id"`
	GroupID     string    `gorm:"column:group_id;not null;index:idx_expenses_group_active,priority:1"`
	AmountCents int64     `gorm:"column:amount_cents;not null"`
	Category    string    `gorm:"column:category;not null"`
	TypeExpense string    `gorm:"column:type_expense;not null"`
	SpentBy     string    `gorm:"column:spent_by;not null"`
	Date        time.Time `gorm:"column:date;index:idx_expenses_date,sort:desc"`
	Note        *string   `gorm:"column:note"`
	IsDeleted   bool      `gorm:"column:is_deleted;not null;default:false;index:idx_expenses_group_active,priority:2"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

// BeforeCreate assigns the store-owned id.
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
