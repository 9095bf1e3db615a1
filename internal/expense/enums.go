package expense

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/finito-app/expense-tracker/internal"
)

// Category is a closed set of expense category labels. Values outside
// the set are rejected when decoding request payloads.
type Category string

const (
	CategoryTransportation Category = "transportation"
	CategoryEntertainment  Category = "entertainment"
	CategoryUtilities      Category = "utilities"
	CategoryHealthcare     Category = "healthcare"
	CategoryEducation      Category = "education"
	CategoryShopping       Category = "shopping"
	CategorySubscriptions  Category = "subscriptions"
	CategoryPersonalCare   Category = "personal_care"
	CategoryHome           Category = "home"
	CategoryBills          Category = "bills"
	CategoryWork           Category = "work"
	CategoryGifts          Category = "gifts"
	CategoryInsurance      Category = "insurance"
	CategorySavings        Category = "savings"
	CategoryInvestments    Category = "investments"
	CategoryPet            Category = "pet"
	CategoryGroceries      Category = "groceries"
	CategoryRestaurants    Category = "restaurants"
	CategoryGas            Category = "gas"
	CategoryCar            Category = "car"
	CategoryOther          Category = "other"
)

var categories = map[Category]struct{}{
	CategoryTransportation: {},
	CategoryEntertainment:  {},
	CategoryUtilities:      {},
	CategoryHealthcare:     {},
	CategoryEducation:      {},
	CategoryShopping:       {},
	CategorySubscriptions:  {},
	CategoryPersonalCare:   {},
	CategoryHome:           {},
	CategoryBills:          {},
	CategoryWork:           {},
	CategoryGifts:          {},
	CategoryInsurance:      {},
	CategorySavings:        {},
	CategoryInvestments:    {},
	CategoryPet:            {},
	CategoryGroceries:      {},
	CategoryRestaurants:    {},
	CategoryGas:            {},
	CategoryCar:            {},
	CategoryOther:          {},
}

func (c Category) Valid() bool {
	_, ok := categories[c]
	return ok
}

func (c Category) String() string {
	return string(c)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", internal.NewValidationFieldError("category",
			fmt.Sprintf("unknown category %q", s), internal.ErrCodeInvalidCategory)
	}
	return c, nil
}

// Categories returns every valid category label, for the public
// categories listing.
func Categories() []Category {
	out := make([]Category, 0, len(categories))
	for c := range categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ExpenseType is the payment method used for an expense.
type ExpenseType string

const (
	TypeCreditCard  ExpenseType = "credit_card"
	TypeDebitCard   ExpenseType = "debit_card"
	TypePixTransfer ExpenseType = "pix_transfer"
	TypeCash        ExpenseType = "cash"
)

var expenseTypes = map[ExpenseType]struct{}{
	TypeCreditCard:  {},
	TypeDebitCard:   {},
	TypePixTransfer: {},
	TypeCash:        {},
}

func (t ExpenseType) Valid() bool {
	_, ok := expenseTypes[t]
	return ok
}

func (t ExpenseType) String() string {
	return string(t)
}

func (t *ExpenseType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseExpenseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func ParseExpenseType(s string) (ExpenseType, error) {
	t := ExpenseType(s)
	if !t.Valid() {
		return "", internal.NewValidationFieldError("type_expense",
			fmt.Sprintf("unknown expense type %q", s), internal.ErrCodeInvalidType)
	}
	return t, nil
}
