package expense

import "context"

// Repository is the persistence contract over expenses. Implementations
// must exclude soft-deleted records from every read path; Restore and
// DeletePermanently are the only operations that may see them.
//
// Absence is reported as (nil, nil) or (false, nil); errors are
// reserved for backing-store failures.
type Repository interface {
	// Create persists a new expense and assigns its store-owned id.
	// The input must not carry a caller-assigned id.
	Create(ctx context.Context, e *Expense) (*Expense, error)

	// GetByID returns the active expense with the given id, or nil.
	GetByID(ctx context.Context, id string) (*Expense, error)

	// GetAll lists active expenses for a group regardless of who
	// recorded them, newest date first, paginated by skip/limit.
	GetAll(ctx context.Context, groupID string, skip, limit int64) ([]*Expense, error)

	// Update replaces the mutable fields of the stored record. It never
	// writes created_at or is_deleted, always refreshes updated_at, and
	// returns nil when no record with that id exists.
	Update(ctx context.Context, id string, e *Expense) (*Expense, error)

	// Delete soft-deletes an active expense and reports whether a
	// record was affected. Deleting twice reports false the second time.
	Delete(ctx context.Context, id string) (bool, error)

	// Exists reports whether an active expense with the id exists.
	Exists(ctx context.Context, id string) (bool, error)

	// GetAmountsAndTypes streams the minimal analytics projection for
	// every active expense in a group.
	GetAmountsAndTypes(ctx context.Context, groupID string) ([]AmountAndType, error)

	// Restore reverses a soft delete; only currently deleted records
	// qualify. Administrative operation.
	Restore(ctx context.Context, id string) (bool, error)

	// DeletePermanently removes the record irrecoverably regardless of
	// deletion state. Administrative operation.
	DeletePermanently(ctx context.Context, id string) (bool, error)
}
