package expense_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/finito-app/expense-tracker/internal"
	"github.com/finito-app/expense-tracker/internal/expense"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// memoryRepository mimics the store backends, including soft-delete
// visibility, so the use cases are tested against the same contract.
type memoryRepository struct {
	store  map[string]*expense.Expense
	nextID int
	err    error
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{store: make(map[string]*expense.Expense)}
}

func (m *memoryRepository) clone(e *expense.Expense) *expense.Expense {
	cp := *e
	if e.Note != nil {
		note := *e.Note
		cp.Note = &note
	}
	return &cp
}

func (m *memoryRepository) Create(ctx context.Context, e *expense.Expense) (*expense.Expense, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.nextID++
	e.ID = fmt.Sprintf("id-%d", m.nextID)
	m.store[e.ID] = m.clone(e)
	return e, nil
}

func (m *memoryRepository) GetByID(ctx context.Context, id string) (*expense.Expense, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.store[id]
	if !ok || e.IsDeleted {
		return nil, nil
	}
	return m.clone(e), nil
}

func (m *memoryRepository) GetAll(ctx context.Context, groupID string, skip, limit int64) ([]*expense.Expense, error) {
	if m.err != nil {
		return nil, m.err
	}
	var all []*expense.Expense
	for _, e := range m.store {
		if e.GroupID == groupID && !e.IsDeleted {
			all = append(all, m.clone(e))
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].Date.Equal(all[j].Date) {
			return all[i].Date.After(all[j].Date)
		}
		return all[i].ID < all[j].ID
	})
	if skip >= int64(len(all)) {
		return nil, nil
	}
	all = all[skip:]
	if limit < int64(len(all)) {
		all = all[:limit]
	}
	return all, nil
}

func (m *memoryRepository) Update(ctx context.Context, id string, e *expense.Expense) (*expense.Expense, error) {
	if m.err != nil {
		return nil, m.err
	}
	stored, ok := m.store[id]
	if !ok {
		return nil, nil
	}
	updated := m.clone(e)
	updated.ID = id
	updated.CreatedAt = stored.CreatedAt
	updated.IsDeleted = stored.IsDeleted
	m.store[id] = updated
	return m.clone(updated), nil
}

func (m *memoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	e, ok := m.store[id]
	if !ok || e.IsDeleted {
		return false, nil
	}
	e.IsDeleted = true
	e.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (m *memoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	e, ok := m.store[id]
	return ok && !e.IsDeleted, nil
}

func (m *memoryRepository) GetAmountsAndTypes(ctx context.Context, groupID string) ([]expense.AmountAndType, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []expense.AmountAndType
	for _, e := range m.store {
		if e.GroupID == groupID && !e.IsDeleted {
			out = append(out, expense.AmountAndType{AmountCents: e.AmountCents, TypeExpense: e.TypeExpense})
		}
	}
	return out, nil
}

func (m *memoryRepository) Restore(ctx context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	e, ok := m.store[id]
	if !ok || !e.IsDeleted {
		return false, nil
	}
	e.IsDeleted = false
	e.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (m *memoryRepository) DeletePermanently(ctx context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.store[id]; !ok {
		return false, nil
	}
	delete(m.store, id)
	return true, nil
}

var _ = Describe("Controller", func() {
	var (
		repo       *memoryRepository
		controller *expense.Controller
		ctx        context.Context
	)

	createDTO := func(groupID string, amount int64, date time.Time) expense.CreateExpenseDTO {
		return expense.CreateExpenseDTO{
			GroupID:     groupID,
			AmountCents: amount,
			Category:    expense.CategoryGroceries,
			TypeExpense: expense.TypeCash,
			SpentBy:     "Ann",
			Date:        &date,
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMemoryRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		controller = expense.NewController(repo, logger)
	})

	Describe("CreateExpense", func() {
		It("persists a valid expense and returns its id", func() {
			resp, err := controller.CreateExpense(ctx, createDTO("group-1", 2500, time.Now().UTC()))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.ID).NotTo(BeEmpty())
			Expect(resp.GroupID).To(Equal("group-1"))
			Expect(resp.IsDeleted).To(BeFalse())
		})

		It("rejects invalid input before touching the store", func() {
			dto := createDTO("group-1", 0, time.Now().UTC())

			_, err := controller.CreateExpense(ctx, dto)
			Expect(err).To(HaveOccurred())
			Expect(repo.store).To(BeEmpty())
		})

		It("propagates storage failures", func() {
			repo.err = internal.NewStorageError("connection lost", nil)

			_, err := controller.CreateExpense(ctx, createDTO("group-1", 2500, time.Now().UTC()))
			Expect(err).To(HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeStorage))
		})
	})

	Describe("GetAllExpenses", func() {
		It("lists newest first with pagination", func() {
			base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			for i := 0; i < 5; i++ {
				_, err := controller.CreateExpense(ctx, createDTO("group-1", int64(1000+i), base.AddDate(0, 0, i)))
				Expect(err).NotTo(HaveOccurred())
			}

			page, err := controller.GetAllExpenses(ctx, expense.GetAllExpensesInput{GroupID: "group-1", Skip: 2, Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(page).To(HaveLen(2))
			Expect(page[0].Date).To(Equal(base.AddDate(0, 0, 2)))
			Expect(page[1].Date).To(Equal(base.AddDate(0, 0, 1)))
		})

		It("omits deleted expenses", func() {
			created, err := controller.CreateExpense(ctx, createDTO("group-1", 2500, time.Now().UTC()))
			Expect(err).NotTo(HaveOccurred())

			_, err = controller.DeleteExpense(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())

			page, err := controller.GetAllExpenses(ctx, expense.GetAllExpensesInput{GroupID: "group-1", Limit: 100})
			Expect(err).NotTo(HaveOccurred())
			Expect(page).To(BeEmpty())
		})
	})

	Describe("GetExpenseByID", func() {
		It("returns nil for an unknown id without error", func() {
			resp, err := controller.GetExpenseByID(ctx, "no-such-id")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(BeNil())
		})
	})

	Describe("UpdateExpense", func() {
		It("merges only the present fields", func() {
			created, err := controller.CreateExpense(ctx, createDTO("group-1", 2500, time.Now().UTC()))
			Expect(err).NotTo(HaveOccurred())

			note := "shared dinner"
			resp, err := controller.UpdateExpense(ctx, created.ID, expense.UpdateExpenseDTO{Note: &note})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).NotTo(BeNil())

			Expect(resp.AmountCents).To(Equal(int64(2500)))
			Expect(resp.SpentBy).To(Equal("Ann"))
			Expect(resp.Note).NotTo(BeNil())
			Expect(*resp.Note).To(Equal("shared dinner"))
			Expect(resp.CreatedAt).To(Equal(created.CreatedAt))
			Expect(resp.UpdatedAt.After(created.UpdatedAt)).To(BeTrue())
		})

		It("returns nil for an unknown id", func() {
			amount := int64(100)
			resp, err := controller.UpdateExpense(ctx, "no-such-id", expense.UpdateExpenseDTO{AmountCents: &amount})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).To(BeNil())
		})

		It("rejects a merge that breaks validation", func() {
			created, err := controller.CreateExpense(ctx, createDTO("group-1", 2500, time.Now().UTC()))
			Expect(err).NotTo(HaveOccurred())

			bad := int64(10_000_000)
			_, err = controller.UpdateExpense(ctx, created.ID, expense.UpdateExpenseDTO{AmountCents: &bad})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("DeleteExpense", func() {
		It("reports true then false for the same id", func() {
			created, err := controller.CreateExpense(ctx, createDTO("group-1", 2500, time.Now().UTC()))
			Expect(err).NotTo(HaveOccurred())

			first, err := controller.DeleteExpense(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(BeTrue())

			second, err := controller.DeleteExpense(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(BeFalse())
		})
	})

	Describe("GetAmountsAndTypes", func() {
		It("projects active expenses only", func() {
			_, err := controller.CreateExpense(ctx, createDTO("group-1", 1000, time.Now().UTC()))
			Expect(err).NotTo(HaveOccurred())

			deleted, err := controller.CreateExpense(ctx, createDTO("group-1", 2000, time.Now().UTC()))
			Expect(err).NotTo(HaveOccurred())
			_, err = controller.DeleteExpense(ctx, deleted.ID)
			Expect(err).NotTo(HaveOccurred())

			data, err := controller.GetAmountsAndTypes(ctx, "group-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(data).To(HaveLen(1))
			Expect(data[0].AmountCents).To(Equal(int64(1000)))
		})
	})

	Describe("RestoreExpense", func() {
		It("restores a deleted expense back into reads", func() {
			created, err := controller.CreateExpense(ctx, createDTO("group-1", 2500, time.Now().UTC()))
			Expect(err).NotTo(HaveOccurred())

			_, err = controller.DeleteExpense(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())

			restored, err := controller.RestoreExpense(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored).To(BeTrue())

			resp, err := controller.GetExpenseByID(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp).NotTo(BeNil())
		})

		It("refuses to restore an active expense", func() {
			created, err := controller.CreateExpense(ctx, createDTO("group-1", 2500, time.Now().UTC()))
			Expect(err).NotTo(HaveOccurred())

			restored, err := controller.RestoreExpense(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored).To(BeFalse())
		})
	})

	Describe("PurgeExpense", func() {
		It("removes the record for good", func() {
			created, err := controller.CreateExpense(ctx, createDTO("group-1", 2500, time.Now().UTC()))
			Expect(err).NotTo(HaveOccurred())

			purged, err := controller.PurgeExpense(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(purged).To(BeTrue())

			restored, err := controller.RestoreExpense(ctx, created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored).To(BeFalse())
		})
	})
})
