package expense

import (
	"context"
	"log/slog"
)

// Controller groups the expense use cases behind one façade for the
// transport layer. It adds no logic of its own; failures propagate
// unchanged.
type Controller struct {
	createExpense      *CreateExpense
	getAllExpenses     *GetAllExpenses
	getExpenseByID     *GetExpenseByID
	updateExpense      *UpdateExpense
	deleteExpense      *DeleteExpense
	getAmountsAndTypes *GetAmountsAndTypes
	restoreExpense     *RestoreExpense
	purgeExpense       *PurgeExpense
}

func NewController(repo Repository, logger *slog.Logger) *Controller {
	return &Controller{
		createExpense:      NewCreateExpense(repo, logger),
		getAllExpenses:     NewGetAllExpenses(repo, logger),
		getExpenseByID:     NewGetExpenseByID(repo, logger),
		updateExpense:      NewUpdateExpense(repo, logger),
		deleteExpense:      NewDeleteExpense(repo, logger),
		getAmountsAndTypes: NewGetAmountsAndTypes(repo, logger),
		restoreExpense:     NewRestoreExpense(repo, logger),
		purgeExpense:       NewPurgeExpense(repo, logger),
	}
}

func (c *Controller) CreateExpense(ctx context.Context, dto CreateExpenseDTO) (*ExpenseResponse, error) {
	return c.createExpense.Execute(ctx, dto)
}

func (c *Controller) GetAllExpenses(ctx context.Context, input GetAllExpensesInput) ([]*ExpenseResponse, error) {
	return c.getAllExpenses.Execute(ctx, input)
}

func (c *Controller) GetExpenseByID(ctx context.Context, id string) (*ExpenseResponse, error) {
	return c.getExpenseByID.Execute(ctx, id)
}

func (c *Controller) UpdateExpense(ctx context.Context, id string, dto UpdateExpenseDTO) (*ExpenseResponse, error) {
	return c.updateExpense.Execute(ctx, id, dto)
}

func (c *Controller) DeleteExpense(ctx context.Context, id string) (bool, error) {
	return c.deleteExpense.Execute(ctx, id)
}

func (c *Controller) GetAmountsAndTypes(ctx context.Context, groupID string) ([]AmountAndType, error) {
	return c.getAmountsAndTypes.Execute(ctx, groupID)
}

func (c *Controller) RestoreExpense(ctx context.Context, id string) (bool, error) {
	return c.restoreExpense.Execute(ctx, id)
}

func (c *Controller) PurgeExpense(ctx context.Context, id string) (bool, error) {
	return c.purgeExpense.Execute(ctx, id)
}
