package mongo

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finito-app/expense-tracker/internal"
	"github.com/finito-app/expense-tracker/internal/expense"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "expenses"

// expenseDocument is the persisted shape. Enum fields are stored as
// their flat string values; the entity id maps to the native _id.
type expenseDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	GroupID     string             `bson:"group_id"`
	AmountCents int64              `bson:"amount_cents"`
	Category    string             `bson:"category"`
	TypeExpense string             `bson:"type_expense"`
	SpentBy     string             `bson:"spent_by"`
	Date        time.Time          `bson:"date"`
	Note        *string            `bson:"note,omitempty"`
	IsDeleted   bool               `bson:"is_deleted"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toDocument(e *expense.Expense) *expenseDocument {
	return &expenseDocument{
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

func toEntity(doc *expenseDocument) *expense.Expense {
	return &expense.Expense{
		ID:          doc.ID.Hex(),
		GroupID:     doc.GroupID,
		AmountCents: doc.AmountCents,
		Category:    expense.Category(doc.Category),
		TypeExpense: expense.ExpenseType(doc.TypeExpense),
		SpentBy:     doc.SpentBy,
		Date:        doc.Date,
		Note:        doc.Note,
		IsDeleted:   doc.IsDeleted,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

// ExpenseRepository implements expense.Repository on a MongoDB
// collection. Every read path filters soft-deleted documents; only
// Restore and DeletePermanently may target them.
type ExpenseRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

func NewExpenseRepository(db *mongo.Database, logger *slog.Logger) expense.Repository {
	return &ExpenseRepository{
		collection: db.Collection(CollectionName),
		logger:     logger,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) (*expense.Expense, error) {
	if e.ID != "" {
		return nil, internal.NewValidationFieldError("id", "id is assigned by the store", internal.ErrCodeValidationFailed)
	}

	result, err := r.collection.InsertOne(ctx, toDocument(e))
	if err != nil {
		return nil, internal.NewStorageError("failed to insert expense", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, internal.NewStorageError("unexpected inserted id type", nil)
	}
	e.ID = oid.Hex()

	r.logger.Debug("expense document inserted", "expense_id", e.ID, "group_id", e.GroupID)
	return e, nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*expense.Expense, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// a malformed id can never match a document
		return nil, nil
	}

	var doc expenseDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid, "is_deleted": false}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, internal.NewStorageError("failed to load expense", err)
	}

	return toEntity(&doc), nil
}

func (r *ExpenseRepository) GetAll(ctx context.Context, groupID string, skip, limit int64) ([]*expense.Expense, error) {
	filter := bson.M{"group_id": groupID, "is_deleted": false}
	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, internal.NewStorageError("failed to list expenses", err)
	}
	defer cursor.Close(ctx)

	expenses := make([]*expense.Expense, 0)
	for cursor.Next(ctx) {
		var doc expenseDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, internal.NewStorageError("failed to decode expense", err)
		}
		expenses = append(expenses, toEntity(&doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, internal.NewStorageError("expense cursor failed", err)
	}

	return expenses, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, id string, e *expense.Expense) (*expense.Expense, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	// created_at and is_deleted are never part of the update set: the
	// first is immutable, the second only changes on the delete and
	// restore paths.
	update := bson.M{"$set": bson.M{
		"group_id":     e.GroupID,
		"amount_cents": e.AmountCents,
		"category":     e.Category.String(),
		"type_expense": e.TypeExpense.String(),
		"spent_by":     e.SpentBy,
		"date":         e.Date,
		"note":         e.Note,
		"updated_at":   e.UpdatedAt,
	}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, internal.NewStorageError("failed to update expense", err)
	}
	if result.MatchedCount == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, internal.NewStorageError("failed to soft-delete expense", err)
	}

	return result.MatchedCount > 0, nil
}

func (r *ExpenseRepository) Exists(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	count, err := r.collection.CountDocuments(ctx,
		bson.M{"_id": oid, "is_deleted": false},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, internal.NewStorageError("failed to check expense existence", err)
	}

	return count > 0, nil
}

func (r *ExpenseRepository) GetAmountsAndTypes(ctx context.Context, groupID string) ([]expense.AmountAndType, error) {
	filter := bson.M{"group_id": groupID, "is_deleted": false}
	opts := options.Find().SetProjection(bson.M{
		"amount_cents": 1,
		"type_expense": 1,
		"_id":          0,
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, internal.NewStorageError("failed to load amounts and types", err)
	}
	defer cursor.Close(ctx)

	results := make([]expense.AmountAndType, 0)
	for cursor.Next(ctx) {
		var row expense.AmountAndType
		if err := cursor.Decode(&row); err != nil {
			return nil, internal.NewStorageError("failed to decode projection", err)
		}
		results = append(results, row)
	}
	if err := cursor.Err(); err != nil {
		return nil, internal.NewStorageError("projection cursor failed", err)
	}

	return results, nil
}

func (r *ExpenseRepository) Restore(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "is_deleted": true},
		bson.M{"$set": bson.M{"is_deleted": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, internal.NewStorageError("failed to restore expense", err)
	}

	return result.MatchedCount > 0, nil
}

func (r *ExpenseRepository) DeletePermanently(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, internal.NewStorageError("failed to permanently delete expense", err)
	}

	return result.DeletedCount > 0, nil
}

// EnsureIndexes creates the indexes the list and analytics queries
// rely on. Called from the composition root, not the request path.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(CollectionName).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "is_deleted", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: -1}}},
	})
	if err != nil {
		return internal.NewStorageError("failed to create expense indexes", err)
	}
	return nil
}
