// Package mongo provides the MongoDB implementation of the transaction
// ledger repository.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/agrifed-procurement-ledger/internal/domain/ledger"
	"github.com/agrifed-procurement-ledger/internal/domain/shared"
)

const (
	// LedgerCollectionName is the name of the ledger collection in MongoDB
	LedgerCollectionName = "ledger_records"
)

// LedgerRepository implements the ledger.Repository interface for MongoDB
type LedgerRepository struct {
	db     *mongo.Database
	logger *slog.Logger
}

// NewLedgerRepository creates a new MongoDB ledger repository
func NewLedgerRepository(logger *slog.Logger, db *mongo.Database) ledger.Repository {
	return &LedgerRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a new ledger record after checking for duplicates.
// Returns ErrDuplicateRecord if a record with the same ID exists.
func (r *LedgerRepository) Create(ctx context.Context, record *ledger.Record) error {
	collection := r.db.Collection(LedgerCollectionName)

	existing, err := r.GetByID(ctx, record.ID)
	if err != nil && !errors.Is(err, ledger.ErrRecordNotFound{}) {
		r.logger.Error("Failed to check for existing ledger record",
			"record_id", record.ID.String(),
			"error", err)
		return fmt.Errorf("failed to check for existing ledger record: %w", err)
	}

	if existing != nil {
		return ledger.ErrDuplicateRecord{ID: record.ID}
	}

	_, err = collection.InsertOne(ctx, record)
	if err != nil {
		r.logger.Error("Failed to create ledger record",
			"record_id", record.ID.String(),
			"error", err)
		return fmt.Errorf("failed to create ledger record: %w", err)
	}

	return nil
}

// GetByID retrieves a ledger record by its ID.
// Returns ErrRecordNotFound if no record exists.
func (r *LedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.Record, error) {
	collection := r.db.Collection(LedgerCollectionName)

	filter := bson.M{"id": id}
	var record ledger.Record
	err := collection.FindOne(ctx, filter).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ledger.ErrRecordNotFound{ID: id}
		}
		r.logger.Error("Failed to get ledger record",
			"record_id", id.String(),
			"error", err)
		return nil, fmt.Errorf("failed to get ledger record: %w", err)
	}

	return &record, nil
}

// ListByKind retrieves the full ledger partition for a transaction kind.
// Results are sorted by creation time in descending order (newest first);
// filter and sort rules are applied by the domain projection over this
// snapshot so their semantics never depend on collection collation.
func (r *LedgerRepository) ListByKind(ctx context.Context, kind shared.TransactionKind) ([]*ledger.Record, error) {
	collection := r.db.Collection(LedgerCollectionName)

	filter := bson.M{"kind": kind}
	opts := options.Find().
		SetSort(bson.M{"created_at": -1})

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		r.logger.Error("Failed to list ledger records",
			"kind", string(kind),
			"error", err)
		return nil, fmt.Errorf("failed to list ledger records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*ledger.Record
	if err := cursor.All(ctx, &records); err != nil {
		r.logger.Error("Failed to decode ledger records",
			"kind", string(kind),
			"error", err)
		return nil, fmt.Errorf("failed to decode ledger records: %w", err)
	}

	return records, nil
}

// CountByKind counts the ledger records in a transaction kind partition
func (r *LedgerRepository) CountByKind(ctx context.Context, kind shared.TransactionKind) (int64, error) {
	collection := r.db.Collection(LedgerCollectionName)

	filter := bson.M{"kind": kind}
	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		r.logger.Error("Failed to count ledger records",
			"kind", string(kind),
			"error", err)
		return 0, fmt.Errorf("failed to count ledger records: %w", err)
	}

	return count, nil
}
