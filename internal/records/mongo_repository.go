package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding all pipeline records.
const CollectionName = "daily_records"

// mongoRecord is the BSON document shape for a stored record. The payload
// is stored as a native BSON document so it stays queryable.
type mongoRecord struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Kind      string    `bson:"kind"`
	Timestamp time.Time `bson:"timestamp"`
	Payload   bson.M    `bson:"payload"`
}

// MongoRepository is a MongoDB implementation of Repository.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository creates a new Mongo record repository.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// Insert appends a new record.
func (r *MongoRepository) Insert(ctx context.Context, rec *Record) error {
	doc, err := toMongoRecord(rec)
	if err != nil {
		return err
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("inserting %s record: %w", rec.Kind, err)
	}
	return nil
}

// FindLatest returns the most recent record of the given kind for a user.
func (r *MongoRepository) FindLatest(ctx context.Context, userID string, kind Kind, since time.Time) (*Record, error) {
	filter := r.filter(userID, kind, since)
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var doc mongoRecord
	err := r.coll.FindOne(ctx, filter, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return fromMongoRecord(&doc)
}

// FindRecent returns records of the given kind ordered most recent first.
func (r *MongoRepository) FindRecent(ctx context.Context, userID string, kind Kind, findOpts FindOptions) ([]*Record, error) {
	filter := r.filter(userID, kind, findOpts.Since)
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if findOpts.Limit > 0 {
		opts = opts.SetLimit(int64(findOpts.Limit))
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var recs []*Record
	for cursor.Next(ctx) {
		var doc mongoRecord
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		rec, err := fromMongoRecord(&doc)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, cursor.Err()
}

func (r *MongoRepository) filter(userID string, kind Kind, since time.Time) bson.M {
	filter := bson.M{"user_id": userID, "kind": string(kind)}
	if !since.IsZero() {
		filter["timestamp"] = bson.M{"$gte": since}
	}
	return filter
}

func toMongoRecord(rec *Record) (*mongoRecord, error) {
	var payload bson.M
	if len(rec.Payload) > 0 {
		if err := json.Unmarshal(rec.Payload, &payload); err != nil {
			return nil, fmt.Errorf("decoding record payload: %w", err)
		}
	}

	return &mongoRecord{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Kind:      string(rec.Kind),
		Timestamp: rec.Timestamp,
		Payload:   payload,
	}, nil
}

func fromMongoRecord(doc *mongoRecord) (*Record, error) {
	raw, err := json.Marshal(doc.Payload)
	if err != nil {
		return nil, fmt.Errorf("encoding record payload: %w", err)
	}

	return &Record{
		ID:        doc.ID,
		UserID:    doc.UserID,
		Kind:      Kind(doc.Kind),
		Timestamp: doc.Timestamp,
		Payload:   raw,
	}, nil
}

// Ensure MongoRepository implements Repository interface.
var _ Repository = (*MongoRepository)(nil)
