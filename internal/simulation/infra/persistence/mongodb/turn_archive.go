package mongodb

import (
	"EconSim/internal/simulation/entity"
	"EconSim/internal/simulation/infra/persistence/model"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const defaultCollectionName = "turn_records"

type TurnArchive struct {
	coll *mongo.Collection
}

// NewTurnArchive uses collection, or turn_records when it is empty.
func NewTurnArchive(db *mongo.Database, collection string) *TurnArchive {
	if collection == "" {
		collection = defaultCollectionName
	}
	return &TurnArchive{
		coll: db.Collection(collection),
	}
}

// EnsureIndexes creates the turn index Recent sorts on.
func (a *TurnArchive) EnsureIndexes(ctx context.Context) error {
	if a == nil || a.coll == nil {
		return errors.New("mongodb turn collection is nil")
	}
	_, err := a.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "turn", Value: -1}},
	})
	return err
}

func (a *TurnArchive) Save(ctx context.Context, records []*entity.TurnRecord) error {
	if len(records) == 0 {
		return nil
	}
	if a == nil || a.coll == nil {
		return errors.New("mongodb turn collection is nil")
	}
	docs := make([]any, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		docs = append(docs, model.TurnRecordToDoc(r))
	}
	if len(docs) == 0 {
		return nil
	}
	// Unordered so a retried batch skips ids that already landed.
	_, err := a.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (a *TurnArchive) Recent(ctx context.Context, limit int) ([]*entity.TurnRecord, error) {
	if a == nil || a.coll == nil {
		return nil, errors.New("mongodb turn collection is nil")
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "turn", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := a.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*entity.TurnRecord, 0, limit)
	for cur.Next(ctx) {
		var doc model.TurnRecordDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, model.TurnRecordFromDoc(doc))
	}
	return out, cur.Err()
}
