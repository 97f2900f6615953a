package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	schemesusecase "fund_backend/internal/feature/schemes/usecase"
	screenerusecase "fund_backend/internal/feature/screener/usecase"
)

// collection is the subset of *mongo.Collection used by the store.
type collection interface {
	InsertOne(ctx context.Context, document any, opts ...options.Lister[options.InsertOneOptions]) (*mongo.InsertOneResult, error)
	InsertMany(ctx context.Context, documents any, opts ...options.Lister[options.InsertManyOptions]) (*mongo.InsertManyResult, error)
	UpdateOne(ctx context.Context, filter any, update any, opts ...options.Lister[options.UpdateOneOptions]) (*mongo.UpdateResult, error)
}

type documentMongo struct {
	coll func(name string) collection
}

var (
	_ schemesusecase.DocumentStore  = (*documentMongo)(nil)
	_ screenerusecase.DocumentStore = (*documentMongo)(nil)
)

// NewDocumentStore returns a store writing to the collections of database.
func NewDocumentStore(client *mongo.Client, database string) *documentMongo {
	db := client.Database(database)
	return &documentMongo{coll: func(name string) collection { return db.Collection(name) }}
}

func (s *documentMongo) InsertOne(ctx context.Context, coll string, doc map[string]any) (string, error) {
	res, err := s.coll(coll).InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", err
	}
	return idString(res.InsertedID), nil
}

func (s *documentMongo) InsertMany(ctx context.Context, coll string, docs []map[string]any) ([]string, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	ms := make([]bson.M, 0, len(docs))
	for _, d := range docs {
		ms = append(ms, bson.M(d))
	}
	res, err := s.coll(coll).InsertMany(ctx, ms)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.InsertedIDs))
	for _, id := range res.InsertedIDs {
		ids = append(ids, idString(id))
	}
	return ids, nil
}

// Upsert replaces the fields of the document whose keyField equals keyValue,
// inserting it when none exists.
func (s *documentMongo) Upsert(ctx context.Context, coll, keyField, keyValue string, doc map[string]any) error {
	_, err := s.coll(coll).UpdateOne(ctx,
		bson.M{keyField: keyValue},
		bson.M{"$set": bson.M(doc)},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func idString(id any) string {
	switch v := id.(type) {
	case bson.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
