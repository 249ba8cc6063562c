package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/gdlkit/pkg/cache"
	"github.com/matzehuels/gdlkit/pkg/errors"
)

// Default MongoDB names.
const (
	DefaultDatabase   = "gdlkit"
	DefaultCollection = "documents"
)

// MongoStore stores records in a MongoDB collection with a unique index on
// the document hash.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and prepares the collection. Empty database
// or collection names use the defaults.
func NewMongoStore(ctx context.Context, uri, database, collection string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	if collection == "" {
		collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetConnectTimeout(5*time.Second))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongodb")
	}

	err = cache.DefaultBackoff.Do(ctx, func() error {
		if err := client.Ping(ctx, nil); err != nil {
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb")
	}

	s := &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
	_, err = s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "hash", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create hash index")
	}
	return s, nil
}

func (s *MongoStore) Save(ctx context.Context, rec *Record) error {
	if found, err := s.findByHash(ctx, rec); found || err != nil {
		return err
	}

	_, err := s.coll.InsertOne(ctx, rec)
	if mongo.IsDuplicateKeyError(err) {
		// Lost a race with a concurrent save of the same text.
		_, err = s.findByHash(ctx, rec)
		return err
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "insert document")
	}
	return nil
}

// findByHash overwrites rec with the stored record of the same hash, if any.
func (s *MongoStore) findByHash(ctx context.Context, rec *Record) (bool, error) {
	var existing Record
	err := s.coll.FindOne(ctx, bson.M{"hash": rec.Hash}).Decode(&existing)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeStorage, err, "find document by hash")
	}
	*rec = existing
	return true, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "get document %s", id)
	}
	return &rec, nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]*Record, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"gdl": 0})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list documents")
	}
	recs := []*Record{}
	if err := cur.All(ctx, &recs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode documents")
	}
	return recs, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
