package sink

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/archmodel/pkg/errors"
	"github.com/matzehuels/archmodel/pkg/export"
)

// MongoCollection is the subset of *mongo.Collection used by [MongoSink].
type MongoCollection interface {
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
}

// mongoRecord is the stored shape of one workspace.
type mongoRecord struct {
	ID        string           `bson:"_id"`
	Workspace *export.Document `bson:"workspace"`
	Digest    string           `bson:"digest"`
	UpdatedAt time.Time        `bson:"updatedAt"`
}

// MongoSink upserts one record per workspace id.
type MongoSink struct {
	coll MongoCollection
	now  func() time.Time
}

// NewMongoSink returns a sink writing to coll.
func NewMongoSink(coll MongoCollection) *MongoSink {
	return &MongoSink{coll: coll, now: time.Now}
}

// ConnectMongo dials uri and returns a sink for database.collection together
// with a function that disconnects the client.
func ConnectMongo(ctx context.Context, uri, database, collection string) (*MongoSink, func(context.Context) error, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, storeError(ctx, err, "connect to mongo")
	}
	return NewMongoSink(client.Database(database).Collection(collection)), client.Disconnect, nil
}

func (s *MongoSink) Name() string { return "mongo" }

func (s *MongoSink) Put(ctx context.Context, workspaceID string, _ export.Credentials, doc *export.Document) error {
	data, err := export.Marshal(doc)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSink, err, "encode workspace")
	}
	rec := mongoRecord{
		ID:        workspaceID,
		Workspace: doc,
		Digest:    export.Digest(data),
		UpdatedAt: s.now().UTC(),
	}

	filter := bson.D{{Key: "_id", Value: workspaceID}}
	_, err = s.coll.ReplaceOne(ctx, filter, rec, options.Replace().SetUpsert(true))
	switch {
	case err == nil:
		return nil
	case mongo.IsTimeout(err):
		return errors.Wrap(errors.ErrCodeTimeout, err, "mongo upsert %s", workspaceID)
	case mongo.IsNetworkError(err):
		return errors.Wrap(errors.ErrCodeNetwork, err, "mongo upsert %s", workspaceID)
	}
	return storeError(ctx, err, "mongo upsert %s", workspaceID)
}
