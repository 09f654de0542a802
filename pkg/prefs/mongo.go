package prefs

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/recipecost/pkg/errors"
)

// Collection and document names used by MongoStore.
const (
	MongoCollection = "preferences"
	mongoThemeID    = "theme"
)

type mongoDoc struct {
	ID    string `bson:"_id"`
	Value string `bson:"value"`
}

// MongoStore keeps the theme as a single document, upserted by _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(MongoCollection),
	}, nil
}

func (s *MongoStore) Theme(ctx context.Context) (Theme, error) {
	var doc mongoDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": mongoThemeID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return DefaultTheme, nil
	}
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNetwork, err, "find theme")
	}
	return orDefault(doc.Value), nil
}

func (s *MongoStore) SetTheme(ctx context.Context, t Theme) error {
	if err := validate(t); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": mongoThemeID},
		mongoDoc{ID: mongoThemeID, Value: string(t)},
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "upsert theme")
	}
	return nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	return nil
}

var _ Store = (*MongoStore)(nil)
