package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the fixed collection holding one document per carnival.
const Collection = "carnivalEvents"

// MongoConfig carries the connection settings for the document store.
type MongoConfig struct {
	Host       string `yaml:"host"`
	DBName     string `yaml:"dbname"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	AuthSource string `yaml:"authSource"`
}

// Mongo is the MongoDB-backed Store.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongo connects to MongoDB and verifies the connection. A store that
// cannot be reached is a configuration failure and aborts the run before
// any fetching begins.
func NewMongo(ctx context.Context, cfg MongoConfig) (*Mongo, error) {
	clientOpts := options.Client().ApplyURI("mongodb://" + cfg.Host)
	if cfg.Username != "" {
		clientOpts = clientOpts.SetAuth(options.Credential{
			Username:   cfg.Username,
			Password:   cfg.Password,
			AuthSource: cfg.AuthSource,
		})
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	return &Mongo{
		client: client,
		coll:   client.Database(cfg.DBName).Collection(Collection),
	}, nil
}

// UpsertCarnival implements Store. The $set update mirrors a merge write:
// fields outside the aggregate shape survive, while the events array is
// replaced for this region only.
func (m *Mongo) UpsertCarnival(ctx context.Context, doc CarnivalDoc) error {
	_, err := m.coll.UpdateOne(ctx,
		bson.M{"_id": doc.CarnivalID},
		bson.M{"$set": bson.M{
			"carnivalId":    doc.CarnivalID,
			"lastScrapedAt": doc.LastScrapedAt,
			"eventCount":    doc.EventCount,
			"events":        doc.Events,
			"sources":       doc.Sources,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upserting carnival %s: %w", doc.CarnivalID, err)
	}
	return nil
}

// AllCarnivals implements Store.
func (m *Mongo) AllCarnivals(ctx context.Context) ([]CarnivalDoc, error) {
	cursor, err := m.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listing carnivals: %w", err)
	}
	var docs []CarnivalDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decoding carnivals: %w", err)
	}
	return docs, nil
}

// Close disconnects from MongoDB.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
