package querylog

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists query records in MongoDB.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// DefaultMongoConfig returns the default MongoDB configuration.
func DefaultMongoConfig() *MongoConfig {
	return &MongoConfig{
		URI:        "mongodb://localhost:27017",
		Database:   "krishisetu",
		Collection: "query_log",
	}
}

type mongoRecord struct {
	ID         string    `bson:"_id"`
	Query      string    `bson:"query"`
	Language   string    `bson:"language"`
	QueryType  string    `bson:"query_type"`
	Location   string    `bson:"location"`
	Crop       string    `bson:"crop"`
	Mode       string    `bson:"mode"`
	Source     string    `bson:"source"`
	Confidence float64   `bson:"confidence"`
	Success    bool      `bson:"success"`
	CreatedAt  time.Time `bson:"created_at"`
}

// NewMongoStore connects to MongoDB.
func NewMongoStore(config *MongoConfig) (*MongoStore, error) {
	if config == nil {
		config = DefaultMongoConfig()
	}
	if config.Collection == "" {
		config.Collection = "query_log"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, fmt.Errorf("querylog: connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("querylog: ping mongodb: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(config.Database).Collection(config.Collection),
	}, nil
}

// Append writes one record.
func (s *MongoStore) Append(ctx context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("querylog: record cannot be nil")
	}
	if rec.ID == "" {
		rec.ID = newID()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = nowUTC()
	}

	_, err := s.collection.InsertOne(ctx, mongoRecord{
		ID:         rec.ID,
		Query:      rec.Query,
		Language:   rec.Language,
		QueryType:  rec.QueryType,
		Location:   rec.Location,
		Crop:       rec.Crop,
		Mode:       rec.Mode,
		Source:     rec.Source,
		Confidence: rec.Confidence,
		Success:    rec.Success,
		CreatedAt:  rec.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("querylog: insert record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *MongoStore) Recent(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("querylog: query records: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*Record
	for cursor.Next(ctx) {
		var mr mongoRecord
		if err := cursor.Decode(&mr); err != nil {
			return nil, fmt.Errorf("querylog: decode record: %w", err)
		}
		out = append(out, &Record{
			ID:         mr.ID,
			Query:      mr.Query,
			Language:   mr.Language,
			QueryType:  mr.QueryType,
			Location:   mr.Location,
			Crop:       mr.Crop,
			Mode:       mr.Mode,
			Source:     mr.Source,
			Confidence: mr.Confidence,
			Success:    mr.Success,
			CreatedAt:  mr.CreatedAt,
		})
	}
	return out, cursor.Err()
}

// Close disconnects the MongoDB client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
