package requestRepo

import (
	"context"
	"fmt"
	"time"

	"coccigo/database"
	"coccigo/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRequestRepo implements RequestRepository using MongoDB.
type MongoRequestRepo struct {
	coll *mongo.Collection
}

// NewMongoRequestRepo creates a new instance of RequestRepository using MongoDB.
func NewMongoRequestRepo() RequestRepository {
	coll := database.MongoClient.Database("coccigo").Collection("requests")
	repo := &MongoRequestRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRequestRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new request document.
func (r *MongoRequestRepo) Create(req *models.Request) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

// GetByID retrieves a request by its unique ID.
func (r *MongoRequestRepo) GetByID(id string) (*models.Request, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.Request
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch request with id %s: %w", id, err)
	}
	return &req, nil
}

// SetStatus moves a request to the given lifecycle state.
func (r *MongoRequestRepo) SetStatus(id, status string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update request with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("request with id %s not found", id)
	}
	return nil
}
