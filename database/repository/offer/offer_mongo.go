package offerRepo

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

// MongoOfferRepo implements OfferRepository using MongoDB.
type MongoOfferRepo struct {
	coll *mongo.Collection
}

// NewMongoOfferRepo creates a new instance of OfferRepository using MongoDB.
func NewMongoOfferRepo() OfferRepository {
	coll := database.MongoClient.Database("coccigo").Collection("offers")
	repo := &MongoOfferRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOfferRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "request_id", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// BulkCreate inserts a batch of offer documents. A zero-length batch is a
// no-op, not an error.
func (r *MongoOfferRepo) BulkCreate(offers []models.Offer) error {
	if len(offers) == 0 {
		return nil
	}

	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, 0, len(offers))
	for i := range offers {
		offers[i].CreatedAt = now
		offers[i].UpdatedAt = now
		docs = append(docs, offers[i])
	}

	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to create offers: %w", err)
	}
	return nil
}

// GetByID retrieves an offer by its unique ID.
func (r *MongoOfferRepo) GetByID(id string) (*models.Offer, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var offer models.Offer
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&offer); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch offer with id %s: %w", id, err)
	}
	return &offer, nil
}

// ListByUser returns the user's offers, newest first, capped at limit.
func (r *MongoOfferRepo) ListByUser(userID string, limit int64) ([]models.Offer, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve offers for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	var offers []models.Offer
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, fmt.Errorf("failed to decode offers: %w", err)
	}
	return offers, nil
}

// SetEstado unconditionally sets the offer state. Last write wins.
func (r *MongoOfferRepo) SetEstado(id, estado string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"estado": estado, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update offer with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("offer with id %s not found", id)
	}
	return nil
}
