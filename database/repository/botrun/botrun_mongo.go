package botrunRepo

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

// MongoBotRunRepo implements BotRunRepository using MongoDB.
type MongoBotRunRepo struct {
	coll *mongo.Collection
}

// NewMongoBotRunRepo creates a new instance of BotRunRepository using MongoDB.
func NewMongoBotRunRepo() BotRunRepository {
	coll := database.MongoClient.Database("coccigo").Collection("bot_runs")
	repo := &MongoBotRunRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBotRunRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "request_id", Value: 1}}},
		{Keys: bson.D{{Key: "started_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create appends a new run record.
func (r *MongoBotRunRepo) Create(run *models.BotRun) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, run); err != nil {
		return fmt.Errorf("failed to create bot run: %w", err)
	}
	return nil
}

// GetByID retrieves a run by its unique ID.
func (r *MongoBotRunRepo) GetByID(id string) (*models.BotRun, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var run models.BotRun
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&run); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch bot run with id %s: %w", id, err)
	}
	return &run, nil
}

// GetByRequestID retrieves the run that served a request.
func (r *MongoBotRunRepo) GetByRequestID(requestID string) (*models.BotRun, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var run models.BotRun
	if err := r.coll.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&run); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch bot run for request %s: %w", requestID, err)
	}
	return &run, nil
}

// Finish records the terminal state and timestamp of a run.
func (r *MongoBotRunRepo) Finish(id, status, errMsg string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"status": status, "finished_at": time.Now()}
	if errMsg != "" {
		set["error"] = errMsg
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to finish bot run with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("bot run with id %s not found", id)
	}
	return nil
}

// ListRecent returns the newest runs, capped at limit.
func (r *MongoBotRunRepo) ListRecent(limit int64) ([]models.BotRun, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "started_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bot runs: %w", err)
	}
	defer cursor.Close(ctx)

	var runs []models.BotRun
	if err := cursor.All(ctx, &runs); err != nil {
		return nil, fmt.Errorf("failed to decode bot runs: %w", err)
	}
	return runs, nil
}
