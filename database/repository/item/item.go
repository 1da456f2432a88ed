package itemRepo

import (
	"context"
	"fmt"
	"time"

	"tripdesk/database"
	"tripdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ItemRepository defines persistence operations for billable items.
type ItemRepository interface {
	Create(item *models.Item) error
	Update(item *models.Item) error
	Delete(id string) error
	GetByID(id string) (*models.Item, error)
	GetAll() ([]models.Item, error)
}

// MongoItemRepo implements ItemRepository using MongoDB.
type MongoItemRepo struct {
	coll *mongo.Collection
}

// NewMongoItemRepo creates a new instance of ItemRepository using MongoDB.
func NewMongoItemRepo() ItemRepository {
	coll := database.MongoClient.Database("tripdesk").Collection("items")
	repo := &MongoItemRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoItemRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new item document.
func (r *MongoItemRepo) Create(item *models.Item) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update modifies an existing item document.
func (r *MongoItemRepo) Update(item *models.Item) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	item.UpdatedAt = time.Now()
	filter := bson.M{"id": item.ID}
	update := bson.M{"$set": item}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update item with id %s: %w", item.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("item with id %s not found", item.ID)
	}
	return nil
}

// Delete removes an item document by its ID.
func (r *MongoItemRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete item with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("item with id %s not found", id)
	}
	return nil
}

// GetByID retrieves an item by its unique ID.
func (r *MongoItemRepo) GetByID(id string) (*models.Item, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var item models.Item
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&item); err != nil {
		return nil, fmt.Errorf("failed to fetch item with id %s: %w", id, err)
	}
	return &item, nil
}

// GetAll retrieves all items.
func (r *MongoItemRepo) GetAll() ([]models.Item, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []models.Item
	for cursor.Next(ctx) {
		var it models.Item
		if err := cursor.Decode(&it); err != nil {
			return nil, fmt.Errorf("failed to decode item: %w", err)
		}
		items = append(items, it)
	}
	return items, nil
}
