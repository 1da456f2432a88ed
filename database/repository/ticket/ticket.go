package ticketRepo

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

// TicketRepository defines persistence operations for ticket requests and
// their append-only status history.
type TicketRepository interface {
	Create(req *models.TicketRequest) error
	Update(req *models.TicketRequest) error
	Delete(id string) error
	GetByID(id string) (*models.TicketRequest, error)
	GetAll() ([]models.TicketRequest, error)
	GetByConsultant(consultantID string) ([]models.TicketRequest, error)

	AppendStatus(status *models.TicketRequestStatus) error
	ListStatuses(requestID string) ([]models.TicketRequestStatus, error)
}

// MongoTicketRepo implements TicketRepository using MongoDB.
type MongoTicketRepo struct {
	requests *mongo.Collection
	statuses *mongo.Collection
}

// NewMongoTicketRepo creates a new instance of TicketRepository using MongoDB.
func NewMongoTicketRepo() TicketRepository {
	db := database.MongoClient.Database("tripdesk")
	repo := &MongoTicketRepo{
		requests: db.Collection("ticket_requests"),
		statuses: db.Collection("ticket_request_statuses"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoTicketRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	reqIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "consultantId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := r.requests.Indexes().CreateMany(ctx, reqIndexes); err != nil {
		return fmt.Errorf("failed to create request indexes: %w", err)
	}

	statusIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "requestId", Value: 1}, {Key: "createdAt", Value: -1}}},
	}
	if _, err := r.statuses.Indexes().CreateMany(ctx, statusIndexes); err != nil {
		return fmt.Errorf("failed to create status indexes: %w", err)
	}
	return nil
}

// Create inserts a new ticket request document.
func (r *MongoTicketRepo) Create(req *models.TicketRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	_, err := r.requests.InsertOne(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to create ticket request: %w", err)
	}
	return nil
}

// Update modifies an existing ticket request document.
func (r *MongoTicketRepo) Update(req *models.TicketRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	req.UpdatedAt = time.Now()
	filter := bson.M{"id": req.ID}
	update := bson.M{"$set": req}

	result, err := r.requests.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update ticket request with id %s: %w", req.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("ticket request with id %s not found", req.ID)
	}
	return nil
}

// Delete removes a ticket request document by its ID.
func (r *MongoTicketRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.requests.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete ticket request with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("ticket request with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a ticket request by its unique ID.
func (r *MongoTicketRepo) GetByID(id string) (*models.TicketRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.TicketRequest
	if err := r.requests.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		return nil, fmt.Errorf("failed to fetch ticket request with id %s: %w", id, err)
	}
	return &req, nil
}

// GetAll retrieves all ticket requests, newest first.
func (r *MongoTicketRepo) GetAll() ([]models.TicketRequest, error) {
	return r.find(bson.M{})
}

// GetByConsultant retrieves all ticket requests submitted by one consultant,
// newest first.
func (r *MongoTicketRepo) GetByConsultant(consultantID string) ([]models.TicketRequest, error) {
	return r.find(bson.M{"consultantId": consultantID})
}

func (r *MongoTicketRepo) find(filter bson.M) ([]models.TicketRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.requests.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve ticket requests: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []models.TicketRequest
	for cursor.Next(ctx) {
		var req models.TicketRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode ticket request: %w", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// AppendStatus inserts one audit entry into the status history.
func (r *MongoTicketRepo) AppendStatus(status *models.TicketRequestStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	status.CreatedAt = time.Now()

	_, err := r.statuses.InsertOne(ctx, status)
	if err != nil {
		return fmt.Errorf("failed to append ticket request status: %w", err)
	}
	return nil
}

// ListStatuses returns the status history of one request, newest first.
func (r *MongoTicketRepo) ListStatuses(requestID string) ([]models.TicketRequestStatus, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.statuses.Find(ctx, bson.M{"requestId": requestID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve statuses for request %s: %w", requestID, err)
	}
	defer cursor.Close(ctx)

	var statuses []models.TicketRequestStatus
	for cursor.Next(ctx) {
		var st models.TicketRequestStatus
		if err := cursor.Decode(&st); err != nil {
			return nil, fmt.Errorf("failed to decode ticket request status: %w", err)
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}
