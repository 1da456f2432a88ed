package ticket

import (
	"context"
	"errors"
	"fmt"

	itemRepo "tripdesk/database/repository/item"
	ticketRepo "tripdesk/database/repository/ticket"
	"tripdesk/models"
	"tripdesk/services/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnknownItem is returned when a ticket request references an item that
// does not exist in the catalogue.
var ErrUnknownItem = errors.New("referenced item not found")

// TicketService manages ticket requests, their status history, and charges
// against the configured payment gateways.
type TicketService interface {
	CreateRequest(req models.TicketRequest) (*models.TicketRequest, error)
	UpdateRequest(req models.TicketRequest) (*models.TicketRequest, error)
	DeleteRequest(id string) error
	GetRequestByID(id string) (*models.TicketRequest, error)
	GetAllRequests() ([]models.TicketRequest, error)
	GetRequestsByConsultant(consultantID string) ([]models.TicketRequest, error)
	ListStatuses(requestID string) ([]models.TicketRequestStatus, error)
	Charge(ctx context.Context, requestID string, charge models.ChargeRequest) (*models.ChargeResult, error)
}

// DefaultTicketService is the production implementation.
type DefaultTicketService struct {
	Repo     ticketRepo.TicketRepository
	Items    itemRepo.ItemRepository
	Gateways map[string]payment.Gateway
	Logger   *zap.Logger
}

// CreateRequest validates the item reference, stores the request as pending,
// and writes the opening status history entry.
func (s *DefaultTicketService) CreateRequest(req models.TicketRequest) (*models.TicketRequest, error) {
	if req.ItemID != "" {
		if _, err := s.Items.GetByID(req.ItemID); err != nil {
			return nil, ErrUnknownItem
		}
	}

	req.ID = uuid.New().String()
	req.Status = models.TicketStatusPending
	if err := s.Repo.Create(&req); err != nil {
		return nil, err
	}

	s.appendStatus(req.ID, models.TicketStatusPending, "", "", "request created")
	return &req, nil
}

// UpdateRequest persists changes; a status change writes a history entry.
func (s *DefaultTicketService) UpdateRequest(req models.TicketRequest) (*models.TicketRequest, error) {
	current, err := s.Repo.GetByID(req.ID)
	if err != nil {
		return nil, err
	}
	req.ConsultantID = current.ConsultantID
	req.CreatedAt = current.CreatedAt

	if err := s.Repo.Update(&req); err != nil {
		return nil, err
	}
	if req.Status != current.Status {
		s.appendStatus(req.ID, req.Status, "", "", "status changed manually")
	}
	return &req, nil
}

// DeleteRequest removes a ticket request. Its status history is kept for audit.
func (s *DefaultTicketService) DeleteRequest(id string) error {
	return s.Repo.Delete(id)
}

// GetRequestByID fetches one request.
func (s *DefaultTicketService) GetRequestByID(id string) (*models.TicketRequest, error) {
	return s.Repo.GetByID(id)
}

// GetAllRequests lists every ticket request, newest first.
func (s *DefaultTicketService) GetAllRequests() ([]models.TicketRequest, error) {
	return s.Repo.GetAll()
}

// GetRequestsByConsultant lists one consultant's requests, newest first.
func (s *DefaultTicketService) GetRequestsByConsultant(consultantID string) ([]models.TicketRequest, error) {
	return s.Repo.GetByConsultant(consultantID)
}

// ListStatuses returns a request's status history, newest first.
func (s *DefaultTicketService) ListStatuses(requestID string) ([]models.TicketRequestStatus, error) {
	return s.Repo.ListStatuses(requestID)
}

// Charge runs one single-shot charge through the named gateway, records the
// outcome in the status history, and moves the request's current status.
// Gateway transport failures are recorded as failed attempts too.
func (s *DefaultTicketService) Charge(ctx context.Context, requestID string, charge models.ChargeRequest) (*models.ChargeResult, error) {
	req, err := s.Repo.GetByID(requestID)
	if err != nil {
		return nil, err
	}

	gateway, ok := s.Gateways[charge.Gateway]
	if !ok {
		return nil, payment.ErrUnsupportedGateway
	}

	charge.RequestID = req.ID
	if charge.Amount == 0 {
		charge.Amount = req.Amount
	}
	if charge.Currency == "" {
		charge.Currency = req.Currency
	}
	if charge.Description == "" {
		charge.Description = fmt.Sprintf("Ticket request %s for %s", req.ID, req.CustomerName)
	}

	result, err := gateway.Charge(ctx, charge)
	if err != nil {
		s.Logger.Error("charge attempt failed",
			zap.String("requestId", req.ID),
			zap.String("gateway", charge.Gateway),
			zap.Error(err))
		s.appendStatus(req.ID, models.TicketStatusFailed, charge.Gateway, "", err.Error())
		s.setStatus(req, models.TicketStatusFailed)
		return nil, err
	}

	s.appendStatus(req.ID, result.Status, charge.Gateway, result.TransactionID, result.Message)
	s.setStatus(req, result.Status)

	s.Logger.Info("charge processed",
		zap.String("requestId", req.ID),
		zap.String("gateway", charge.Gateway),
		zap.String("status", result.Status))
	return result, nil
}

func (s *DefaultTicketService) setStatus(req *models.TicketRequest, status string) {
	req.Status = status
	if err := s.Repo.Update(req); err != nil {
		s.Logger.Error("failed to update request status",
			zap.String("requestId", req.ID),
			zap.Error(err))
	}
}

func (s *DefaultTicketService) appendStatus(requestID, status, gateway, transactionID, message string) {
	entry := &models.TicketRequestStatus{
		ID:            uuid.New().String(),
		RequestID:     requestID,
		Status:        status,
		Gateway:       gateway,
		TransactionID: transactionID,
		Message:       message,
	}
	if err := s.Repo.AppendStatus(entry); err != nil {
		s.Logger.Error("failed to append status history entry",
			zap.String("requestId", requestID),
			zap.Error(err))
	}
}
