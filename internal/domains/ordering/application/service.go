package application

import (
	"context"

	"github.com/Apurer/go-gin-order-server/internal/domains/ordering/domain"
	"github.com/Apurer/go-gin-order-server/internal/domains/ordering/ports"
)

// Service orchestrates ordering use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// AddProductToOrder reserves stock and records the order item atomically.
// Domain errors (not found, not available) propagate untouched so the
// boundary layer can translate them into status codes.
func (s *Service) AddProductToOrder(ctx context.Context, orderID, productID int64, quantity int32) error {
	reservation, err := domain.NewReservation(orderID, productID, quantity)
	if err != nil {
		return mapError(err)
	}
	return s.repo.AddProductToOrder(ctx, reservation)
}

func (s *Service) CreateClient(ctx context.Context, client *domain.Client) (int64, error) {
	if err := client.Validate(); err != nil {
		return 0, mapError(err)
	}
	return s.repo.CreateClient(ctx, client)
}

// CreateOrder opens an empty order for an existing client. Items are added
// through AddProductToOrder; an order never comes into existence implicitly.
func (s *Service) CreateOrder(ctx context.Context, clientID int64) (*domain.Order, error) {
	if clientID <= 0 {
		return nil, mapError(domain.ErrInvalidClientID)
	}
	return s.repo.CreateOrder(ctx, clientID)
}

func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, mapError(domain.ErrInvalidOrderID)
	}
	return s.repo.GetOrder(ctx, id)
}

var _ ports.Service = (*Service)(nil)
