// internal/service/order/order.go
package order

import (
	"context"
	"database/sql"
	"fmt"

	"cncquote-service/internal/domain/order"
	"cncquote-service/internal/domain/part"
	"cncquote-service/internal/repository/postgres"
	"cncquote-service/internal/service/cnc"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

var validStatuses = map[string]bool{
	order.StatusPendingReview: true,
	order.StatusConfirmed:     true,
	order.StatusInProduction:  true,
	order.StatusShipped:       true,
	order.StatusCompleted:     true,
	order.StatusCancelled:     true,
}

type OrderService struct {
	orderRepo *postgres.OrderRepository
	partRepo  *postgres.PartDetailsRepository
	cncClient *cnc.Client
	logger    *zap.Logger
}

func NewOrderService(orderRepo *postgres.OrderRepository, partRepo *postgres.PartDetailsRepository, cncClient *cnc.Client, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		partRepo:  partRepo,
		cncClient: cncClient,
		logger:    logger,
	}
}

// Quote forwards the storefront's valuation payload to the manufacturing
// platform and returns the per-part quote infos.
func (s *OrderService) Quote(ctx context.Context, payload any) ([]map[string]any, error) {
	quotes, err := s.cncClient.Valuation(ctx, payload)
	if err != nil {
		s.logger.Warn("valuation request failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("valuation quotes received", zap.Int("count", len(quotes)))
	return quotes, nil
}

// Create places an order for an already-configured part. The part details
// row is reassigned from cart to order ownership.
func (s *OrderService) Create(ctx context.Context, userID int64, req *order.CreateOrderRequest) (*order.Order, error) {
	p, err := s.partRepo.FindByID(ctx, req.PartDetailsID)
	if err != nil {
		return nil, fmt.Errorf("part details %d: %w", req.PartDetailsID, err)
	}

	o := &order.Order{
		UserID:        userID,
		OrderNumber:   ulid.Make().String(),
		OrderCode:     sql.NullString{String: req.OrderCode, Valid: req.OrderCode != ""},
		PartDetailsID: p.ID,
		Status:        order.StatusPendingReview,
	}

	if err := s.orderRepo.Create(ctx, o); err != nil {
		s.logger.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	if err := s.partRepo.SetRecordType(ctx, p.ID, part.RecordTypeOrder, o.ID); err != nil {
		s.logger.Warn("failed to reassign part details to order",
			zap.Int64("order_id", o.ID),
			zap.Int64("part_details_id", p.ID),
			zap.Error(err),
		)
	}

	s.logger.Info("order created",
		zap.Int64("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.Int64("user_id", userID),
	)
	return o, nil
}

// Get returns one order scoped to its owner.
func (s *OrderService) Get(ctx context.Context, id, userID int64) (*order.Order, error) {
	return s.orderRepo.FindByID(ctx, id, userID)
}

// List returns a page of the user's orders.
func (s *OrderService) List(ctx context.Context, userID int64, filters *order.ListFilters) ([]order.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID, filters.Limit, filters.Offset)
}

// UpdateStatus transitions an order. Only known statuses are accepted.
func (s *OrderService) UpdateStatus(ctx context.Context, id, userID int64, status string) error {
	if !validStatuses[status] {
		return fmt.Errorf("invalid order status: %s", status)
	}

	o, err := s.orderRepo.FindByID(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.orderRepo.UpdateStatus(ctx, o.ID, status)
}
