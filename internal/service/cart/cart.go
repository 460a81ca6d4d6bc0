// internal/service/cart/cart.go
package cart

import (
	"context"
	"database/sql"
	"fmt"

	"cncquote-service/internal/domain/cart"
	"cncquote-service/internal/domain/file"
	"cncquote-service/internal/domain/part"
	xerrors "cncquote-service/internal/pkg/errors"

	"go.uber.org/zap"
)

// Store dependencies, narrowed to what the cart flow touches.
type partStore interface {
	Create(ctx context.Context, p *part.PartDetails) error
	FindByID(ctx context.Context, id int64) (*part.PartDetails, error)
	SetSourceID(ctx context.Context, id, sourceID int64) error
	Delete(ctx context.Context, id int64) error
}

type cartStore interface {
	Create(ctx context.Context, item *cart.CartItem) error
	FindByID(ctx context.Context, id, userID int64) (*cart.CartItem, error)
	ListByUser(ctx context.Context, userID int64) ([]cart.CartItem, error)
	Delete(ctx context.Context, id, userID int64) error
}

type fileStore interface {
	FindByID(ctx context.Context, id int64) (*file.File, error)
	UpdateProductModelAccessID(ctx context.Context, id int64, accessID string) error
}

type CartService struct {
	partRepo partStore
	cartRepo cartStore
	fileRepo fileStore
	logger   *zap.Logger
}

func NewCartService(partRepo partStore, cartRepo cartStore, fileRepo fileStore, logger *zap.Logger) *CartService {
	return &CartService{
		partRepo: partRepo,
		cartRepo: cartRepo,
		fileRepo: fileRepo,
		logger:   logger,
	}
}

// AddToCart writes one cart row per configured part. Each part details
// row is created first, then its cart item, then the part is pointed
// back at the cart item through source_id.
func (s *CartService) AddToCart(ctx context.Context, userID int64, items []part.PartItemRequest) error {
	for i := range items {
		if err := s.addOne(ctx, userID, &items[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *CartService) addOne(ctx context.Context, userID int64, req *part.PartItemRequest) error {
	rec, err := s.fileRepo.FindByID(ctx, req.UploadHistoryID)
	if err != nil {
		return fmt.Errorf("upload record %d: %w", req.UploadHistoryID, err)
	}

	if req.ProductModelAccessID != "" {
		if err := s.fileRepo.UpdateProductModelAccessID(ctx, rec.ID, req.ProductModelAccessID); err != nil {
			return fmt.Errorf("failed to update model access id: %w", err)
		}
	}

	p := part.FromRequest(req, part.RecordTypeCart)
	if err := s.partRepo.Create(ctx, p); err != nil {
		return fmt.Errorf("failed to create part details: %w", err)
	}

	item := &cart.CartItem{
		UserID:        userID,
		PartDetailsID: p.ID,
		Quantity:      p.Quantity,
		ExpectedDeliveryDate: sql.NullString{
			String: req.EstimatedDeliveryTime,
			Valid:  req.EstimatedDeliveryTime != "",
		},
	}
	if err := s.cartRepo.Create(ctx, item); err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}

	if err := s.partRepo.SetSourceID(ctx, p.ID, item.ID); err != nil {
		return fmt.Errorf("failed to link part details to cart item: %w", err)
	}

	s.logger.Info("item added to cart",
		zap.Int64("user_id", userID),
		zap.Int64("cart_item_id", item.ID),
		zap.Int64("part_details_id", p.ID),
	)
	return nil
}

// GetCart returns the joined cart view. A cart row whose part details
// cannot be loaded is skipped; a missing file record only blanks that
// field.
func (s *CartService) GetCart(ctx context.Context, userID int64) ([]cart.Entry, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]cart.Entry, 0, len(items))
	for _, item := range items {
		p, err := s.partRepo.FindByID(ctx, item.PartDetailsID)
		if err != nil {
			s.logger.Warn("cart item missing part details",
				zap.Int64("cart_item_id", item.ID),
				zap.Error(err),
			)
			continue
		}

		entry := cart.Entry{Cart: item, PartDetails: p}
		if f, err := s.fileRepo.FindByID(ctx, p.FileID); err == nil {
			entry.FileInfo = f
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DeleteItem removes a cart row and its part details. The part details
// row must not outlive the cart item that owns it.
func (s *CartService) DeleteItem(ctx context.Context, id, userID int64) error {
	item, err := s.cartRepo.FindByID(ctx, id, userID)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			return xerrors.ErrNotFound
		}
		return err
	}

	if err := s.cartRepo.Delete(ctx, id, userID); err != nil {
		return err
	}

	if err := s.partRepo.Delete(ctx, item.PartDetailsID); err != nil {
		s.logger.Warn("failed to delete part details for cart item",
			zap.Int64("cart_item_id", id),
			zap.Int64("part_details_id", item.PartDetailsID),
			zap.Error(err),
		)
	}
	return nil
}
