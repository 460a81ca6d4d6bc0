// internal/service/address/address.go
package address

import (
	"context"

	"cncquote-service/internal/domain/address"

	"go.uber.org/zap"
)

// Store dependency, narrowed to the primitives the default-address
// bookkeeping needs.
type addressStore interface {
	Create(ctx context.Context, a *address.Address) error
	ListByUser(ctx context.Context, userID int64) ([]address.Address, error)
	FindDefault(ctx context.Context, userID int64) (*address.Address, error)
	ClearDefault(ctx context.Context, userID int64) error
	MarkDefault(ctx context.Context, id, userID int64) error
	Delete(ctx context.Context, id, userID int64) error
}

// AddressService owns the at-most-one-default invariant: every path that
// flags an address as default unsets the previous one first. Clearing
// before setting means a partial failure can leave the user with no
// default, never with two.
type AddressService struct {
	addressRepo addressStore
	logger      *zap.Logger
}

func NewAddressService(addressRepo addressStore, logger *zap.Logger) *AddressService {
	return &AddressService{
		addressRepo: addressRepo,
		logger:      logger,
	}
}

// Create stores a shipping address. When marked default, the previously
// default address loses the flag.
func (s *AddressService) Create(ctx context.Context, userID int64, req *address.CreateAddressRequest) (*address.Address, error) {
	if req.IsDefault {
		if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
			return nil, err
		}
	}

	a := &address.Address{
		UserID:         userID,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		AddressDetail:  req.AddressDetail,
		ShippingMethod: req.ShippingMethod,
		CountryCode:    req.CountryCode,
		Province:       req.Province,
		City:           req.City,
		PostName:       req.PostName,
		PostalCode:     req.PostalCode,
		IsDefault:      req.IsDefault,
	}

	if err := s.addressRepo.Create(ctx, a); err != nil {
		s.logger.Error("failed to create address", zap.Error(err))
		return nil, err
	}
	return a, nil
}

// List returns the user's addresses.
func (s *AddressService) List(ctx context.Context, userID int64) ([]address.Address, error) {
	return s.addressRepo.ListByUser(ctx, userID)
}

// Delete removes an address owned by the user.
func (s *AddressService) Delete(ctx context.Context, id, userID int64) error {
	return s.addressRepo.Delete(ctx, id, userID)
}

// SetDefault makes one address the default and unsets every other.
func (s *AddressService) SetDefault(ctx context.Context, id, userID int64) error {
	if err := s.addressRepo.ClearDefault(ctx, userID); err != nil {
		return err
	}
	return s.addressRepo.MarkDefault(ctx, id, userID)
}

// GetDefault returns the user's default address.
func (s *AddressService) GetDefault(ctx context.Context, userID int64) (*address.Address, error) {
	return s.addressRepo.FindDefault(ctx, userID)
}
