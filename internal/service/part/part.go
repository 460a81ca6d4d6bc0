// internal/service/part/part.go
package part

import (
	"context"
	"database/sql"
	"fmt"

	"cncquote-service/internal/domain/part"
	"cncquote-service/internal/repository/postgres"

	"go.uber.org/zap"
)

type PartService struct {
	partRepo *postgres.PartDetailsRepository
	logger   *zap.Logger
}

func NewPartService(partRepo *postgres.PartDetailsRepository, logger *zap.Logger) *PartService {
	return &PartService{
		partRepo: partRepo,
		logger:   logger,
	}
}

// Create stores a standalone part details row from a storefront payload.
func (s *PartService) Create(ctx context.Context, req *part.PartItemRequest, recordType string) (*part.PartDetails, error) {
	p := part.FromRequest(req, recordType)
	if err := s.partRepo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create part details", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// Get returns one part details row.
func (s *PartService) Get(ctx context.Context, id int64) (*part.PartDetails, error) {
	return s.partRepo.FindByID(ctx, id)
}

// ListByFile returns every configuration derived from one uploaded model.
func (s *PartService) ListByFile(ctx context.Context, fileID int64) ([]part.PartDetails, error) {
	return s.partRepo.ListByFile(ctx, fileID)
}

// Update applies the mutable fields of a part configuration.
func (s *PartService) Update(ctx context.Context, id int64, req *part.UpdatePartDetailsRequest) (*part.PartDetails, error) {
	p, err := s.partRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Quantity != nil {
		p.Quantity = *req.Quantity
	}
	if req.Material != nil {
		p.Material = sql.NullString{String: *req.Material, Valid: *req.Material != ""}
	}
	if req.Tolerance != nil {
		p.Tolerance = sql.NullString{String: *req.Tolerance, Valid: *req.Tolerance != ""}
	}
	if req.Roughness != nil {
		p.Roughness = sql.NullString{String: *req.Roughness, Valid: *req.Roughness != ""}
	}
	if req.UnitPrice != nil {
		p.UnitPrice = sql.NullFloat64{Float64: *req.UnitPrice, Valid: true}
	}
	if req.TotalPrice != nil {
		p.TotalPrice = sql.NullFloat64{Float64: *req.TotalPrice, Valid: true}
	}

	if err := s.partRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to update part details: %w", err)
	}
	return p, nil
}

// Delete removes a part details row.
func (s *PartService) Delete(ctx context.Context, id int64) error {
	return s.partRepo.Delete(ctx, id)
}
