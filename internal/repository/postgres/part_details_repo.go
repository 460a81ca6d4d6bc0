// internal/repository/postgres/part_details_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"cncquote-service/internal/domain/part"
	xerrors "cncquote-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const partDetailsColumns = `
	id, file_id, record_type, source_id,
	material_access_id, material, quantity,
	tolerance, tolerance_access_id, roughness, roughness_access_id,
	has_thread, has_assembly,
	length, width, height, surface_area, volume,
	surface_treatment,
	treatment1_option, treatment1_color, treatment1_gloss, treatment1_drawing,
	treatment2_option, treatment2_color, treatment2_gloss, treatment2_drawing,
	craft_access_id1, craft_color_access_ids1, craft_gloss_access_ids1, craft_file_access_ids1,
	craft_access_id2, craft_color_access_ids2, craft_gloss_access_ids2, craft_file_access_ids2,
	material_cost, engineering_cost, clamping_cost, processing_cost,
	expedited_price, surface_cost, unit_price, total_price, total_shipping_fee, tax_fee,
	created_at, updated_at`

type PartDetailsRepository struct {
	db *pgxpool.Pool
}

func NewPartDetailsRepository(db *pgxpool.Pool) *PartDetailsRepository {
	return &PartDetailsRepository{db: db}
}

func (r *PartDetailsRepository) Create(ctx context.Context, p *part.PartDetails) error {
	query := `
		INSERT INTO part_details (
			file_id, record_type, source_id,
			material_access_id, material, quantity,
			tolerance, tolerance_access_id, roughness, roughness_access_id,
			has_thread, has_assembly,
			length, width, height, surface_area, volume,
			surface_treatment,
			treatment1_option, treatment1_color, treatment1_gloss, treatment1_drawing,
			treatment2_option, treatment2_color, treatment2_gloss, treatment2_drawing,
			craft_access_id1, craft_color_access_ids1, craft_gloss_access_ids1, craft_file_access_ids1,
			craft_access_id2, craft_color_access_ids2, craft_gloss_access_ids2, craft_file_access_ids2,
			material_cost, engineering_cost, clamping_cost, processing_cost,
			expedited_price, surface_cost, unit_price, total_price, total_shipping_fee, tax_fee
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36, $37, $38, $39, $40,
			$41, $42, $43, $44
		)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.FileID, p.RecordType, p.SourceID,
		p.MaterialAccessID, p.Material, p.Quantity,
		p.Tolerance, p.ToleranceAccessID, p.Roughness, p.RoughnessAccessID,
		p.HasThread, p.HasAssembly,
		p.Length, p.Width, p.Height, p.SurfaceArea, p.Volume,
		p.SurfaceTreatment,
		p.Treatment1Option, p.Treatment1Color, p.Treatment1Gloss, p.Treatment1Drawing,
		p.Treatment2Option, p.Treatment2Color, p.Treatment2Gloss, p.Treatment2Drawing,
		p.CraftAccessID1, p.CraftColorAccessIDs1, p.CraftGlossAccessIDs1, p.CraftFileAccessIDs1,
		p.CraftAccessID2, p.CraftColorAccessIDs2, p.CraftGlossAccessIDs2, p.CraftFileAccessIDs2,
		p.MaterialCost, p.EngineeringCost, p.ClampingCost, p.ProcessingCost,
		p.ExpeditedPrice, p.SurfaceCost, p.UnitPrice, p.TotalPrice, p.TotalShippingFee, p.TaxFee,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create part details: %w", err)
	}
	return nil
}

func (r *PartDetailsRepository) scanRow(row pgx.Row) (*part.PartDetails, error) {
	var p part.PartDetails
	err := row.Scan(
		&p.ID, &p.FileID, &p.RecordType, &p.SourceID,
		&p.MaterialAccessID, &p.Material, &p.Quantity,
		&p.Tolerance, &p.ToleranceAccessID, &p.Roughness, &p.RoughnessAccessID,
		&p.HasThread, &p.HasAssembly,
		&p.Length, &p.Width, &p.Height, &p.SurfaceArea, &p.Volume,
		&p.SurfaceTreatment,
		&p.Treatment1Option, &p.Treatment1Color, &p.Treatment1Gloss, &p.Treatment1Drawing,
		&p.Treatment2Option, &p.Treatment2Color, &p.Treatment2Gloss, &p.Treatment2Drawing,
		&p.CraftAccessID1, &p.CraftColorAccessIDs1, &p.CraftGlossAccessIDs1, &p.CraftFileAccessIDs1,
		&p.CraftAccessID2, &p.CraftColorAccessIDs2, &p.CraftGlossAccessIDs2, &p.CraftFileAccessIDs2,
		&p.MaterialCost, &p.EngineeringCost, &p.ClampingCost, &p.ProcessingCost,
		&p.ExpeditedPrice, &p.SurfaceCost, &p.UnitPrice, &p.TotalPrice, &p.TotalShippingFee, &p.TaxFee,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan part details: %w", err)
	}
	return &p, nil
}

func (r *PartDetailsRepository) FindByID(ctx context.Context, id int64) (*part.PartDetails, error) {
	query := `SELECT ` + partDetailsColumns + ` FROM part_details WHERE id = $1`
	return r.scanRow(r.db.QueryRow(ctx, query, id))
}

// ListByFile returns all part details derived from one uploaded file.
func (r *PartDetailsRepository) ListByFile(ctx context.Context, fileID int64) ([]part.PartDetails, error) {
	query := `SELECT ` + partDetailsColumns + ` FROM part_details WHERE file_id = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list part details: %w", err)
	}
	defer rows.Close()

	var parts []part.PartDetails
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		parts = append(parts, *p)
	}
	return parts, rows.Err()
}

// SetSourceID stores the back-reference to the cart item or order that
// owns this part details row.
func (r *PartDetailsRepository) SetSourceID(ctx context.Context, id, sourceID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE part_details SET source_id = $2, updated_at = now() WHERE id = $1`,
		id, sourceID,
	)
	if err != nil {
		return fmt.Errorf("failed to set part details source: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// SetRecordType flips a part details row between cart and order ownership.
func (r *PartDetailsRepository) SetRecordType(ctx context.Context, id int64, recordType string, sourceID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE part_details SET record_type = $2, source_id = $3, updated_at = now() WHERE id = $1`,
		id, recordType, sourceID,
	)
	if err != nil {
		return fmt.Errorf("failed to set part details record type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *PartDetailsRepository) Update(ctx context.Context, p *part.PartDetails) error {
	query := `
		UPDATE part_details SET
			quantity = $2, material = $3, tolerance = $4, roughness = $5,
			unit_price = $6, total_price = $7, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Quantity, p.Material, p.Tolerance, p.Roughness,
		p.UnitPrice, p.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("failed to update part details: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *PartDetailsRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM part_details WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete part details: %w", err)
	}
	return nil
}
