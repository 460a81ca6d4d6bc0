// internal/domain/part/entity.go
package part

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Record types distinguish whether a part details row belongs to a cart
// item or an order.
const (
	RecordTypeCart  = "cart"
	RecordTypeOrder = "order"
)

type PartDetails struct {
	ID         int64         `json:"id" db:"id"`
	FileID     int64         `json:"file_id" db:"file_id"`
	RecordType string        `json:"record_type" db:"record_type"`
	SourceID   sql.NullInt64 `json:"source_id,omitempty" db:"source_id"` // cart item id or order id

	// Machining parameters
	MaterialAccessID  sql.NullString `json:"material_access_id,omitempty" db:"material_access_id"`
	Material          sql.NullString `json:"material,omitempty" db:"material"`
	Quantity          int            `json:"quantity" db:"quantity"`
	Tolerance         sql.NullString `json:"tolerance,omitempty" db:"tolerance"`
	ToleranceAccessID sql.NullString `json:"tolerance_access_id,omitempty" db:"tolerance_access_id"`
	Roughness         sql.NullString `json:"roughness,omitempty" db:"roughness"`
	RoughnessAccessID sql.NullString `json:"roughness_access_id,omitempty" db:"roughness_access_id"`
	HasThread         bool           `json:"has_thread" db:"has_thread"`
	HasAssembly       bool           `json:"has_assembly" db:"has_assembly"`

	// Model geometry (mm / mm² / mm³)
	Length      sql.NullFloat64 `json:"length,omitempty" db:"length"`
	Width       sql.NullFloat64 `json:"width,omitempty" db:"width"`
	Height      sql.NullFloat64 `json:"height,omitempty" db:"height"`
	SurfaceArea sql.NullFloat64 `json:"surface_area,omitempty" db:"surface_area"`
	Volume      sql.NullFloat64 `json:"volume,omitempty" db:"volume"`

	// Surface treatment slots
	SurfaceTreatment  sql.NullString `json:"surface_treatment,omitempty" db:"surface_treatment"`
	Treatment1Option  sql.NullString `json:"treatment1_option,omitempty" db:"treatment1_option"`
	Treatment1Color   sql.NullString `json:"treatment1_color,omitempty" db:"treatment1_color"`
	Treatment1Gloss   sql.NullString `json:"treatment1_gloss,omitempty" db:"treatment1_gloss"`
	Treatment1Drawing sql.NullString `json:"treatment1_drawing,omitempty" db:"treatment1_drawing"`
	Treatment2Option  sql.NullString `json:"treatment2_option,omitempty" db:"treatment2_option"`
	Treatment2Color   sql.NullString `json:"treatment2_color,omitempty" db:"treatment2_color"`
	Treatment2Gloss   sql.NullString `json:"treatment2_gloss,omitempty" db:"treatment2_gloss"`
	Treatment2Drawing sql.NullString `json:"treatment2_drawing,omitempty" db:"treatment2_drawing"`

	// Vendor craft access ids per treatment slot
	CraftAccessID1       sql.NullString `json:"craft_access_id1,omitempty" db:"craft_access_id1"`
	CraftColorAccessIDs1 pq.StringArray `json:"craft_color_access_ids1,omitempty" db:"craft_color_access_ids1"`
	CraftGlossAccessIDs1 pq.StringArray `json:"craft_gloss_access_ids1,omitempty" db:"craft_gloss_access_ids1"`
	CraftFileAccessIDs1  pq.StringArray `json:"craft_file_access_ids1,omitempty" db:"craft_file_access_ids1"`
	CraftAccessID2       sql.NullString `json:"craft_access_id2,omitempty" db:"craft_access_id2"`
	CraftColorAccessIDs2 pq.StringArray `json:"craft_color_access_ids2,omitempty" db:"craft_color_access_ids2"`
	CraftGlossAccessIDs2 pq.StringArray `json:"craft_gloss_access_ids2,omitempty" db:"craft_gloss_access_ids2"`
	CraftFileAccessIDs2  pq.StringArray `json:"craft_file_access_ids2,omitempty" db:"craft_file_access_ids2"`

	// Cost breakdown
	MaterialCost     sql.NullFloat64 `json:"material_cost,omitempty" db:"material_cost"`
	EngineeringCost  sql.NullFloat64 `json:"engineering_cost,omitempty" db:"engineering_cost"`
	ClampingCost     sql.NullFloat64 `json:"clamping_cost,omitempty" db:"clamping_cost"`
	ProcessingCost   sql.NullFloat64 `json:"processing_cost,omitempty" db:"processing_cost"`
	ExpeditedPrice   sql.NullFloat64 `json:"expedited_price,omitempty" db:"expedited_price"`
	SurfaceCost      sql.NullFloat64 `json:"surface_cost,omitempty" db:"surface_cost"`
	UnitPrice        sql.NullFloat64 `json:"unit_price,omitempty" db:"unit_price"`
	TotalPrice       sql.NullFloat64 `json:"total_price,omitempty" db:"total_price"`
	TotalShippingFee sql.NullFloat64 `json:"total_shipping_fee,omitempty" db:"total_shipping_fee"`
	TaxFee           sql.NullFloat64 `json:"tax_fee,omitempty" db:"tax_fee"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
