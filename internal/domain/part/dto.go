// internal/domain/part/dto.go
package part

// PartItemRequest is the storefront payload describing one configured
// part. The same shape is used for cart additions and standalone part
// details creation.
type PartItemRequest struct {
	UploadHistoryID int64 `json:"upload_history_id" binding:"required"`

	MaterialAccessID  string `json:"material_access_id"`
	Material          string `json:"material"`
	Quantity          int    `json:"quantity"`
	Tolerance         string `json:"tolerance"`
	ToleranceAccessID string `json:"tolerance_access_id"`
	Roughness         string `json:"roughness"`
	RoughnessAccessID string `json:"roughness_access_id"`
	HasThread         bool   `json:"has_thread"`
	HasAssembly       bool   `json:"has_assembly"`

	SizeX            float64 `json:"size_x"`
	SizeY            float64 `json:"size_y"`
	SizeZ            float64 `json:"size_z"`
	ModelSurfaceArea float64 `json:"model_surface_area"`
	ModelVolume      float64 `json:"model_volume"`

	SurfaceTreatment   string `json:"surface_treatment"`
	SelectedTreatment  string `json:"selected_treatment"`
	SelectedColor      string `json:"selected_color"`
	Glossiness         string `json:"glossiness"`
	UploadedFileName   string `json:"uploaded_file_name"`
	SelectedTreatment2 string `json:"selected_treatment2"`
	SelectedColor2     string `json:"selected_color2"`
	Glossiness2        string `json:"glossiness2"`
	UploadedFileName2  string `json:"uploaded_file_name2"`

	ProductModelAccessID string   `json:"product_model_access_id"`
	CraftAccessID1       string   `json:"craft_access_id1"`
	CraftColorAccessIDs1 []string `json:"craft_color_access_ids1"`
	CraftGlossAccessIDs1 []string `json:"craft_gloss_access_ids1"`
	CraftFileAccessIDs1  []string `json:"craft_file_access_ids1"`
	CraftAccessID2       string   `json:"craft_access_id2"`
	CraftColorAccessIDs2 []string `json:"craft_color_access_ids2"`
	CraftGlossAccessIDs2 []string `json:"craft_gloss_access_ids2"`
	CraftFileAccessIDs2  []string `json:"craft_file_access_ids2"`

	MaterialCost    float64 `json:"material_cost"`
	EngineeringCost float64 `json:"engineering_cost"`
	ClampingCost    float64 `json:"clamping_cost"`
	ProcessingCost  float64 `json:"processing_cost"`
	ExpeditedPrice  float64 `json:"expedited_price"`
	SurfaceCost     float64 `json:"surface_cost"`
	PricePerUnit    float64 `json:"price_per_unit"`
	TotalPrice      float64 `json:"total_price"`
	TaxPrice        float64 `json:"tax_price"`

	EstimatedDeliveryTime string `json:"estimated_delivery_time"`
}

type UpdatePartDetailsRequest struct {
	Quantity   *int     `json:"quantity" binding:"omitempty,min=1"`
	Material   *string  `json:"material"`
	Tolerance  *string  `json:"tolerance"`
	Roughness  *string  `json:"roughness"`
	UnitPrice  *float64 `json:"unit_price"`
	TotalPrice *float64 `json:"total_price"`
}
