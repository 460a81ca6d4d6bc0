// internal/domain/part/convert.go
package part

import "database/sql"

func nullStr(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}

func nullFloat(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v != 0}
}

// FromRequest maps a storefront part payload onto a PartDetails row.
// SourceID is left unset; the owner (cart item or order) is linked after
// it exists.
func FromRequest(req *PartItemRequest, recordType string) *PartDetails {
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	return &PartDetails{
		FileID:     req.UploadHistoryID,
		RecordType: recordType,

		MaterialAccessID:  nullStr(req.MaterialAccessID),
		Material:          nullStr(req.Material),
		Quantity:          quantity,
		Tolerance:         nullStr(req.Tolerance),
		ToleranceAccessID: nullStr(req.ToleranceAccessID),
		Roughness:         nullStr(req.Roughness),
		RoughnessAccessID: nullStr(req.RoughnessAccessID),
		HasThread:         req.HasThread,
		HasAssembly:       req.HasAssembly,

		Length:      nullFloat(req.SizeX),
		Width:       nullFloat(req.SizeY),
		Height:      nullFloat(req.SizeZ),
		SurfaceArea: nullFloat(req.ModelSurfaceArea),
		Volume:      nullFloat(req.ModelVolume),

		SurfaceTreatment:  nullStr(req.SurfaceTreatment),
		Treatment1Option:  nullStr(req.SelectedTreatment),
		Treatment1Color:   nullStr(req.SelectedColor),
		Treatment1Gloss:   nullStr(req.Glossiness),
		Treatment1Drawing: nullStr(req.UploadedFileName),
		Treatment2Option:  nullStr(req.SelectedTreatment2),
		Treatment2Color:   nullStr(req.SelectedColor2),
		Treatment2Gloss:   nullStr(req.Glossiness2),
		Treatment2Drawing: nullStr(req.UploadedFileName2),

		CraftAccessID1:       nullStr(req.CraftAccessID1),
		CraftColorAccessIDs1: req.CraftColorAccessIDs1,
		CraftGlossAccessIDs1: req.CraftGlossAccessIDs1,
		CraftFileAccessIDs1:  req.CraftFileAccessIDs1,
		CraftAccessID2:       nullStr(req.CraftAccessID2),
		CraftColorAccessIDs2: req.CraftColorAccessIDs2,
		CraftGlossAccessIDs2: req.CraftGlossAccessIDs2,
		CraftFileAccessIDs2:  req.CraftFileAccessIDs2,

		MaterialCost:    nullFloat(req.MaterialCost),
		EngineeringCost: nullFloat(req.EngineeringCost),
		ClampingCost:    nullFloat(req.ClampingCost),
		ProcessingCost:  nullFloat(req.ProcessingCost),
		ExpeditedPrice:  nullFloat(req.ExpeditedPrice),
		SurfaceCost:     nullFloat(req.SurfaceCost),
		UnitPrice:       nullFloat(req.PricePerUnit),
		TotalPrice:      nullFloat(req.TotalPrice),
		TaxFee:          nullFloat(req.TaxPrice),
	}
}
