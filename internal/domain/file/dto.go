// internal/domain/file/dto.go
package file

type UploadResult struct {
	ID                   int64  `json:"id"`
	FileName             string `json:"file_name"`
	FileURL              string `json:"file_url"`
	FileInfoAccessID     string `json:"file_info_access_id"`
	ProductModelAccessID string `json:"product_model_access_id,omitempty"`
}

type UpdateProductModelRequest struct {
	FileID               int64  `json:"file_id" binding:"required"`
	ProductModelAccessID string `json:"product_model_access_id" binding:"required"`
}
