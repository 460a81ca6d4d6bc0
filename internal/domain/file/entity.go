// internal/domain/file/entity.go
package file

import (
	"database/sql"
	"time"
)

type File struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`

	FileName string        `json:"file_name" db:"file_name"`
	FilePath string        `json:"file_path" db:"file_path"`
	FileSize sql.NullInt64 `json:"file_size,omitempty" db:"file_size"` // KB

	// Vendor access ids for the uploaded model
	FileInfoAccessID     string         `json:"file_info_access_id" db:"file_info_access_id"`
	ProductModelAccessID sql.NullString `json:"product_model_access_id,omitempty" db:"product_model_access_id"`

	FileURL    string    `json:"file_url" db:"file_url"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}
