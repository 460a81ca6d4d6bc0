// internal/repository/postgres/file_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"cncquote-service/internal/domain/file"
	xerrors "cncquote-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FileRepository struct {
	db *pgxpool.Pool
}

func NewFileRepository(db *pgxpool.Pool) *FileRepository {
	return &FileRepository{db: db}
}

func (r *FileRepository) Create(ctx context.Context, f *file.File) error {
	query := `
		INSERT INTO files (
			user_id, file_name, file_path, file_size,
			file_info_access_id, product_model_access_id, file_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, uploaded_at
	`

	err := r.db.QueryRow(ctx, query,
		f.UserID, f.FileName, f.FilePath, f.FileSize,
		f.FileInfoAccessID, f.ProductModelAccessID, f.FileURL,
	).Scan(&f.ID, &f.UploadedAt)

	if err != nil {
		return fmt.Errorf("failed to create file record: %w", err)
	}
	return nil
}

func (r *FileRepository) FindByID(ctx context.Context, id int64) (*file.File, error) {
	query := `
		SELECT id, user_id, file_name, file_path, file_size,
		       file_info_access_id, product_model_access_id, file_url, uploaded_at
		FROM files
		WHERE id = $1
	`

	var f file.File
	err := r.db.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.UserID, &f.FileName, &f.FilePath, &f.FileSize,
		&f.FileInfoAccessID, &f.ProductModelAccessID, &f.FileURL, &f.UploadedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find file: %w", err)
	}
	return &f, nil
}

// ListByUser returns the upload history for a user, newest first.
func (r *FileRepository) ListByUser(ctx context.Context, userID int64) ([]file.File, error) {
	query := `
		SELECT id, user_id, file_name, file_path, file_size,
		       file_info_access_id, product_model_access_id, file_url, uploaded_at
		FROM files
		WHERE user_id = $1
		ORDER BY uploaded_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var files []file.File
	for rows.Next() {
		var f file.File
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.FileName, &f.FilePath, &f.FileSize,
			&f.FileInfoAccessID, &f.ProductModelAccessID, &f.FileURL, &f.UploadedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// UpdateProductModelAccessID stores the vendor model access id once the
// model has been registered with the CNC platform.
func (r *FileRepository) UpdateProductModelAccessID(ctx context.Context, id int64, accessID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE files SET product_model_access_id = $2 WHERE id = $1`, id, accessID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product model access id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Delete removes a file record owned by the given user.
func (r *FileRepository) Delete(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM files WHERE id = $1 AND user_id = $2`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}
