// internal/service/file/file.go
package file

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cncquote-service/internal/domain/file"
	xerrors "cncquote-service/internal/pkg/errors"
	"cncquote-service/internal/service/cnc"

	"go.uber.org/zap"
)

// fileStore is the slice of the file repository the service needs.
type fileStore interface {
	Create(ctx context.Context, f *file.File) error
	ListByUser(ctx context.Context, userID int64) ([]file.File, error)
	FindByID(ctx context.Context, id int64) (*file.File, error)
	UpdateProductModelAccessID(ctx context.Context, id int64, accessID string) error
	Delete(ctx context.Context, id, userID int64) error
}

// UploadItem is one model file received from the storefront together
// with the vendor access id the storefront already obtained for it.
type UploadItem struct {
	FileName         string
	Size             int64
	FileInfoAccessID string
	Content          io.Reader
}

type FileService struct {
	fileRepo  fileStore
	cncClient *cnc.Client
	viewer    *cnc.ViewerClient
	uploadDir string
	logger    *zap.Logger
}

func NewFileService(fileRepo fileStore, cncClient *cnc.Client, viewer *cnc.ViewerClient, uploadDir string, logger *zap.Logger) *FileService {
	return &FileService{
		fileRepo:  fileRepo,
		cncClient: cncClient,
		viewer:    viewer,
		uploadDir: uploadDir,
		logger:    logger,
	}
}

// History returns the user's upload records, newest first.
func (s *FileService) History(ctx context.Context, userID int64) ([]file.File, error) {
	return s.fileRepo.ListByUser(ctx, userID)
}

// Upload stores each model under the customer's directory, registers it
// with the preview service and records the result. A failing file is
// skipped so one bad model does not sink the batch.
func (s *FileService) Upload(ctx context.Context, userID int64, customerCode string, items []UploadItem) ([]file.UploadResult, error) {
	dir := filepath.Join(s.uploadDir, customerCode)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	var results []file.UploadResult
	for _, item := range items {
		result, err := s.uploadOne(ctx, userID, customerCode, dir, item)
		if err != nil {
			s.logger.Warn("model upload failed",
				zap.String("file_name", item.FileName),
				zap.Error(err),
			)
			continue
		}
		results = append(results, *result)
	}
	return results, nil
}

func (s *FileService) uploadOne(ctx context.Context, userID int64, customerCode, dir string, item UploadItem) (*file.UploadResult, error) {
	content, err := io.ReadAll(item.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	diskPath := filepath.Join(dir, filepath.Base(item.FileName))
	if err := os.WriteFile(diskPath, content, 0o644); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	tokenKey, err := s.viewer.UploadModel(ctx, item.FileName, bytes.NewReader(content))
	if err != nil {
		return nil, err
	}

	rec := &file.File{
		UserID:           userID,
		FileName:         item.FileName,
		FilePath:         filepath.Join("uploads", customerCode, filepath.Base(item.FileName)),
		FileSize:         sql.NullInt64{Int64: item.Size / 1024, Valid: true},
		FileInfoAccessID: item.FileInfoAccessID,
		FileURL:          s.viewer.PreviewURL(item.Size, "STEP", tokenKey),
	}
	if err := s.fileRepo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("model uploaded",
		zap.Int64("file_id", rec.ID),
		zap.String("file_name", rec.FileName),
	)
	return &file.UploadResult{
		ID:               rec.ID,
		FileName:         rec.FileName,
		FileURL:          rec.FileURL,
		FileInfoAccessID: rec.FileInfoAccessID,
	}, nil
}

// UploadDrawFile forwards a 2D drawing to the manufacturing platform.
func (s *FileService) UploadDrawFile(ctx context.Context, fileName string, content io.Reader) (json.RawMessage, error) {
	return s.cncClient.UploadDrawFile(ctx, fileName, content)
}

// Analyze triggers model geometry analysis on the platform.
func (s *FileService) Analyze(ctx context.Context, clientID string, fileInfoAccessIDs []string) (json.RawMessage, error) {
	return s.cncClient.AnalyzeModel(ctx, clientID, fileInfoAccessIDs)
}

// AnalysisResult fetches the analysis outcome for one model.
func (s *FileService) AnalysisResult(ctx context.Context, fileInfoAccessID string) (json.RawMessage, error) {
	return s.cncClient.GetAnalysisResult(ctx, fileInfoAccessID)
}

// GetFileInfo returns a single upload record.
func (s *FileService) GetFileInfo(ctx context.Context, fileID int64) (*file.File, error) {
	return s.fileRepo.FindByID(ctx, fileID)
}

// UpdateProductModel stores the vendor model access id on an upload
// record.
func (s *FileService) UpdateProductModel(ctx context.Context, req *file.UpdateProductModelRequest) error {
	return s.fileRepo.UpdateProductModelAccessID(ctx, req.FileID, req.ProductModelAccessID)
}

// DeleteHistory removes an upload record owned by the user. The stored
// file is removed best-effort; a leftover on disk is not an error.
func (s *FileService) DeleteHistory(ctx context.Context, fileID, userID int64) error {
	rec, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return err
	}
	if rec.UserID != userID {
		return xerrors.ErrNotFound
	}

	if err := s.fileRepo.Delete(ctx, fileID, userID); err != nil {
		return err
	}

	if rec.FilePath != "" {
		diskPath := filepath.Join(s.uploadDir, filepath.Base(filepath.Dir(rec.FilePath)), filepath.Base(rec.FilePath))
		if err := os.Remove(diskPath); err != nil && !os.IsNotExist(err) {
			s.logger.Warn("failed to remove stored file",
				zap.String("path", diskPath),
				zap.Error(err),
			)
		}
	}
	return nil
}
