// internal/handlers/file/file_handler.go
package file

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"cncquote-service/internal/domain/file"
	"cncquote-service/internal/middleware"
	xerrors "cncquote-service/internal/pkg/errors"
	"cncquote-service/internal/pkg/response"
	service "cncquote-service/internal/service/file"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	fileService *service.FileService
}

func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// History lists the user's upload records.
func (h *FileHandler) History(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	records, err := h.fileService.History(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load upload history", err)
		return
	}

	response.Success(c, http.StatusOK, "upload history retrieved", records)
}

// Upload receives the storefront's indexed multipart batch
// (uploadList[i][files] plus uploadList[i][fileInfoAccessId]) and pushes
// each model through the preview pipeline.
func (h *FileHandler) Upload(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	customerCode := middleware.GetCustomerCode(c)

	form, err := c.MultipartForm()
	if err != nil {
		response.ValidationError(c, "invalid upload form", err)
		return
	}

	var items []service.UploadItem
	for i := 0; ; i++ {
		headers, ok := form.File[fmt.Sprintf("uploadList[%d][files]", i)]
		if !ok || len(headers) == 0 {
			break
		}
		header := headers[0]

		accessID := ""
		if vals := form.Value[fmt.Sprintf("uploadList[%d][fileInfoAccessId]", i)]; len(vals) > 0 {
			accessID = vals[0]
		}

		f, err := header.Open()
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "failed to read uploaded file", err)
			return
		}
		// Consume and close each part here; holding every handle open
		// until the handler returns leaks descriptors on large batches.
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "failed to read uploaded file", err)
			return
		}

		items = append(items, service.UploadItem{
			FileName:         header.Filename,
			Size:             header.Size,
			FileInfoAccessID: accessID,
			Content:          bytes.NewReader(content),
		})
	}

	if len(items) == 0 {
		response.ValidationError(c, "no files in upload", nil)
		return
	}

	results, err := h.fileService.Upload(c.Request.Context(), userID, customerCode, items)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "file upload failed", err)
		return
	}

	response.Success(c, http.StatusOK,
		fmt.Sprintf("processed %d of %d files", len(results), len(items)), results)
}

// UploadDrawFile forwards 2D drawings to the manufacturing platform.
func (h *FileHandler) UploadDrawFile(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.ValidationError(c, "invalid upload form", err)
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		response.ValidationError(c, "no files in upload", nil)
		return
	}

	var results []any
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "failed to read uploaded file", err)
			return
		}

		data, err := h.fileService.UploadDrawFile(c.Request.Context(), header.Filename, f)
		f.Close()
		if err != nil {
			response.Error(c, http.StatusBadGateway, "drawing upload failed", err)
			return
		}
		results = append(results, data)
	}

	response.Success(c, http.StatusOK, "drawings uploaded", results)
}

// AnalyzeModel triggers geometry analysis on the platform.
func (h *FileHandler) AnalyzeModel(c *gin.Context) {
	var req struct {
		ClientID          string   `json:"clientId"`
		FileInfoAccessIDs []string `json:"fileInfoAccessIds" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid analyze payload", err)
		return
	}

	data, err := h.fileService.Analyze(c.Request.Context(), req.ClientID, req.FileInfoAccessIDs)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "model analysis failed", err)
		return
	}

	response.Success(c, http.StatusOK, "analysis started", data)
}

// GetAnalysisResult fetches the analysis outcome for one model.
func (h *FileHandler) GetAnalysisResult(c *gin.Context) {
	accessID := c.Query("file_info_access_id")
	if accessID == "" {
		response.ValidationError(c, "file_info_access_id is required", nil)
		return
	}

	data, err := h.fileService.AnalysisResult(c.Request.Context(), accessID)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "failed to fetch analysis result", err)
		return
	}

	response.Success(c, http.StatusOK, "analysis result retrieved", data)
}

// GetFileInfo returns one upload record by id.
func (h *FileHandler) GetFileInfo(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid file id", err)
		return
	}

	rec, err := h.fileService.GetFileInfo(c.Request.Context(), id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "file not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load file info", err)
		return
	}

	response.Success(c, http.StatusOK, "file info retrieved", rec)
}

// UpdateProductModel stores the vendor model access id on a record.
func (h *FileHandler) UpdateProductModel(c *gin.Context) {
	var req file.UpdateProductModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid payload", err)
		return
	}

	if err := h.fileService.UpdateProductModel(c.Request.Context(), &req); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "file not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update model access id", err)
		return
	}

	response.Success(c, http.StatusOK, "model access id updated", nil)
}

// DeleteHistory removes one upload record owned by the user.
func (h *FileHandler) DeleteHistory(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	id, err := strconv.ParseInt(c.Param("file_id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid file id", err)
		return
	}

	if err := h.fileService.DeleteHistory(c.Request.Context(), id, userID); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "record not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete record", err)
		return
	}

	response.Success(c, http.StatusOK, "record deleted", nil)
}
