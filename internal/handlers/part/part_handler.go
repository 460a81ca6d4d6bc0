// internal/handlers/part/part_handler.go
package part

import (
	"net/http"
	"strconv"

	"cncquote-service/internal/domain/part"
	xerrors "cncquote-service/internal/pkg/errors"
	"cncquote-service/internal/pkg/response"
	service "cncquote-service/internal/service/part"

	"github.com/gin-gonic/gin"
)

type PartHandler struct {
	partService *service.PartService
}

func NewPartHandler(partService *service.PartService) *PartHandler {
	return &PartHandler{
		partService: partService,
	}
}

// Create stores a standalone part configuration.
func (h *PartHandler) Create(c *gin.Context) {
	var req part.PartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid part payload", err)
		return
	}

	p, err := h.partService.Create(c.Request.Context(), &req, part.RecordTypeCart)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to create part details", err)
		return
	}

	response.Success(c, http.StatusCreated, "part details created", p)
}

// Get returns one part configuration.
func (h *PartHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid part details id", err)
		return
	}

	p, err := h.partService.Get(c.Request.Context(), id)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "part details not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load part details", err)
		return
	}

	response.Success(c, http.StatusOK, "part details retrieved", p)
}

// ListByFile returns every configuration derived from one upload.
func (h *PartHandler) ListByFile(c *gin.Context) {
	fileID, err := strconv.ParseInt(c.Query("file_id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid file id", err)
		return
	}

	parts, err := h.partService.ListByFile(c.Request.Context(), fileID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list part details", err)
		return
	}

	response.Success(c, http.StatusOK, "part details retrieved", parts)
}

// Update applies the mutable fields of a part configuration.
func (h *PartHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid part details id", err)
		return
	}

	var req part.UpdatePartDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid update payload", err)
		return
	}

	p, err := h.partService.Update(c.Request.Context(), id, &req)
	if xerrors.Is(err, xerrors.ErrNotFound) {
		response.NotFound(c, "part details not found")
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to update part details", err)
		return
	}

	response.Success(c, http.StatusOK, "part details updated", p)
}

// Delete removes a part configuration.
func (h *PartHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid part details id", err)
		return
	}

	if err := h.partService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to delete part details", err)
		return
	}

	response.Success(c, http.StatusOK, "part details deleted", nil)
}
