package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ray8844/saida-de-campo/internal/dto"
	"github.com/ray8844/saida-de-campo/internal/service"
	"github.com/ray8844/saida-de-campo/pkg/response"
)

// BrotherHandler brother endpoints
type BrotherHandler struct {
	svc service.BrotherService
}

// NewBrotherHandler creates a BrotherHandler.
func NewBrotherHandler(svc service.BrotherService) *BrotherHandler {
	return &BrotherHandler{svc: svc}
}

// ListBrothers GET /api/v1/brothers
func (h *BrotherHandler) ListBrothers(c *gin.Context) {
	var req dto.BrotherListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	items, total, err := h.svc.List(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// GetBrother GET /api/v1/brothers/:id
func (h *BrotherHandler) GetBrother(c *gin.Context) {
	id, ok := pathID(c, "brother")
	if !ok {
		return
	}
	brother, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, brother)
}

// CreateBrother POST /api/v1/brothers
func (h *BrotherHandler) CreateBrother(c *gin.Context) {
	var req dto.CreateBrotherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	brother, err := h.svc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, brother)
}

// UpdateBrother PUT /api/v1/brothers/:id
func (h *BrotherHandler) UpdateBrother(c *gin.Context) {
	id, ok := pathID(c, "brother")
	if !ok {
		return
	}
	var req dto.UpdateBrotherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	brother, err := h.svc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, brother)
}

// DeleteBrother DELETE /api/v1/brothers/:id
func (h *BrotherHandler) DeleteBrother(c *gin.Context) {
	id, ok := pathID(c, "brother")
	if !ok {
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, callerID); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, nil)
}

// ImportBrothers POST /api/v1/brothers/import
//
// multipart/form-data with "group_id" and an .xlsx "file".
func (h *BrotherHandler) ImportBrothers(c *gin.Context) {
	groupID := c.PostForm("group_id")
	if _, err := uuid.Parse(groupID); err != nil {
		response.BadRequest(c, response.CodeValidation, "group_id must be a valid id")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		bindFailed(c, err)
		return
	}
	if !strings.HasSuffix(strings.ToLower(header.Filename), ".xlsx") {
		response.BadRequest(c, response.CodeValidation, "only .xlsx files are accepted")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	file, err := header.Open()
	if err != nil {
		response.InternalError(c)
		return
	}
	defer file.Close()

	resp, err := h.svc.Import(c.Request.Context(), groupID, file, callerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, resp)
}
