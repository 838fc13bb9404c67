package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ray8844/saida-de-campo/internal/dto"
	"github.com/ray8844/saida-de-campo/internal/service"
	"github.com/ray8844/saida-de-campo/pkg/response"
)

// OutingHandler outing generation and assignment endpoints
type OutingHandler struct {
	svc service.OutingService
}

// NewOutingHandler creates an OutingHandler.
func NewOutingHandler(svc service.OutingService) *OutingHandler {
	return &OutingHandler{svc: svc}
}

// Generate POST /api/v1/outings/generate
func (h *OutingHandler) Generate(c *gin.Context) {
	var req dto.GenerateOutingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	outing, err := h.svc.Generate(c.Request.Context(), &req, callerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, outing)
}

// GetOuting GET /api/v1/outings?group_id=&date=
func (h *OutingHandler) GetOuting(c *gin.Context) {
	var q dto.OutingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	outing, err := h.svc.GetOuting(c.Request.Context(), q.GroupID, q.Date)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, outing)
}

// DeleteOuting DELETE /api/v1/outings?group_id=&date=
func (h *OutingHandler) DeleteOuting(c *gin.Context) {
	var q dto.OutingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	n, err := h.svc.DeleteOuting(c.Request.Context(), q.GroupID, q.Date)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, dto.DeleteOutingResponse{Deleted: n})
}

// ListAssignments GET /api/v1/assignments
func (h *OutingHandler) ListAssignments(c *gin.Context) {
	var req dto.AssignmentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	items, total, err := h.svc.ListAssignments(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OKPage(c, items, total, req.GetPage(), req.GetPageSize())
}

// UpdateStatus PUT /api/v1/assignments/:id/status
func (h *OutingHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "assignment")
	if !ok {
		return
	}
	var req dto.UpdateAssignmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	a, err := h.svc.UpdateStatus(c.Request.Context(), id, &req, callerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, a)
}

// UpdatePair PUT /api/v1/assignments/:id/pair
func (h *OutingHandler) UpdatePair(c *gin.Context) {
	id, ok := pathID(c, "assignment")
	if !ok {
		return
	}
	var req dto.UpdateAssignmentPairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	a, err := h.svc.UpdatePair(c.Request.Context(), id, &req, callerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, a)
}

// DeleteAssignment DELETE /api/v1/assignments/:id
func (h *OutingHandler) DeleteAssignment(c *gin.Context) {
	id, ok := pathID(c, "assignment")
	if !ok {
		return
	}
	if err := h.svc.DeleteAssignment(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, nil)
}
