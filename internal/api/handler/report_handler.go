package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ray8844/saida-de-campo/internal/dto"
	"github.com/ray8844/saida-de-campo/internal/service"
	"github.com/ray8844/saida-de-campo/pkg/response"
)

// ReportHandler report endpoints
type ReportHandler struct {
	svc service.ReportService
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Stats GET /api/v1/reports/stats
func (h *ReportHandler) Stats(c *gin.Context) {
	var req dto.ReportStatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}

	stats, err := h.svc.Stats(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.OK(c, stats)
}
