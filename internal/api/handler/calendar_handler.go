package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ray8844/saida-de-campo/internal/service"
	"github.com/ray8844/saida-de-campo/pkg/response"
)

// CalendarHandler iCalendar feed endpoints
type CalendarHandler struct {
	svc service.CalendarService
}

// NewCalendarHandler creates a CalendarHandler.
func NewCalendarHandler(svc service.CalendarService) *CalendarHandler {
	return &CalendarHandler{svc: svc}
}

// GroupFeed GET /api/v1/calendar/groups/:file
//
// file is "<group id>.ics"; optional from/to query bounds.
func (h *CalendarHandler) GroupFeed(c *gin.Context) {
	groupID, ok := strings.CutSuffix(c.Param("file"), ".ics")
	if _, err := uuid.Parse(groupID); !ok || err != nil {
		response.NotFound(c, response.CodeNotFound, "calendar not found")
		return
	}

	feed, err := h.svc.GroupFeed(c.Request.Context(), groupID, c.Query("from"), c.Query("to"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+groupID+`.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
