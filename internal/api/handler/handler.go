package handler

import "github.com/ray8844/saida-de-campo/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Group     *GroupHandler
	Brother   *BrotherHandler
	Territory *TerritoryHandler
	Outing    *OutingHandler
	Report    *ReportHandler
	Calendar  *CalendarHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Group:     NewGroupHandler(svc.Group),
		Brother:   NewBrotherHandler(svc.Brother),
		Territory: NewTerritoryHandler(svc.Territory),
		Outing:    NewOutingHandler(svc.Outing),
		Report:    NewReportHandler(svc.Report),
		Calendar:  NewCalendarHandler(svc.Calendar),
	}
}
