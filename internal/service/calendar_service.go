package service

import (
	"context"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/ray8844/saida-de-campo/internal/model"
	"github.com/ray8844/saida-de-campo/internal/repository"
	pkgerrors "github.com/ray8844/saida-de-campo/pkg/errors"
)

const calendarProductID = "-//saida-de-campo//outings//PT"

// CalendarService iCalendar feed of outings
type CalendarService interface {
	// GroupFeed renders the assignments of a group between from and to
	// (inclusive, YYYY-MM-DD) as one all-day event each. Empty bounds
	// default to three months back and six months ahead.
	GroupFeed(ctx context.Context, groupID, from, to string) (string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger, now: time.Now}
}

func (s *calendarService) GroupFeed(ctx context.Context, groupID, from, to string) (string, error) {
	group, err := findGroup(ctx, s.repo, s.logger, groupID)
	if err != nil {
		return "", err
	}

	now := s.now()
	if from == "" {
		from = now.AddDate(0, -3, 0).Format(model.DateLayout)
	}
	if to == "" {
		to = now.AddDate(0, 6, 0).Format(model.DateLayout)
	}
	filter, err := assignmentFilter(group.GroupID, "", "", from, to)
	if err != nil {
		return "", err
	}

	items, err := s.repo.Assignment.Find(ctx, filter)
	if err != nil {
		s.logger.Error("query calendar assignments failed", zap.String("group_id", groupID), zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName("Saída de campo - " + group.Name)

	for i := range items {
		if err := addOutingEvent(cal, &items[i], now); err != nil {
			return "", err
		}
	}
	return cal.Serialize(), nil
}

func addOutingEvent(cal *ics.Calendar, a *model.Assignment, stamp time.Time) error {
	day, err := model.ParseServiceDate(a.ServiceDate)
	if err != nil {
		return pkgerrors.Validationf("assignment %s has invalid date %q", a.AssignmentID, a.ServiceDate)
	}

	brother, territory := a.BrotherID, a.TerritoryID
	if a.Brother != nil {
		brother = a.Brother.FullName
	}
	if a.Territory != nil {
		territory = a.Territory.Name
	}

	event := cal.AddEvent(a.AssignmentID + "@saida-de-campo")
	event.SetDtStampTime(stamp.UTC())
	event.SetAllDayStartAt(day)
	event.SetAllDayEndAt(day.AddDate(0, 0, 1))
	event.SetSummary("Saída de campo: " + brother + " - " + territory)

	var desc strings.Builder
	desc.WriteString("Dirigente: " + brother + "\nTerritório: " + territory + "\nSituação: " + string(a.Status))
	if a.Territory != nil && a.Territory.Description != "" {
		desc.WriteString("\n" + a.Territory.Description)
	}
	event.SetDescription(desc.String())
	if a.Territory != nil && a.Territory.MapURL != "" {
		event.SetURL(a.Territory.MapURL)
	}
	return nil
}
