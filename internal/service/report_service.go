package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ray8844/saida-de-campo/internal/dto"
	"github.com/ray8844/saida-de-campo/internal/model"
	"github.com/ray8844/saida-de-campo/internal/repository"
)

const reportTopN = 10

// ReportService outing statistics
type ReportService interface {
	// Stats aggregates the assignments of a date range. Empty bounds
	// default to the current month.
	Stats(ctx context.Context, req *dto.ReportStatsRequest) (*dto.ReportStatsResponse, error)
}

type reportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService creates a ReportService.
func NewReportService(repo *repository.Repository, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, logger: logger, now: time.Now}
}

func (s *reportService) Stats(ctx context.Context, req *dto.ReportStatsRequest) (*dto.ReportStatsResponse, error) {
	from, to := req.From, req.To
	now := s.now()
	if from == "" {
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(model.DateLayout)
	}
	if to == "" {
		to = time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Format(model.DateLayout)
	}

	filter, err := assignmentFilter(req.GroupID, req.BrotherID, req.TerritoryID, from, to)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Assignment.Find(ctx, filter)
	if err != nil {
		s.logger.Error("query report assignments failed", zap.String("from", filter.From), zap.String("to", filter.To), zap.Error(err))
		return nil, err
	}

	resp := &dto.ReportStatsResponse{
		From:             filter.From,
		To:               filter.To,
		TotalAssignments: len(items),
	}

	brothers := newCounter()
	territories := newCounter()
	weeks := make(map[string]int)
	for _, a := range items {
		if a.Status == model.AssignmentCompleted {
			resp.CompletedAssignments++
		}

		name := a.BrotherID
		if a.Brother != nil {
			name = a.Brother.FullName
		}
		brothers.add(a.BrotherID, name)

		name = a.TerritoryID
		if a.Territory != nil {
			name = a.Territory.Name
		}
		territories.add(a.TerritoryID, name)

		if d, err := model.ParseServiceDate(a.ServiceDate); err == nil {
			year, week := d.ISOWeek()
			weeks[fmt.Sprintf("%04d-W%02d", year, week)]++
		}
	}

	resp.BrotherParticipation = brothers.top(reportTopN)
	resp.TerritoryUsage = territories.top(reportTopN)

	resp.WeeklyDistribution = make([]dto.WeekCount, 0, len(weeks))
	for week, n := range weeks {
		resp.WeeklyDistribution = append(resp.WeeklyDistribution, dto.WeekCount{Week: week, Count: n})
	}
	sort.Slice(resp.WeeklyDistribution, func(i, j int) bool {
		return resp.WeeklyDistribution[i].Week < resp.WeeklyDistribution[j].Week
	})

	return resp, nil
}

// counter counts occurrences per id, remembering a display name.
type counter struct {
	items map[string]*dto.CountItem
}

func newCounter() *counter {
	return &counter{items: make(map[string]*dto.CountItem)}
}

func (c *counter) add(id, name string) {
	if item, ok := c.items[id]; ok {
		item.Count++
		return
	}
	c.items[id] = &dto.CountItem{ID: id, Name: name, Count: 1}
}

// top returns the n largest counts, ties by name.
func (c *counter) top(n int) []dto.CountItem {
	out := make([]dto.CountItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
