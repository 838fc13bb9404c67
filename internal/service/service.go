package service

import (
	"go.uber.org/zap"

	"github.com/ray8844/saida-de-campo/config"
	"github.com/ray8844/saida-de-campo/internal/repository"
	"github.com/ray8844/saida-de-campo/internal/rotation"
	"github.com/ray8844/saida-de-campo/pkg/lock"
	"github.com/ray8844/saida-de-campo/pkg/metrics"
)

// Service aggregates every service.
type Service struct {
	Group     GroupService
	Brother   BrotherService
	Territory TerritoryService
	Outing    OutingService
	Report    ReportService
	Calendar  CalendarService
}

// NewService wires the services over one repository aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	locker lock.Locker,
	recorder metrics.Recorder,
	logger *zap.Logger,
) *Service {
	gen := rotation.NewGenerator(rotation.WithPolicy(rotation.Policy(cfg.Generation.Policy)))

	return &Service{
		Group:     NewGroupService(repo, logger),
		Brother:   NewBrotherService(repo, logger),
		Territory: NewTerritoryService(repo, logger),
		Outing:    NewOutingService(repo, gen, locker, recorder, &cfg.Generation, logger),
		Report:    NewReportService(repo, logger),
		Calendar:  NewCalendarService(repo, logger),
	}
}
