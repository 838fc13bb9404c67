package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ray8844/saida-de-campo/config"
	"github.com/ray8844/saida-de-campo/internal/dto"
	"github.com/ray8844/saida-de-campo/internal/model"
	"github.com/ray8844/saida-de-campo/internal/repository"
	"github.com/ray8844/saida-de-campo/internal/rotation"
	pkgerrors "github.com/ray8844/saida-de-campo/pkg/errors"
	"github.com/ray8844/saida-de-campo/pkg/lock"
	"github.com/ray8844/saida-de-campo/pkg/metrics"
)

// ── outing errors ──

var (
	ErrAssignmentNotFound  = pkgerrors.NotFound("assignment not found")
	ErrInvalidStatus       = pkgerrors.Validation("status must be generated or completed")
	ErrNothingToUpdate     = pkgerrors.Validation("brother_id or territory_id is required")
	ErrBrotherOtherGroup   = pkgerrors.Validation("brother belongs to another group")
	ErrTerritoryOtherGroup = pkgerrors.Validation("territory belongs to another group")
	ErrBrotherInactive     = pkgerrors.Validation("brother is inactive")
	ErrTerritoryInactive   = pkgerrors.Validation("territory is inactive")
	ErrBrotherBooked       = pkgerrors.Conflict("brother already has an assignment on this date")
	ErrTerritoryBooked     = pkgerrors.Conflict("territory already has an assignment on this date")
	ErrOutingBusy          = pkgerrors.Conflict("another change to this outing is in progress, retry shortly")
)

// OutingService outing generation and assignment maintenance.
type OutingService interface {
	// Generate builds and stores the outing of (group, date).
	Generate(ctx context.Context, req *dto.GenerateOutingRequest, callerID string) (*dto.OutingResponse, error)
	GetOuting(ctx context.Context, groupID, date string) (*dto.OutingResponse, error)
	ListAssignments(ctx context.Context, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, int64, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateAssignmentStatusRequest, callerID string) (*dto.AssignmentResponse, error)
	// UpdatePair reassigns brother and/or territory. The stored assignment
	// is left untouched when the new pair would double-book the outing.
	UpdatePair(ctx context.Context, id string, req *dto.UpdateAssignmentPairRequest, callerID string) (*dto.AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, id string) error
	DeleteOuting(ctx context.Context, groupID, date string) (int64, error)
}

type outingService struct {
	repo        *repository.Repository
	gen         *rotation.Generator
	locker      lock.Locker
	metrics     metrics.Recorder
	lookback    int
	lockTimeout time.Duration
	logger      *zap.Logger
}

// NewOutingService creates an OutingService.
func NewOutingService(
	repo *repository.Repository,
	gen *rotation.Generator,
	locker lock.Locker,
	recorder metrics.Recorder,
	cfg *config.GenerationConfig,
	logger *zap.Logger,
) OutingService {
	timeout := cfg.LockTTL
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if locker == nil {
		locker = lock.NewMemory()
	}
	if recorder == nil {
		recorder = metrics.NewNop()
	}
	return &outingService{
		repo:        repo,
		gen:         gen,
		locker:      locker,
		metrics:     recorder,
		lookback:    cfg.HistoryLookback,
		lockTimeout: timeout,
		logger:      logger,
	}
}

// ════════════════════════════════════════════════════════════
// Generate
// ════════════════════════════════════════════════════════════

func (s *outingService) Generate(ctx context.Context, req *dto.GenerateOutingRequest, callerID string) (*dto.OutingResponse, error) {
	start := time.Now()
	resp, err := s.generate(ctx, req, callerID)

	pairs := 0
	if resp != nil {
		pairs = len(resp.Assignments)
	}
	s.metrics.RecordGeneration(generationOutcome(err), pairs, time.Since(start))
	return resp, err
}

func (s *outingService) generate(ctx context.Context, req *dto.GenerateOutingRequest, callerID string) (*dto.OutingResponse, error) {
	policy, err := rotation.ParsePolicy(req.Mode)
	if err != nil {
		return nil, err
	}
	date, err := normalizeDate(req.Date)
	if err != nil {
		return nil, err
	}

	unlock, err := s.lockOuting(ctx, req.GroupID, date)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// 1. group
	group, err := findGroup(ctx, s.repo, s.logger, req.GroupID)
	if err != nil {
		return nil, err
	}
	if group.Status != model.GroupActive {
		return nil, ErrGroupInactive
	}

	// 2. inputs
	existing, err := s.repo.Assignment.ListByGroupAndDate(ctx, group.GroupID, date)
	if err != nil {
		s.logger.Error("query outing failed", zap.String("group_id", group.GroupID), zap.String("date", date), zap.Error(err))
		return nil, err
	}
	if len(existing) > 0 {
		return nil, rotation.ErrOutingExists
	}
	brothers, err := s.repo.Brother.ListActiveByGroup(ctx, group.GroupID)
	if err != nil {
		s.logger.Error("query brothers failed", zap.String("group_id", group.GroupID), zap.Error(err))
		return nil, err
	}
	territories, err := s.repo.Territory.ListActiveByGroup(ctx, group.GroupID)
	if err != nil {
		s.logger.Error("query territories failed", zap.String("group_id", group.GroupID), zap.Error(err))
		return nil, err
	}
	limit := rotation.HistoryLimit(s.lookback, len(brothers), len(territories))
	history, err := s.repo.Assignment.ListRecentByGroup(ctx, group.GroupID, limit)
	if err != nil {
		s.logger.Error("query history failed", zap.String("group_id", group.GroupID), zap.Error(err))
		return nil, err
	}

	// 3. pairing
	items, err := s.gen.Generate(rotation.Input{
		GroupID:     group.GroupID,
		Date:        date,
		Brothers:    brothers,
		Territories: territories,
		History:     history,
		Existing:    existing,
		Policy:      policy,
	})
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].CreatedBy = optionalID(callerID)
		items[i].UpdatedBy = optionalID(callerID)
	}

	// 4. persist; the repository re-checks the outing inside its transaction
	if err := s.repo.Assignment.CreateOuting(ctx, items); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicate) {
			return nil, rotation.ErrOutingExists
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGroupNotFound
		}
		s.logger.Error("save outing failed", zap.String("group_id", group.GroupID), zap.String("date", date), zap.Error(err))
		return nil, err
	}

	stored, err := s.repo.Assignment.ListByGroupAndDate(ctx, group.GroupID, date)
	if err != nil {
		s.logger.Error("reload outing failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("outing generated",
		zap.String("group_id", group.GroupID),
		zap.String("date", date),
		zap.Int("pairs", len(stored)),
		zap.Int("history", len(history)),
	)
	return &dto.OutingResponse{GroupID: group.GroupID, Date: date, Assignments: toAssignmentResponses(stored)}, nil
}

// ════════════════════════════════════════════════════════════
// Queries
// ════════════════════════════════════════════════════════════

func (s *outingService) GetOuting(ctx context.Context, groupID, date string) (*dto.OutingResponse, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := findGroup(ctx, s.repo, s.logger, groupID); err != nil {
		return nil, err
	}

	items, err := s.repo.Assignment.ListByGroupAndDate(ctx, groupID, date)
	if err != nil {
		s.logger.Error("query outing failed", zap.String("group_id", groupID), zap.String("date", date), zap.Error(err))
		return nil, err
	}
	return &dto.OutingResponse{GroupID: groupID, Date: date, Assignments: toAssignmentResponses(items)}, nil
}

func (s *outingService) ListAssignments(ctx context.Context, req *dto.AssignmentListRequest) ([]dto.AssignmentResponse, int64, error) {
	filter, err := assignmentFilter(req.GroupID, req.BrotherID, req.TerritoryID, req.From, req.To)
	if err != nil {
		return nil, 0, err
	}
	if req.Status != "" {
		status := model.AssignmentStatus(req.Status)
		if !status.Valid() {
			return nil, 0, ErrInvalidStatus
		}
		filter.Status = status
	}

	items, total, err := s.repo.Assignment.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list assignments failed", zap.Error(err))
		return nil, 0, err
	}
	return toAssignmentResponses(items), total, nil
}

// ════════════════════════════════════════════════════════════
// Edits
// ════════════════════════════════════════════════════════════

func (s *outingService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateAssignmentStatusRequest, callerID string) (*dto.AssignmentResponse, error) {
	status := model.AssignmentStatus(req.Status)
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	a, err := s.loadAssignment(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Status = status
	a.UpdatedBy = optionalID(callerID)
	if err := s.repo.Assignment.Update(ctx, a); err != nil {
		if !errors.Is(err, pkgerrors.ErrConflict) {
			s.logger.Error("update assignment status failed", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	resp := toAssignmentResponse(a)
	return &resp, nil
}

func (s *outingService) UpdatePair(ctx context.Context, id string, req *dto.UpdateAssignmentPairRequest, callerID string) (*dto.AssignmentResponse, error) {
	if req.BrotherID == nil && req.TerritoryID == nil {
		return nil, ErrNothingToUpdate
	}

	current, err := s.loadAssignment(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock, err := s.lockOuting(ctx, current.GroupID, current.ServiceDate)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Work on a copy so a rejected change leaves current as stored.
	next := *current
	if req.BrotherID != nil && *req.BrotherID != current.BrotherID {
		b, err := s.repo.Brother.GetByID(ctx, *req.BrotherID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrBrotherNotFound
			}
			s.logger.Error("query brother failed", zap.String("id", *req.BrotherID), zap.Error(err))
			return nil, err
		}
		if b.GroupID != current.GroupID {
			return nil, ErrBrotherOtherGroup
		}
		if !b.IsActive {
			return nil, ErrBrotherInactive
		}
		next.BrotherID = b.BrotherID
		next.Brother = b
	}
	if req.TerritoryID != nil && *req.TerritoryID != current.TerritoryID {
		t, err := s.repo.Territory.GetByID(ctx, *req.TerritoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTerritoryNotFound
			}
			s.logger.Error("query territory failed", zap.String("id", *req.TerritoryID), zap.Error(err))
			return nil, err
		}
		if t.GroupID != current.GroupID {
			return nil, ErrTerritoryOtherGroup
		}
		if !t.IsActive {
			return nil, ErrTerritoryInactive
		}
		next.TerritoryID = t.TerritoryID
		next.Territory = t
	}

	if next.BrotherID == current.BrotherID && next.TerritoryID == current.TerritoryID {
		resp := toAssignmentResponse(current)
		return &resp, nil
	}

	siblings, err := s.repo.Assignment.ListByGroupAndDate(ctx, current.GroupID, current.ServiceDate)
	if err != nil {
		s.logger.Error("query outing failed", zap.String("group_id", current.GroupID), zap.Error(err))
		return nil, err
	}
	for _, sib := range siblings {
		if sib.AssignmentID == current.AssignmentID {
			continue
		}
		if sib.BrotherID == next.BrotherID {
			return nil, ErrBrotherBooked
		}
		if sib.TerritoryID == next.TerritoryID {
			return nil, ErrTerritoryBooked
		}
	}

	next.UpdatedBy = optionalID(callerID)
	if err := s.repo.Assignment.Update(ctx, &next); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicate) {
			return nil, pkgerrors.Conflict("brother or territory already has an assignment on this date")
		}
		if !errors.Is(err, pkgerrors.ErrConflict) {
			s.logger.Error("reassign failed", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("assignment reassigned",
		zap.String("id", id),
		zap.String("brother_id", next.BrotherID),
		zap.String("territory_id", next.TerritoryID),
	)
	resp := toAssignmentResponse(&next)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// Deletes
// ════════════════════════════════════════════════════════════

func (s *outingService) DeleteAssignment(ctx context.Context, id string) error {
	if err := s.repo.Assignment.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		s.logger.Error("delete assignment failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *outingService) DeleteOuting(ctx context.Context, groupID, date string) (int64, error) {
	date, err := normalizeDate(date)
	if err != nil {
		return 0, err
	}
	if _, err := findGroup(ctx, s.repo, s.logger, groupID); err != nil {
		return 0, err
	}

	unlock, err := s.lockOuting(ctx, groupID, date)
	if err != nil {
		return 0, err
	}
	defer unlock()

	n, err := s.repo.Assignment.DeleteByGroupAndDate(ctx, groupID, date)
	if err != nil {
		s.logger.Error("delete outing failed", zap.String("group_id", groupID), zap.String("date", date), zap.Error(err))
		return 0, err
	}
	s.logger.Info("outing deleted", zap.String("group_id", groupID), zap.String("date", date), zap.Int64("deleted", n))
	return n, nil
}

// ── helpers ──

// lockOuting serializes changes to one (group, date).
func (s *outingService) lockOuting(ctx context.Context, groupID, date string) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	unlock, err := s.locker.Lock(lockCtx, "outing:"+groupID+":"+date)
	if err != nil {
		if errors.Is(err, lock.ErrLockTimeout) {
			return nil, ErrOutingBusy
		}
		s.logger.Error("acquire outing lock failed", zap.String("group_id", groupID), zap.String("date", date), zap.Error(err))
		return nil, err
	}
	return unlock, nil
}

func (s *outingService) loadAssignment(ctx context.Context, id string) (*model.Assignment, error) {
	a, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("query assignment failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return a, nil
}

// normalizeDate validates a YYYY-MM-DD date.
func normalizeDate(s string) (string, error) {
	t, err := model.ParseServiceDate(s)
	if err != nil {
		return "", rotation.ErrInvalidDate
	}
	return t.Format(model.DateLayout), nil
}

// assignmentFilter validates optional date bounds.
func assignmentFilter(groupID, brotherID, territoryID, from, to string) (repository.AssignmentFilter, error) {
	f := repository.AssignmentFilter{GroupID: groupID, BrotherID: brotherID, TerritoryID: territoryID}
	var err error
	if from != "" {
		if f.From, err = normalizeDate(from); err != nil {
			return f, pkgerrors.Validationf("invalid from date %q", from)
		}
	}
	if to != "" {
		if f.To, err = normalizeDate(to); err != nil {
			return f, pkgerrors.Validationf("invalid to date %q", to)
		}
	}
	if f.From != "" && f.To != "" && f.From > f.To {
		return f, pkgerrors.Validation("from date is after to date")
	}
	return f, nil
}

func generationOutcome(err error) string {
	switch pkgerrors.KindOf(err) {
	case nil:
		if err != nil {
			return metrics.OutcomeError
		}
		return metrics.OutcomeGenerated
	case pkgerrors.ErrConflict:
		return metrics.OutcomeConflict
	case pkgerrors.ErrInsufficientData:
		return metrics.OutcomeInsufficientData
	case pkgerrors.ErrValidation:
		return metrics.OutcomeValidation
	case pkgerrors.ErrNotFound:
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
