package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ray8844/saida-de-campo/internal/dto"
	"github.com/ray8844/saida-de-campo/internal/model"
	"github.com/ray8844/saida-de-campo/internal/repository"
	pkgerrors "github.com/ray8844/saida-de-campo/pkg/errors"
)

// ── brother errors ──

const maxImportRows = 1000

var (
	ErrBrotherNotFound   = pkgerrors.NotFound("brother not found")
	ErrImportUnreadable  = pkgerrors.Validation("file is not a readable .xlsx workbook")
	ErrImportNoData      = pkgerrors.Validation("spreadsheet has no data rows (row 1 is the header)")
	ErrImportBadHeader   = pkgerrors.Validation("spreadsheet header must contain a name column (name/nome)")
	ErrImportTooManyRows = pkgerrors.Validationf("spreadsheet exceeds %d data rows", maxImportRows)
)

// BrotherService brother use cases
type BrotherService interface {
	Create(ctx context.Context, req *dto.CreateBrotherRequest, callerID string) (*dto.BrotherResponse, error)
	GetByID(ctx context.Context, id string) (*dto.BrotherResponse, error)
	List(ctx context.Context, req *dto.BrotherListRequest) ([]dto.BrotherResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateBrotherRequest, callerID string) (*dto.BrotherResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
	// Import reads brothers from the first sheet of an .xlsx workbook into
	// groupID. Invalid rows are reported and skipped; valid rows are written
	// in one transaction.
	Import(ctx context.Context, groupID string, file io.Reader, callerID string) (*dto.ImportBrothersResponse, error)
}

type brotherService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBrotherService creates a BrotherService.
func NewBrotherService(repo *repository.Repository, logger *zap.Logger) BrotherService {
	return &brotherService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *brotherService) Create(ctx context.Context, req *dto.CreateBrotherRequest, callerID string) (*dto.BrotherResponse, error) {
	group, err := findGroup(ctx, s.repo, s.logger, req.GroupID)
	if err != nil {
		return nil, err
	}

	brother := &model.Brother{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		GroupID:  req.GroupID,
		IsActive: req.IsActive == nil || *req.IsActive,
	}
	brother.CreatedBy = optionalID(callerID)
	brother.UpdatedBy = optionalID(callerID)

	if err := s.repo.Brother.Create(ctx, brother); err != nil {
		s.logger.Error("create brother failed", zap.String("group_id", req.GroupID), zap.Error(err))
		return nil, err
	}

	brother.Group = group
	resp := toBrotherResponse(brother)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *brotherService) GetByID(ctx context.Context, id string) (*dto.BrotherResponse, error) {
	brother, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toBrotherResponse(brother)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *brotherService) List(ctx context.Context, req *dto.BrotherListRequest) ([]dto.BrotherResponse, int64, error) {
	filter := repository.BrotherFilter{
		GroupID:         req.GroupID,
		Keyword:         req.Keyword,
		IncludeInactive: req.IncludeInactive,
	}
	brothers, total, err := s.repo.Brother.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list brothers failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.BrotherResponse, 0, len(brothers))
	for i := range brothers {
		result = append(result, toBrotherResponse(&brothers[i]))
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *brotherService) Update(ctx context.Context, id string, req *dto.UpdateBrotherRequest, callerID string) (*dto.BrotherResponse, error) {
	brother, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.GroupID != nil && *req.GroupID != brother.GroupID {
		group, err := findGroup(ctx, s.repo, s.logger, *req.GroupID)
		if err != nil {
			return nil, err
		}
		brother.GroupID = group.GroupID
		brother.Group = group
	}
	if req.FullName != nil {
		brother.FullName = *req.FullName
	}
	if req.Phone != nil {
		brother.Phone = *req.Phone
	}
	if req.Email != nil {
		brother.Email = *req.Email
	}
	if req.IsActive != nil {
		brother.IsActive = *req.IsActive
	}
	brother.UpdatedBy = optionalID(callerID)

	if err := s.repo.Brother.Update(ctx, brother); err != nil {
		s.logger.Error("update brother failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := toBrotherResponse(brother)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *brotherService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Brother.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete brother failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Import ──────────────────────

// importRow one parsed spreadsheet row
type importRow struct {
	Row      int
	FullName string
	Phone    string
	Email    string
}

func (s *brotherService) Import(ctx context.Context, groupID string, file io.Reader, callerID string) (*dto.ImportBrothersResponse, error) {
	if _, err := findGroup(ctx, s.repo, s.logger, groupID); err != nil {
		return nil, err
	}

	rows, err := parseBrotherSheet(file)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Brother.ListActiveByGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("load roster failed", zap.String("group_id", groupID), zap.Error(err))
		return nil, err
	}
	known := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		known[normalizeName(b.FullName)] = struct{}{}
	}

	resp := &dto.ImportBrothersResponse{}
	var valid []model.Brother
	for _, row := range rows {
		if row.FullName == "" {
			resp.Errors = append(resp.Errors, dto.ImportRowError{Row: row.Row, Message: "name is empty"})
			continue
		}
		if utf8.RuneCountInString(row.FullName) > 150 {
			resp.Errors = append(resp.Errors, dto.ImportRowError{Row: row.Row, Message: "name is longer than 150 characters"})
			continue
		}
		if row.Email != "" {
			if _, err := mail.ParseAddress(row.Email); err != nil {
				resp.Errors = append(resp.Errors, dto.ImportRowError{Row: row.Row, Message: fmt.Sprintf("invalid email: %s", row.Email)})
				continue
			}
		}
		key := normalizeName(row.FullName)
		if _, dup := known[key]; dup {
			resp.Skipped++
			continue
		}
		known[key] = struct{}{}

		b := model.Brother{
			FullName: row.FullName,
			Phone:    row.Phone,
			Email:    row.Email,
			GroupID:  groupID,
			IsActive: true,
		}
		b.CreatedBy = optionalID(callerID)
		b.UpdatedBy = optionalID(callerID)
		valid = append(valid, b)
	}

	if len(valid) > 0 {
		err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
			return tx.Brother.BatchCreate(ctx, valid)
		})
		if err != nil {
			s.logger.Error("import brothers failed", zap.String("group_id", groupID), zap.Int("rows", len(valid)), zap.Error(err))
			return nil, err
		}
	}
	resp.Created = len(valid)

	s.logger.Info("brothers imported",
		zap.String("group_id", groupID),
		zap.Int("created", resp.Created),
		zap.Int("skipped", resp.Skipped),
		zap.Int("rejected", len(resp.Errors)),
	)
	return resp, nil
}

// parseBrotherSheet reads the first sheet. Column order is free; headers
// are matched in English or Portuguese.
func parseBrotherSheet(file io.Reader) ([]importRow, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, ErrImportUnreadable
	}
	defer f.Close()

	sheetRows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, ErrImportUnreadable
	}
	if len(sheetRows) < 2 {
		return nil, ErrImportNoData
	}

	col := parseBrotherHeader(sheetRows[0])
	if col["name"] < 0 {
		return nil, ErrImportBadHeader
	}

	cell := func(row []string, key string) string {
		if idx := col[key]; idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	var rows []importRow
	for i := 1; i < len(sheetRows); i++ {
		item := importRow{
			Row:      i + 1,
			FullName: cell(sheetRows[i], "name"),
			Phone:    cell(sheetRows[i], "phone"),
			Email:    cell(sheetRows[i], "email"),
		}
		if item.FullName == "" && item.Phone == "" && item.Email == "" {
			continue
		}
		rows = append(rows, item)
	}

	if len(rows) == 0 {
		return nil, ErrImportNoData
	}
	if len(rows) > maxImportRows {
		return nil, ErrImportTooManyRows
	}
	return rows, nil
}

func parseBrotherHeader(header []string) map[string]int {
	idx := map[string]int{"name": -1, "phone": -1, "email": -1}
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "name", "full_name", "nome", "nome completo", "nome_completo":
			idx["name"] = i
		case "phone", "telefone", "celular":
			idx["phone"] = i
		case "email", "e-mail":
			idx["email"] = i
		}
	}
	return idx
}

func normalizeName(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func (s *brotherService) load(ctx context.Context, id string) (*model.Brother, error) {
	brother, err := s.repo.Brother.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBrotherNotFound
		}
		s.logger.Error("query brother failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return brother, nil
}
