package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ray8844/saida-de-campo/internal/model"
	"github.com/ray8844/saida-de-campo/internal/repository"
	"github.com/ray8844/saida-de-campo/pkg/database"
	pkgerrors "github.com/ray8844/saida-de-campo/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

// newSQLiteRepo opens a private in-memory database for one test.
func newSQLiteRepo(t *testing.T) (*repository.Repository, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return repository.NewRepository(db), db
}

type fixture struct {
	group       *model.Group
	brothers    []*model.Brother
	territories []*model.Territory
}

func seedGroup(t *testing.T, repo *repository.Repository, nBrothers, nTerritories int) fixture {
	t.Helper()
	ctx := context.Background()

	f := fixture{group: &model.Group{Name: "Grupo Centro", Status: model.GroupActive}}
	require.NoError(t, repo.Group.Create(ctx, f.group))

	for i := 0; i < nBrothers; i++ {
		b := &model.Brother{FullName: fmt.Sprintf("Irmão %d", i+1), GroupID: f.group.GroupID, IsActive: true}
		require.NoError(t, repo.Brother.Create(ctx, b))
		f.brothers = append(f.brothers, b)
	}
	for i := 0; i < nTerritories; i++ {
		tr := &model.Territory{Name: fmt.Sprintf("Território %02d", i+1), GroupID: f.group.GroupID, IsActive: true}
		require.NoError(t, repo.Territory.Create(ctx, tr))
		f.territories = append(f.territories, tr)
	}
	return f
}

func pair(f fixture, date string, b, tr int) model.Assignment {
	return model.Assignment{
		GroupID:     f.group.GroupID,
		ServiceDate: date,
		BrotherID:   f.brothers[b].BrotherID,
		TerritoryID: f.territories[tr].TerritoryID,
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Rosters
// ═══════════════════════════════════════════════════════════

func TestBrother_ListActiveByGroup(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	f := seedGroup(t, repo, 3, 0)
	other := seedGroup(t, repo, 2, 0)

	f.brothers[1].IsActive = false
	require.NoError(t, repo.Brother.Update(ctx, f.brothers[1]))
	require.NoError(t, repo.Brother.Delete(ctx, f.brothers[2].BrotherID, ""))

	active, err := repo.Brother.ListActiveByGroup(ctx, f.group.GroupID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, f.brothers[0].BrotherID, active[0].BrotherID)

	all, total, err := repo.Brother.List(ctx, repository.BrotherFilter{IncludeInactive: true}, 0, 50)
	require.NoError(t, err)
	require.EqualValues(t, 4, total, "soft-deleted rows are hidden")
	require.Len(t, all, 4)
	_ = other
}

func TestTerritory_ListFilterAndPaging(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	f := seedGroup(t, repo, 0, 5)

	page, total, err := repo.Territory.List(ctx, repository.TerritoryFilter{GroupID: f.group.GroupID}, 2, 2)
	require.NoError(t, err)
	require.EqualValues(t, 5, total)
	require.Len(t, page, 2)
	require.Equal(t, "Território 03", page[0].Name)

	found, total, err := repo.Territory.List(ctx, repository.TerritoryFilter{Keyword: "05"}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, f.territories[4].TerritoryID, found[0].TerritoryID)
}

func TestGroup_SoftDelete(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	ctx := context.Background()
	f := seedGroup(t, repo, 0, 0)

	require.NoError(t, repo.Group.Delete(ctx, f.group.GroupID, "11111111-1111-1111-1111-111111111111"))

	_, err := repo.Group.GetByID(ctx, f.group.GroupID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var raw model.Group
	require.NoError(t, db.Unscoped().Where("group_id = ?", f.group.GroupID).First(&raw).Error)
	require.True(t, raw.DeletedAt.Valid)
	require.NotNil(t, raw.DeletedBy)
}

// ═══════════════════════════════════════════════════════════
// Test: Outings
// ═══════════════════════════════════════════════════════════

func TestCreateOuting_RejectsSecondBatch(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	f := seedGroup(t, repo, 2, 2)

	first := []model.Assignment{pair(f, "2024-01-07", 0, 0)}
	require.NoError(t, repo.Assignment.CreateOuting(ctx, first))
	require.NotEmpty(t, first[0].AssignmentID)
	require.Equal(t, model.AssignmentGenerated, first[0].Status)
	require.Equal(t, 1, first[0].Version)

	err := repo.Assignment.CreateOuting(ctx, []model.Assignment{pair(f, "2024-01-07", 1, 1)})
	require.ErrorIs(t, err, pkgerrors.ErrDuplicate)
	require.ErrorIs(t, err, pkgerrors.ErrConflict)

	items, err := repo.Assignment.ListByGroupAndDate(ctx, f.group.GroupID, "2024-01-07")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Brother)
	require.NotNil(t, items[0].Territory)
}

func TestCreateOuting_ConcurrentDistinctPairsOneWins(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	f := seedGroup(t, repo, 4, 4)

	const workers = 4
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.Assignment.CreateOuting(context.Background(), []model.Assignment{pair(f, "2024-02-04", i, i)})
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, pkgerrors.ErrDuplicate)
	}
	require.Equal(t, 1, succeeded)

	items, err := repo.Assignment.ListByGroupAndDate(context.Background(), f.group.GroupID, "2024-02-04")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestCreateOuting_UnknownGroup(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	f := seedGroup(t, repo, 1, 1)

	a := pair(f, "2024-02-04", 0, 0)
	a.GroupID = "00000000-0000-0000-0000-000000000000"
	err := repo.Assignment.CreateOuting(context.Background(), []model.Assignment{a})
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound), "got %v", err)
}

func TestCreateOuting_UniqueIndexesBlockDoubleBooking(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	f := seedGroup(t, repo, 2, 2)

	err := repo.Assignment.CreateOuting(ctx, []model.Assignment{
		pair(f, "2024-01-07", 0, 0),
		pair(f, "2024-01-07", 0, 1),
	})
	require.ErrorIs(t, err, pkgerrors.ErrDuplicate)

	items, err := repo.Assignment.ListByGroupAndDate(ctx, f.group.GroupID, "2024-01-07")
	require.NoError(t, err)
	require.Empty(t, items, "the whole batch rolls back")
}

func TestListRecentByGroup_MostRecentFirst(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	f := seedGroup(t, repo, 1, 1)

	for _, d := range []string{"2024-01-07", "2024-01-21", "2024-01-14"} {
		require.NoError(t, repo.Assignment.CreateOuting(ctx, []model.Assignment{pair(f, d, 0, 0)}))
	}

	recent, err := repo.Assignment.ListRecentByGroup(ctx, f.group.GroupID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "2024-01-21", recent[0].ServiceDate)
	require.Equal(t, "2024-01-14", recent[1].ServiceDate)
}

func TestAssignment_UpdateOptimisticLock(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	f := seedGroup(t, repo, 2, 1)

	items := []model.Assignment{pair(f, "2024-01-07", 0, 0)}
	require.NoError(t, repo.Assignment.CreateOuting(ctx, items))
	id := items[0].AssignmentID

	copy1, err := repo.Assignment.GetByID(ctx, id)
	require.NoError(t, err)
	copy2, err := repo.Assignment.GetByID(ctx, id)
	require.NoError(t, err)

	copy1.Status = model.AssignmentCompleted
	require.NoError(t, repo.Assignment.Update(ctx, copy1))
	require.Equal(t, 2, copy1.Version)

	copy2.BrotherID = f.brothers[1].BrotherID
	require.ErrorIs(t, repo.Assignment.Update(ctx, copy2), pkgerrors.ErrOptimisticLock)

	final, err := repo.Assignment.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, model.AssignmentCompleted, final.Status)
	require.Equal(t, f.brothers[0].BrotherID, final.BrotherID)
}

func TestAssignment_UpdateDoubleBookingRejected(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	f := seedGroup(t, repo, 2, 2)

	items := []model.Assignment{pair(f, "2024-01-07", 0, 0), pair(f, "2024-01-07", 1, 1)}
	require.NoError(t, repo.Assignment.CreateOuting(ctx, items))

	second, err := repo.Assignment.GetByID(ctx, items[1].AssignmentID)
	require.NoError(t, err)
	second.TerritoryID = f.territories[0].TerritoryID

	require.ErrorIs(t, repo.Assignment.Update(ctx, second), pkgerrors.ErrDuplicate)
}

func TestAssignment_ListAndFind(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	f := seedGroup(t, repo, 2, 2)

	require.NoError(t, repo.Assignment.CreateOuting(ctx, []model.Assignment{pair(f, "2024-01-07", 0, 0)}))
	require.NoError(t, repo.Assignment.CreateOuting(ctx, []model.Assignment{pair(f, "2024-02-04", 1, 1)}))
	require.NoError(t, repo.Assignment.CreateOuting(ctx, []model.Assignment{pair(f, "2024-03-03", 0, 1)}))

	items, total, err := repo.Assignment.List(ctx, repository.AssignmentFilter{
		GroupID: f.group.GroupID,
		From:    "2024-02-01",
	}, 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Equal(t, "2024-03-03", items[0].ServiceDate)

	found, err := repo.Assignment.Find(ctx, repository.AssignmentFilter{BrotherID: f.brothers[0].BrotherID})
	require.NoError(t, err)
	require.Len(t, found, 2)
	require.Equal(t, "2024-01-07", found[0].ServiceDate)
}

func TestAssignment_Delete(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	f := seedGroup(t, repo, 2, 2)

	items := []model.Assignment{pair(f, "2024-01-07", 0, 0), pair(f, "2024-01-07", 1, 1)}
	require.NoError(t, repo.Assignment.CreateOuting(ctx, items))

	require.NoError(t, repo.Assignment.Delete(ctx, items[0].AssignmentID))
	require.ErrorIs(t, repo.Assignment.Delete(ctx, items[0].AssignmentID), gorm.ErrRecordNotFound)

	n, err := repo.Assignment.DeleteByGroupAndDate(ctx, f.group.GroupID, "2024-01-07")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestAssignment_KeepsNamesOfDeletedBrother(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	f := seedGroup(t, repo, 1, 1)

	items := []model.Assignment{pair(f, "2024-01-07", 0, 0)}
	require.NoError(t, repo.Assignment.CreateOuting(ctx, items))
	require.NoError(t, repo.Brother.Delete(ctx, f.brothers[0].BrotherID, ""))

	got, err := repo.Assignment.GetByID(ctx, items[0].AssignmentID)
	require.NoError(t, err)
	require.NotNil(t, got.Brother)
	require.Equal(t, "Irmão 1", got.Brother.FullName)
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	f := seedGroup(t, repo, 0, 0)

	var created *model.Brother
	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		created = &model.Brother{FullName: "Temporário", GroupID: f.group.GroupID, IsActive: true}
		if err := tx.Brother.Create(ctx, created); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	require.EqualError(t, err, "abort")

	_, err = repo.Brother.GetByID(ctx, created.BrotherID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTransaction_Commit(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()
	f := seedGroup(t, repo, 0, 0)

	err := repo.Transaction(ctx, func(tx *repository.Repository) error {
		return tx.Brother.BatchCreate(ctx, []model.Brother{
			{FullName: "A", GroupID: f.group.GroupID, IsActive: true},
			{FullName: "B", GroupID: f.group.GroupID, IsActive: true},
		})
	})
	require.NoError(t, err)

	active, err := repo.Brother.ListActiveByGroup(ctx, f.group.GroupID)
	require.NoError(t, err)
	require.Len(t, active, 2)
}
