//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ray8844/saida-de-campo/internal/model"
	"github.com/ray8844/saida-de-campo/internal/repository"
	"github.com/ray8844/saida-de-campo/pkg/database"
	pkgerrors "github.com/ray8844/saida-de-campo/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// PostgreSQL setup (schema from the embedded migrations)
// ═══════════════════════════════════════════════════════════

var pgDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=postgres dbname=saida_de_campo_test sslmode=disable TimeZone=UTC"
	}

	var err error
	pgDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect test database: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := pgDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "get sql.DB: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func cleanupGroup(groupID string) {
	pgDB.Exec("DELETE FROM assignments WHERE group_id = ?", groupID)
	pgDB.Exec("DELETE FROM brothers WHERE group_id = ?", groupID)
	pgDB.Exec("DELETE FROM territories WHERE group_id = ?", groupID)
	pgDB.Exec("DELETE FROM groups WHERE group_id = ?", groupID)
}

// ═══════════════════════════════════════════════════════════
// Test: concurrent outing creation
// ═══════════════════════════════════════════════════════════

func TestPostgres_ConcurrentCreateOutingOneWins(t *testing.T) {
	repo := repository.NewRepository(pgDB)
	f := seedGroup(t, repo, 4, 4)
	defer cleanupGroup(f.group.GroupID)

	const workers = 4
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := repo.Assignment.CreateOuting(context.Background(), []model.Assignment{pair(f, "2024-05-05", i, i)})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case pkgerrors.KindOf(err) == pkgerrors.ErrConflict:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	items, err := repo.Assignment.ListByGroupAndDate(context.Background(), f.group.GroupID, "2024-05-05")
	require.NoError(t, err)
	// Every worker picked a different pair, so only the group row lock
	// keeps the later ones out.
	require.Equal(t, 1, succeeded)
	require.Equal(t, workers-1, conflicts)
	require.Len(t, items, 1)
}

func TestPostgres_UniqueIndexes(t *testing.T) {
	repo := repository.NewRepository(pgDB)
	f := seedGroup(t, repo, 2, 2)
	defer cleanupGroup(f.group.GroupID)

	err := repo.Assignment.CreateOuting(context.Background(), []model.Assignment{
		pair(f, "2024-05-12", 0, 0),
		pair(f, "2024-05-12", 1, 0),
	})
	require.ErrorIs(t, err, pkgerrors.ErrDuplicate)
}
