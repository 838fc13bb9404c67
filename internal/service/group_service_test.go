package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/ray8844/saida-de-campo/internal/dto"
	"github.com/ray8844/saida-de-campo/internal/model"
	pkgerrors "github.com/ray8844/saida-de-campo/pkg/errors"
)

func setupTestGroupService() (GroupService, *mockRepos) {
	repo, mocks := newMockRepos()
	return NewGroupService(repo, zap.NewNop()), mocks
}

func TestGroupService_Create_Success(t *testing.T) {
	svc, _ := setupTestGroupService()

	result, err := svc.Create(context.Background(), &dto.CreateGroupRequest{Name: "Grupo Centro"}, "admin-1")
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if result.ID == "" {
		t.Error("expected an id")
	}
	if result.Status != string(model.GroupActive) {
		t.Errorf("expected status active, got %s", result.Status)
	}
}

func TestGroupService_GetByID_NotFound(t *testing.T) {
	svc, _ := setupTestGroupService()

	_, err := svc.GetByID(context.Background(), "missing")
	if !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Errorf("expected NotFound kind, got %v", err)
	}
}

func TestGroupService_List_FilterByStatus(t *testing.T) {
	svc, mocks := setupTestGroupService()
	mocks.seed("g1", 0, 0)
	mocks.seed("g2", 0, 0)
	mocks.groups.groups["g2"].Status = model.GroupInactive

	all, err := svc.List(context.Background(), &dto.GroupListRequest{})
	if err != nil {
		t.Fatalf("List should succeed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 groups, got %d", len(all))
	}

	inactive, _ := svc.List(context.Background(), &dto.GroupListRequest{Status: "inactive"})
	if len(inactive) != 1 || inactive[0].ID != "g2" {
		t.Errorf("expected only g2, got %+v", inactive)
	}
}

func TestGroupService_Update(t *testing.T) {
	svc, mocks := setupTestGroupService()
	mocks.seed("g1", 0, 0)

	name := "Grupo Norte"
	status := "inactive"
	result, err := svc.Update(context.Background(), "g1", &dto.UpdateGroupRequest{Name: &name, Status: &status}, "admin-1")
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if result.Name != name || result.Status != status {
		t.Errorf("unexpected result %+v", result)
	}

	bad := "archived"
	_, err = svc.Update(context.Background(), "g1", &dto.UpdateGroupRequest{Status: &bad}, "")
	if !errors.Is(err, pkgerrors.ErrValidation) {
		t.Errorf("expected Validation, got %v", err)
	}
}

func TestGroupService_Delete(t *testing.T) {
	svc, mocks := setupTestGroupService()
	mocks.seed("g1", 0, 0)

	if err := svc.Delete(context.Background(), "g1", "admin-1"); err != nil {
		t.Fatalf("Delete should succeed: %v", err)
	}
	if _, ok := mocks.groups.groups["g1"]; ok {
		t.Error("group should be gone")
	}
	if err := svc.Delete(context.Background(), "g1", "admin-1"); !errors.Is(err, ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}
}
