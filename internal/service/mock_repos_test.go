package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/ray8844/saida-de-campo/internal/model"
	"github.com/ray8844/saida-de-campo/internal/repository"
	pkgerrors "github.com/ray8844/saida-de-campo/pkg/errors"
)

// ── Mock GroupRepository ──

type mockGroupRepo struct {
	groups map[string]*model.Group
	seq    int
}

func newMockGroupRepo() *mockGroupRepo {
	return &mockGroupRepo{groups: make(map[string]*model.Group)}
}

func (m *mockGroupRepo) Create(_ context.Context, group *model.Group) error {
	if group.GroupID == "" {
		m.seq++
		group.GroupID = fmt.Sprintf("g-%d", m.seq)
	}
	m.groups[group.GroupID] = group
	return nil
}

func (m *mockGroupRepo) GetByID(_ context.Context, id string) (*model.Group, error) {
	if g, ok := m.groups[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGroupRepo) List(_ context.Context, status model.GroupStatus) ([]model.Group, error) {
	var result []model.Group
	for _, g := range m.groups {
		if status == "" || g.Status == status {
			result = append(result, *g)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockGroupRepo) Update(_ context.Context, group *model.Group) error {
	m.groups[group.GroupID] = group
	return nil
}

func (m *mockGroupRepo) Delete(_ context.Context, id, _ string) error {
	delete(m.groups, id)
	return nil
}

// ── Mock BrotherRepository ──

type mockBrotherRepo struct {
	brothers map[string]*model.Brother
	seq      int
	// batchErr makes BatchCreate fail
	batchErr error
}

func newMockBrotherRepo() *mockBrotherRepo {
	return &mockBrotherRepo{brothers: make(map[string]*model.Brother)}
}

func (m *mockBrotherRepo) Create(_ context.Context, brother *model.Brother) error {
	if brother.BrotherID == "" {
		m.seq++
		brother.BrotherID = fmt.Sprintf("b-%d", m.seq)
	}
	m.brothers[brother.BrotherID] = brother
	return nil
}

func (m *mockBrotherRepo) BatchCreate(ctx context.Context, brothers []model.Brother) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	for i := range brothers {
		b := brothers[i]
		if err := m.Create(ctx, &b); err != nil {
			return err
		}
		brothers[i].BrotherID = b.BrotherID
	}
	return nil
}

func (m *mockBrotherRepo) GetByID(_ context.Context, id string) (*model.Brother, error) {
	if b, ok := m.brothers[id]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBrotherRepo) List(_ context.Context, filter repository.BrotherFilter, offset, limit int) ([]model.Brother, int64, error) {
	var all []model.Brother
	for _, b := range m.brothers {
		if filter.GroupID != "" && b.GroupID != filter.GroupID {
			continue
		}
		if !filter.IncludeInactive && !b.IsActive {
			continue
		}
		if filter.Keyword != "" && !strings.Contains(strings.ToLower(b.FullName), strings.ToLower(filter.Keyword)) {
			continue
		}
		all = append(all, *b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FullName < all[j].FullName })
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockBrotherRepo) ListActiveByGroup(_ context.Context, groupID string) ([]model.Brother, error) {
	var result []model.Brother
	for _, b := range m.brothers {
		if b.GroupID == groupID && b.IsActive {
			result = append(result, *b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FullName < result[j].FullName })
	return result, nil
}

func (m *mockBrotherRepo) Update(_ context.Context, brother *model.Brother) error {
	m.brothers[brother.BrotherID] = brother
	return nil
}

func (m *mockBrotherRepo) Delete(_ context.Context, id, _ string) error {
	delete(m.brothers, id)
	return nil
}

// ── Mock TerritoryRepository ──

type mockTerritoryRepo struct {
	territories map[string]*model.Territory
	seq         int
}

func newMockTerritoryRepo() *mockTerritoryRepo {
	return &mockTerritoryRepo{territories: make(map[string]*model.Territory)}
}

func (m *mockTerritoryRepo) Create(_ context.Context, territory *model.Territory) error {
	if territory.TerritoryID == "" {
		m.seq++
		territory.TerritoryID = fmt.Sprintf("t-%d", m.seq)
	}
	m.territories[territory.TerritoryID] = territory
	return nil
}

func (m *mockTerritoryRepo) GetByID(_ context.Context, id string) (*model.Territory, error) {
	if t, ok := m.territories[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTerritoryRepo) List(_ context.Context, filter repository.TerritoryFilter, offset, limit int) ([]model.Territory, int64, error) {
	var all []model.Territory
	for _, t := range m.territories {
		if filter.GroupID != "" && t.GroupID != filter.GroupID {
			continue
		}
		if !filter.IncludeInactive && !t.IsActive {
			continue
		}
		if filter.Keyword != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(filter.Keyword)) {
			continue
		}
		all = append(all, *t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockTerritoryRepo) ListActiveByGroup(_ context.Context, groupID string) ([]model.Territory, error) {
	var result []model.Territory
	for _, t := range m.territories {
		if t.GroupID == groupID && t.IsActive {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockTerritoryRepo) Update(_ context.Context, territory *model.Territory) error {
	m.territories[territory.TerritoryID] = territory
	return nil
}

func (m *mockTerritoryRepo) Delete(_ context.Context, id, _ string) error {
	delete(m.territories, id)
	return nil
}

// ── Mock AssignmentRepository ──

// mockAssignmentRepo keeps the uniqueness and version rules of the real
// store and attaches names from the roster mocks like the preloads do.
type mockAssignmentRepo struct {
	mu          sync.Mutex
	items       map[string]*model.Assignment
	seq         int
	brothers    *mockBrotherRepo
	territories *mockTerritoryRepo
	// createCalls counts CreateOuting invocations
	createCalls int
}

func newMockAssignmentRepo(brothers *mockBrotherRepo, territories *mockTerritoryRepo) *mockAssignmentRepo {
	return &mockAssignmentRepo{
		items:       make(map[string]*model.Assignment),
		brothers:    brothers,
		territories: territories,
	}
}

func (m *mockAssignmentRepo) CreateOuting(_ context.Context, items []model.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	if len(items) == 0 {
		return nil
	}
	for _, a := range m.items {
		if a.GroupID == items[0].GroupID && a.ServiceDate == items[0].ServiceDate {
			return pkgerrors.ErrDuplicate
		}
	}
	for i := range items {
		m.seq++
		a := items[i]
		if a.AssignmentID == "" {
			a.AssignmentID = fmt.Sprintf("a-%d", m.seq)
		}
		if a.Status == "" {
			a.Status = model.AssignmentGenerated
		}
		a.Version = 1
		items[i] = a
		stored := a
		m.items[a.AssignmentID] = &stored
	}
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := m.named(*a)
	return &out, nil
}

func (m *mockAssignmentRepo) ListByGroupAndDate(_ context.Context, groupID, date string) ([]model.Assignment, error) {
	return m.collect(repository.AssignmentFilter{GroupID: groupID, From: date, To: date}, false), nil
}

func (m *mockAssignmentRepo) ListRecentByGroup(_ context.Context, groupID string, limit int) ([]model.Assignment, error) {
	all := m.collect(repository.AssignmentFilter{GroupID: groupID}, true)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockAssignmentRepo) List(_ context.Context, filter repository.AssignmentFilter, offset, limit int) ([]model.Assignment, int64, error) {
	all := m.collect(filter, true)
	return page(all, offset, limit), int64(len(all)), nil
}

func (m *mockAssignmentRepo) Find(_ context.Context, filter repository.AssignmentFilter) ([]model.Assignment, error) {
	return m.collect(filter, false), nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, a *model.Assignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.items[a.AssignmentID]
	if !ok || stored.Version != a.Version {
		return pkgerrors.ErrOptimisticLock
	}
	for _, other := range m.items {
		if other.AssignmentID == a.AssignmentID || other.GroupID != a.GroupID || other.ServiceDate != a.ServiceDate {
			continue
		}
		if other.BrotherID == a.BrotherID || other.TerritoryID == a.TerritoryID {
			return pkgerrors.ErrDuplicate
		}
	}
	a.Version++
	stored.BrotherID = a.BrotherID
	stored.TerritoryID = a.TerritoryID
	stored.Status = a.Status
	stored.Version = a.Version
	stored.UpdatedBy = a.UpdatedBy
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockAssignmentRepo) DeleteByGroupAndDate(_ context.Context, groupID, date string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, a := range m.items {
		if a.GroupID == groupID && a.ServiceDate == date {
			delete(m.items, id)
			n++
		}
	}
	return n, nil
}

// add stores an assignment directly, for history fixtures.
func (m *mockAssignmentRepo) add(a model.Assignment) *model.Assignment {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if a.AssignmentID == "" {
		a.AssignmentID = fmt.Sprintf("a-%d", m.seq)
	}
	if a.Status == "" {
		a.Status = model.AssignmentGenerated
	}
	if a.Version == 0 {
		a.Version = 1
	}
	m.items[a.AssignmentID] = &a
	return &a
}

func (m *mockAssignmentRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *mockAssignmentRepo) collect(f repository.AssignmentFilter, newestFirst bool) []model.Assignment {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Assignment
	for _, a := range m.items {
		if f.GroupID != "" && a.GroupID != f.GroupID {
			continue
		}
		if f.BrotherID != "" && a.BrotherID != f.BrotherID {
			continue
		}
		if f.TerritoryID != "" && a.TerritoryID != f.TerritoryID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.From != "" && a.ServiceDate < f.From {
			continue
		}
		if f.To != "" && a.ServiceDate > f.To {
			continue
		}
		out = append(out, m.named(*a))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ServiceDate != out[j].ServiceDate {
			if newestFirst {
				return out[i].ServiceDate > out[j].ServiceDate
			}
			return out[i].ServiceDate < out[j].ServiceDate
		}
		return out[i].AssignmentID < out[j].AssignmentID
	})
	return out
}

func (m *mockAssignmentRepo) named(a model.Assignment) model.Assignment {
	if b, ok := m.brothers.brothers[a.BrotherID]; ok {
		a.Brother = b
	}
	if t, ok := m.territories.territories[a.TerritoryID]; ok {
		a.Territory = t
	}
	return a
}

func page[T any](all []T, offset, limit int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// ── Test fixture ──

type mockRepos struct {
	groups      *mockGroupRepo
	brothers    *mockBrotherRepo
	territories *mockTerritoryRepo
	assignments *mockAssignmentRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		groups:      newMockGroupRepo(),
		brothers:    newMockBrotherRepo(),
		territories: newMockTerritoryRepo(),
	}
	m.assignments = newMockAssignmentRepo(m.brothers, m.territories)
	repo := &repository.Repository{
		Group:      m.groups,
		Brother:    m.brothers,
		Territory:  m.territories,
		Assignment: m.assignments,
	}
	return repo, m
}

// seed adds an active group with nb brothers and nt territories, ids
// "<group>-b1".. and "<group>-t1"..
func (m *mockRepos) seed(groupID string, nb, nt int) {
	m.groups.groups[groupID] = &model.Group{GroupID: groupID, Name: "Grupo " + groupID, Status: model.GroupActive}
	for i := 1; i <= nb; i++ {
		id := fmt.Sprintf("%s-b%d", groupID, i)
		m.brothers.brothers[id] = &model.Brother{BrotherID: id, FullName: fmt.Sprintf("Irmão %d", i), GroupID: groupID, IsActive: true}
	}
	for i := 1; i <= nt; i++ {
		id := fmt.Sprintf("%s-t%d", groupID, i)
		m.territories.territories[id] = &model.Territory{TerritoryID: id, Name: fmt.Sprintf("Território %d", i), GroupID: groupID, IsActive: true}
	}
}
