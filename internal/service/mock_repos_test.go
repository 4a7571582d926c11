package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fosms/backend/config"
	"fosms/backend/internal/model"
	"fosms/backend/internal/repository"
	pkgerrors "fosms/backend/pkg/errors"
)

// ── Mock UserRepository ──
// 按 PostgreSQL 的唯一约束与乐观锁语义模拟；返回副本，避免调用方直接改到存储

type mockUserRepo struct {
	mu    sync.RWMutex
	users map[string]*model.User // key: user_id
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return &repository.DuplicateError{Constraint: repository.ConstraintUserEmail}
		}
		if u.EmployeeID == user.EmployeeID {
			return &repository.DuplicateError{Constraint: repository.ConstraintUserEmployeeID}
		}
	}
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	user.Version = 1

	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmployeeID(_ context.Context, employeeID string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.EmployeeID == employeeID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.users[user.UserID]
	if !ok || stored.Version != user.Version {
		return pkgerrors.ErrOptimisticLock
	}
	for id, u := range m.users {
		if id != user.UserID && u.Email == user.Email {
			return &repository.DuplicateError{Constraint: repository.ConstraintUserEmail}
		}
	}

	user.Version++
	user.UpdatedAt = time.Now()
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filter repository.UserFilter) ([]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []model.User
	for _, u := range m.users {
		if filter.Role != nil && u.Role != *filter.Role {
			continue
		}
		if filter.Department != "" && u.Department != filter.Department {
			continue
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockUserRepo) ListColleagues(_ context.Context, excludeID string) ([]model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []model.User
	for _, u := range m.users {
		if u.UserID != excludeID && u.Status == model.UserStatusActive {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// lookup 供其他 mock 模拟外键与联表
func (m *mockUserRepo) lookup(id string) *model.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp
	}
	return nil
}

// ── Mock ShiftAssignmentRepository ──

type mockShiftRepo struct {
	mu    sync.Mutex
	users *mockUserRepo
	items []model.ShiftAssignment
}

func newMockShiftRepo(users *mockUserRepo) *mockShiftRepo {
	return &mockShiftRepo{users: users}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (m *mockShiftRepo) Create(_ context.Context, a *model.ShiftAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.users.lookup(a.UserID) == nil {
		return &repository.ForeignKeyError{Constraint: "shift_assignments_user_id_fkey"}
	}
	for _, existing := range m.items {
		if existing.UserID == a.UserID && sameDay(existing.ShiftDate, a.ShiftDate) {
			return &repository.DuplicateError{Constraint: repository.ConstraintShiftUserDate}
		}
	}
	if a.ShiftAssignmentID == "" {
		a.ShiftAssignmentID = uuid.NewString()
	}
	a.CreatedAt = time.Now()
	cp := *a
	cp.User = nil
	m.items = append(m.items, cp)
	return nil
}

func (m *mockShiftRepo) withUser(a model.ShiftAssignment) model.ShiftAssignment {
	a.User = m.users.lookup(a.UserID)
	return a
}

func (m *mockShiftRepo) ListByUser(_ context.Context, userID string) ([]model.ShiftAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.ShiftAssignment
	for _, a := range m.items {
		if a.UserID == userID {
			result = append(result, m.withUser(a))
		}
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].ShiftDate.Before(result[j].ShiftDate) })
	return result, nil
}

func (m *mockShiftRepo) ListAll(_ context.Context, filter repository.ShiftFilter) ([]model.ShiftAssignment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.ShiftAssignment
	for _, a := range m.items {
		if filter.From != nil && a.ShiftDate.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.ShiftDate.After(*filter.To) {
			continue
		}
		result = append(result, m.withUser(a))
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].ShiftDate.After(result[j].ShiftDate) })
	return result, nil
}

func (m *mockShiftRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// ── Mock SwapRequestRepository ──

type mockSwapRepo struct {
	mu    sync.Mutex
	users *mockUserRepo
	items map[string]*model.SwapRequest
	seq   int
}

func newMockSwapRepo(users *mockUserRepo) *mockSwapRepo {
	return &mockSwapRepo{users: users, items: make(map[string]*model.SwapRequest)}
}

func (m *mockSwapRepo) Create(_ context.Context, req *model.SwapRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if req.ColleagueID != nil && m.users.lookup(*req.ColleagueID) == nil {
		return &repository.ForeignKeyError{Constraint: "swap_requests_colleague_id_fkey"}
	}
	if req.SwapRequestID == "" {
		req.SwapRequestID = uuid.NewString()
	}
	// 保证创建时间严格递增，便于断言排序
	m.seq++
	req.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	req.UpdatedAt = req.CreatedAt

	cp := *req
	cp.Requester, cp.Colleague = nil, nil
	m.items[req.SwapRequestID] = &cp
	return nil
}

func (m *mockSwapRepo) joined(r model.SwapRequest) model.SwapRequest {
	r.Requester = m.users.lookup(r.RequesterID)
	if r.ColleagueID != nil {
		r.Colleague = m.users.lookup(*r.ColleagueID)
	}
	return r
}

func (m *mockSwapRepo) GetByID(_ context.Context, id string) (*model.SwapRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.items[id]; ok {
		out := m.joined(*r)
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSwapRepo) list(keep func(*model.SwapRequest) bool) []model.SwapRequest {
	var result []model.SwapRequest
	for _, r := range m.items {
		if keep(r) {
			result = append(result, m.joined(*r))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

func (m *mockSwapRepo) ListByRequester(_ context.Context, requesterID string) ([]model.SwapRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(r *model.SwapRequest) bool { return r.RequesterID == requesterID }), nil
}

func (m *mockSwapRepo) ListAll(_ context.Context, status *model.SwapStatus) ([]model.SwapRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.list(func(r *model.SwapRequest) bool { return status == nil || r.Status == *status }), nil
}

func (m *mockSwapRepo) Resolve(_ context.Context, id string, res repository.Resolution) (*model.SwapRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if r.Status != model.SwapStatusPending {
		return nil, repository.ErrNotPending
	}
	at := res.ResolvedAt
	by := res.ResolvedBy
	r.Status = res.Status
	r.AdminNotes = res.AdminNotes
	r.ResolvedAt = &at
	r.ResolvedBy = &by

	out := m.joined(*r)
	return &out, nil
}

// ── 测试辅助 ──

type testRepos struct {
	repo  *repository.Repository
	users *mockUserRepo
	shift *mockShiftRepo
	swap  *mockSwapRepo
}

func newTestRepos() *testRepos {
	users := newMockUserRepo()
	shift := newMockShiftRepo(users)
	swap := newMockSwapRepo(users)
	return &testRepos{
		repo: &repository.Repository{
			User:            users,
			ShiftAssignment: shift,
			SwapRequest:     swap,
		},
		users: users,
		shift: shift,
		swap:  swap,
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Database: config.DatabaseConfig{Timezone: "UTC"},
		Auth: config.AuthConfig{
			JWTSecret:      "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL: 24 * time.Hour,
			BcryptCost:     4, // bcrypt.MinCost，加快测试
		},
	}
}

// seedUser 直接写入一名用户并返回
func seedUser(t *testing.T, users *mockUserRepo, name, email string, role model.Role) *model.User {
	t.Helper()
	u := &model.User{
		EmployeeID:   "EMP-" + name,
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		Department:   model.DefaultDepartment,
		CurrentShift: model.DefaultCurrentShift,
		Status:       model.UserStatusActive,
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("准备用户失败: %v", err)
	}
	return u
}
