package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"campus-voice/backend/internal/model"
	"campus-voice/backend/internal/repository"
	apperrors "campus-voice/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	// roles 供 ReassignCoordinator 变更角色后刷新关联用
	roles map[string]*model.Role
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users: make(map[string]*model.User),
		roles: make(map[string]*model.Role),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = fmt.Sprintf("uid-%d", len(m.users)+1)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	if user.Role == nil {
		user.Role = m.roles[user.RoleID]
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	user.UpdatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var matched []model.User
	for _, u := range m.users {
		if filters != nil {
			if filters.DepartmentID != "" && (u.DepartmentID == nil || *u.DepartmentID != filters.DepartmentID) {
				continue
			}
			if filters.RoleID != "" && u.RoleID != filters.RoleID {
				continue
			}
			if filters.Keyword != "" {
				kw := strings.ToLower(filters.Keyword)
				if !strings.Contains(strings.ToLower(u.Name), kw) &&
					!strings.Contains(strings.ToLower(u.Email), kw) &&
					!strings.Contains(strings.ToLower(u.RegisterNo), kw) {
					continue
				}
			}
		}
		matched = append(matched, *u)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].UserID < matched[j].UserID })

	total := int64(len(matched))
	if offset >= len(matched) {
		return []model.User{}, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockUserRepo) ListByRoleAndDepartment(_ context.Context, roleID, departmentID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.RoleID == roleID && u.DepartmentID != nil && *u.DepartmentID == departmentID {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepo) CountByDepartment(_ context.Context, departmentID string) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.DepartmentID != nil && *u.DepartmentID == departmentID {
			n++
		}
	}
	return n, nil
}

func (m *mockUserRepo) CountByRole(_ context.Context, roleID string) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

func (m *mockUserRepo) ReassignCoordinator(_ context.Context, departmentID, coordinatorRoleID, professorRoleID, candidateID string) error {
	// 事务语义：先确认候选人合格，不合格时不应用任何变更
	candidate, ok := m.users[candidateID]
	if !ok || candidate.RoleID != professorRoleID ||
		candidate.DepartmentID == nil || *candidate.DepartmentID != departmentID {
		return gorm.ErrRecordNotFound
	}

	for _, u := range m.users {
		if u.RoleID == coordinatorRoleID && u.DepartmentID != nil && *u.DepartmentID == departmentID {
			u.RoleID = professorRoleID
			u.Role = m.roles[professorRoleID]
		}
	}
	candidate.RoleID = coordinatorRoleID
	candidate.Role = m.roles[coordinatorRoleID]
	return nil
}

// ── Mock RoleRepository ──

type mockRoleRepo struct {
	roles map[string]*model.Role
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{roles: make(map[string]*model.Role)}
}

func (m *mockRoleRepo) Create(_ context.Context, role *model.Role) error {
	if role.RoleID == "" {
		role.RoleID = "role-" + role.Name
	}
	m.roles[role.RoleID] = role
	return nil
}

func (m *mockRoleRepo) GetByID(_ context.Context, id string) (*model.Role, error) {
	if r, ok := m.roles[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) GetByName(_ context.Context, name string) (*model.Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) List(_ context.Context) ([]model.Role, error) {
	var result []model.Role
	for _, r := range m.roles {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockRoleRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.roles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.roles, id)
	return nil
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	depts map[string]*model.Department
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{depts: make(map[string]*model.Department)}
}

func (m *mockDeptRepo) Create(_ context.Context, dept *model.Department) error {
	if dept.DepartmentID == "" {
		dept.DepartmentID = "dept-" + dept.Name
	}
	m.depts[dept.DepartmentID] = dept
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.depts[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) GetByName(_ context.Context, name string) (*model.Department, error) {
	for _, d := range m.depts {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) List(_ context.Context) ([]model.Department, error) {
	var result []model.Department
	for _, d := range m.depts {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockDeptRepo) Update(_ context.Context, dept *model.Department) error {
	if _, ok := m.depts[dept.DepartmentID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.depts[dept.DepartmentID] = dept
	return nil
}

func (m *mockDeptRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.depts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.depts, id)
	return nil
}

// ── Mock ComplaintRepository ──

type mockComplaintRepo struct {
	complaints map[string]*model.Complaint
	seq        int
}

func newMockComplaintRepo() *mockComplaintRepo {
	return &mockComplaintRepo{complaints: make(map[string]*model.Complaint)}
}

func (m *mockComplaintRepo) Create(_ context.Context, complaint *model.Complaint) error {
	if complaint.ComplaintID == "" {
		m.seq++
		complaint.ComplaintID = fmt.Sprintf("complaint-%d", m.seq)
	}
	if complaint.Version == 0 {
		complaint.Version = 1
	}
	complaint.CreatedAt = time.Now()
	complaint.UpdatedAt = time.Now()
	cp := *complaint
	m.complaints[complaint.ComplaintID] = &cp
	return nil
}

// GetByID 返回副本，模拟每次查询都是独立的数据库读取
func (m *mockComplaintRepo) GetByID(_ context.Context, id string) (*model.Complaint, error) {
	if c, ok := m.complaints[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockComplaintRepo) List(_ context.Context, filters *repository.ComplaintFilters) ([]model.Complaint, error) {
	var result []model.Complaint
	for _, c := range m.complaints {
		if filters != nil {
			if filters.StudentID != "" && c.StudentID != filters.StudentID {
				continue
			}
			if filters.DepartmentID != "" && c.DepartmentID != filters.DepartmentID {
				continue
			}
			if filters.Status != "" && c.Status != filters.Status {
				continue
			}
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *mockComplaintRepo) UpdateStatus(_ context.Context, complaint *model.Complaint, expectedVersion int) error {
	stored, ok := m.complaints[complaint.ComplaintID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Version != expectedVersion {
		return apperrors.ErrOptimisticLock
	}
	stored.Status = complaint.Status
	stored.ResolutionDetail = complaint.ResolutionDetail
	stored.ResolvedAt = complaint.ResolvedAt
	stored.Version = expectedVersion + 1
	stored.UpdatedAt = time.Now()
	complaint.Version = expectedVersion + 1
	return nil
}

func (m *mockComplaintRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.complaints[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.complaints, id)
	return nil
}
