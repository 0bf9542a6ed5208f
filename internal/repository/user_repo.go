package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-voice/backend/internal/model"
)

// UserListFilters 用户列表查询条件
type UserListFilters struct {
	DepartmentID string
	RoleID       string
	Keyword      string // 模糊匹配姓名/邮箱/学号
}

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters *UserListFilters, offset, limit int) ([]model.User, int64, error)
	ListByRoleAndDepartment(ctx context.Context, roleID, departmentID string) ([]model.User, error)
	CountByDepartment(ctx context.Context, departmentID string) (int64, error)
	CountByRole(ctx context.Context, roleID string) (int64, error)
	// ReassignCoordinator 在单个事务内完成协调员交接：
	// 先将院系内现任协调员降为教授，再将候选人提升为协调员；
	// 候选人不是该院系教授时整个事务回滚并返回 gorm.ErrRecordNotFound
	ReassignCoordinator(ctx context.Context, departmentID, coordinatorRoleID, professorRoleID, candidateID string) error
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Department").
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Department").
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		Delete(&model.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepo) List(ctx context.Context, filters *UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.db.WithContext(ctx).Model(&model.User{})
	if filters != nil {
		if filters.DepartmentID != "" {
			db = db.Where("department_id = ?", filters.DepartmentID)
		}
		if filters.RoleID != "" {
			db = db.Where("role_id = ?", filters.RoleID)
		}
		if filters.Keyword != "" {
			kw := "%" + filters.Keyword + "%"
			db = db.Where("name ILIKE ? OR email ILIKE ? OR register_no ILIKE ?", kw, kw, kw)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Role").Preload("Department").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepo) ListByRoleAndDepartment(ctx context.Context, roleID, departmentID string) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Preload("Role").
		Preload("Department").
		Where("role_id = ? AND department_id = ?", roleID, departmentID).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *userRepo) CountByDepartment(ctx context.Context, departmentID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("department_id = ?", departmentID).
		Count(&n).Error
	return n, err
}

func (r *userRepo) CountByRole(ctx context.Context, roleID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("role_id = ?", roleID).
		Count(&n).Error
	return n, err
}

func (r *userRepo) ReassignCoordinator(ctx context.Context, departmentID, coordinatorRoleID, professorRoleID, candidateID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. 现任协调员降为教授（可能为 0 行：首次任命）
		if err := tx.Model(&model.User{}).
			Where("role_id = ? AND department_id = ?", coordinatorRoleID, departmentID).
			Update("role_id", professorRoleID).Error; err != nil {
			return err
		}

		// 2. 候选人提升为协调员；条件限定其必须是本院系教授
		res := tx.Model(&model.User{}).
			Where("user_id = ? AND role_id = ? AND department_id = ?", candidateID, professorRoleID, departmentID).
			Update("role_id", coordinatorRoleID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
