package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User       UserRepository
	Role       RoleRepository
	Department DepartmentRepository
	Complaint  ComplaintRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Role:       NewRoleRepo(db),
		Department: NewDepartmentRepo(db),
		Complaint:  NewComplaintRepo(db),
	}
}
