package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"campus-voice/backend/internal/model"
	apperrors "campus-voice/backend/pkg/errors"
)

// ComplaintFilters 投诉可见范围过滤条件
// 由 Service 层根据调用者角色构造，零值字段不参与过滤
type ComplaintFilters struct {
	StudentID    string
	DepartmentID string
	Status       model.ComplaintStatus
}

// ComplaintRepository 投诉数据访问接口
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *model.Complaint) error
	GetByID(ctx context.Context, id string) (*model.Complaint, error)
	List(ctx context.Context, filters *ComplaintFilters) ([]model.Complaint, error)
	// UpdateStatus 以乐观锁方式更新状态字段：
	// version 不匹配（记录已被并发修改）时返回 pkg/errors.ErrOptimisticLock
	UpdateStatus(ctx context.Context, complaint *model.Complaint, expectedVersion int) error
	Delete(ctx context.Context, id string) error
}

// complaintRepo ComplaintRepository 的 GORM 实现
type complaintRepo struct {
	db *gorm.DB
}

// NewComplaintRepo 创建 ComplaintRepository 实例
func NewComplaintRepo(db *gorm.DB) ComplaintRepository {
	return &complaintRepo{db: db}
}

func (r *complaintRepo) Create(ctx context.Context, complaint *model.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

func (r *complaintRepo) GetByID(ctx context.Context, id string) (*model.Complaint, error) {
	var complaint model.Complaint
	err := r.db.WithContext(ctx).
		Preload("Department").
		Where("complaint_id = ?", id).
		First(&complaint).Error
	if err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepo) List(ctx context.Context, filters *ComplaintFilters) ([]model.Complaint, error) {
	db := r.db.WithContext(ctx).Model(&model.Complaint{})
	if filters != nil {
		if filters.StudentID != "" {
			db = db.Where("student_id = ?", filters.StudentID)
		}
		if filters.DepartmentID != "" {
			db = db.Where("department_id = ?", filters.DepartmentID)
		}
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
	}

	var complaints []model.Complaint
	err := db.Preload("Department").
		Order("created_at DESC").
		Find(&complaints).Error
	return complaints, err
}

func (r *complaintRepo) UpdateStatus(ctx context.Context, complaint *model.Complaint, expectedVersion int) error {
	res := r.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Where("complaint_id = ? AND version = ?", complaint.ComplaintID, expectedVersion).
		Updates(map[string]interface{}{
			"status":            complaint.Status,
			"resolution_detail": complaint.ResolutionDetail,
			"resolved_at":       complaint.ResolvedAt,
			"version":           expectedVersion + 1,
			"updated_at":        time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 调用方已确认记录存在，0 行即版本冲突
		return apperrors.ErrOptimisticLock
	}
	complaint.Version = expectedVersion + 1
	return nil
}

func (r *complaintRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).
		Where("complaint_id = ?", id).
		Delete(&model.Complaint{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
