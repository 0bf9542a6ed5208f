package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-voice/backend/internal/dto"
	"campus-voice/backend/internal/model"
	"campus-voice/backend/internal/repository"
)

// ── 投诉模块业务错误 ──

var (
	ErrComplaintNotFound     = errors.New("投诉不存在")
	ErrComplaintAccessDenied = errors.New("无权访问该投诉")
	ErrTransitionDenied      = errors.New("当前角色不允许执行该状态变更")
	ErrResolutionRequired    = errors.New("处理意见不能为空")
	ErrStudentNoDepartment   = errors.New("学生未分配院系，无法提交投诉")
)

// Caller 从登录态解析出的调用者身份
// 角色与院系均来自已验证的 JWT 声明，绝不取自请求参数
type Caller struct {
	UserID       string
	Role         string
	DepartmentID string
}

// allowedTransitions 状态转换矩阵：角色 → 当前状态 → 允许的目标状态
// 管理员不在矩阵中，单独放行到 {Forwarded, Resolved, Rejected}
var allowedTransitions = map[string]map[model.ComplaintStatus][]model.ComplaintStatus{
	model.RoleHod: {
		model.StatusPending: {model.StatusForwarded, model.StatusResolved},
	},
	model.RoleCoordinator: {
		model.StatusForwarded: {model.StatusResolved, model.StatusRejected},
	},
}

// canTransition 判定 (角色, 当前状态, 目标状态) 三元组是否允许
func canTransition(role string, from, to model.ComplaintStatus) bool {
	if role == model.RoleAdmin {
		return to == model.StatusForwarded || to == model.StatusResolved || to == model.StatusRejected
	}
	for _, t := range allowedTransitions[role][from] {
		if t == to {
			return true
		}
	}
	return false
}

// visibleComplaintFilters 按角色构造可见范围过滤条件
//   - student     → 仅本人提交的投诉
//   - hod         → 本院系 Pending
//   - coordinator → 本院系 Forwarded
//   - admin       → 全部
//   - 其他角色    → 无投诉可见范围
func visibleComplaintFilters(caller *Caller) (*repository.ComplaintFilters, error) {
	switch caller.Role {
	case model.RoleStudent:
		return &repository.ComplaintFilters{StudentID: caller.UserID}, nil
	case model.RoleHod:
		if caller.DepartmentID == "" {
			return nil, ErrComplaintAccessDenied
		}
		return &repository.ComplaintFilters{
			DepartmentID: caller.DepartmentID,
			Status:       model.StatusPending,
		}, nil
	case model.RoleCoordinator:
		if caller.DepartmentID == "" {
			return nil, ErrComplaintAccessDenied
		}
		return &repository.ComplaintFilters{
			DepartmentID: caller.DepartmentID,
			Status:       model.StatusForwarded,
		}, nil
	case model.RoleAdmin:
		return &repository.ComplaintFilters{}, nil
	default:
		return nil, ErrComplaintAccessDenied
	}
}

// ComplaintService 投诉业务接口
type ComplaintService interface {
	Create(ctx context.Context, req *dto.CreateComplaintRequest, caller *Caller) (*dto.ComplaintResponse, error)
	List(ctx context.Context, caller *Caller) ([]dto.ComplaintResponse, error)
	UpdateStatus(ctx context.Context, id string, req *dto.UpdateComplaintStatusRequest, caller *Caller) (*dto.ComplaintResponse, error)
	Delete(ctx context.Context, id string, caller *Caller) error
	Stats(ctx context.Context, caller *Caller) (*dto.ComplaintStatsResponse, error)
}

type complaintService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewComplaintService 创建 ComplaintService 实例
func NewComplaintService(repo *repository.Repository, logger *zap.Logger) ComplaintService {
	return &complaintService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *complaintService) Create(ctx context.Context, req *dto.CreateComplaintRequest, caller *Caller) (*dto.ComplaintResponse, error) {
	if caller.Role != model.RoleStudent {
		return nil, ErrComplaintAccessDenied
	}

	// 提交人信息从登录用户的档案读取，防止伪造他人身份/院系
	student, err := s.repo.User.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询提交人档案失败", zap.Error(err))
		return nil, err
	}
	if student.DepartmentID == nil || *student.DepartmentID == "" {
		return nil, ErrStudentNoDepartment
	}

	complaint := &model.Complaint{
		Title:        req.Title,
		Description:  req.Description,
		Category:     model.ComplaintCategory(req.Category),
		Priority:     model.ComplaintPriority(req.Priority),
		Status:       model.StatusPending,
		StudentID:    student.UserID,
		StudentName:  student.Name,
		StudentEmail: student.Email,
		DepartmentID: *student.DepartmentID,
	}

	if err := s.repo.Complaint.Create(ctx, complaint); err != nil {
		s.logger.Error("创建投诉失败", zap.Error(err))
		return nil, err
	}

	// 重新加载以获取关联院系
	created, err := s.repo.Complaint.GetByID(ctx, complaint.ComplaintID)
	if err != nil {
		return nil, err
	}

	return toComplaintResponse(created), nil
}

// ────────────────────── List ──────────────────────

func (s *complaintService) List(ctx context.Context, caller *Caller) ([]dto.ComplaintResponse, error) {
	filters, err := visibleComplaintFilters(caller)
	if err != nil {
		return nil, err
	}

	complaints, err := s.repo.Complaint.List(ctx, filters)
	if err != nil {
		s.logger.Error("查询投诉列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		result = append(result, *toComplaintResponse(&complaints[i]))
	}
	return result, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *complaintService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateComplaintStatusRequest, caller *Caller) (*dto.ComplaintResponse, error) {
	target := model.ComplaintStatus(req.Status)
	if !target.Valid() {
		return nil, ErrTransitionDenied
	}

	complaint, err := s.repo.Complaint.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrComplaintNotFound
		}
		s.logger.Error("查询投诉失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// 系主任/协调员只能处理本院系投诉
	if caller.Role == model.RoleHod || caller.Role == model.RoleCoordinator {
		if caller.DepartmentID == "" || complaint.DepartmentID != caller.DepartmentID {
			return nil, ErrComplaintAccessDenied
		}
	}

	if !canTransition(caller.Role, complaint.Status, target) {
		return nil, ErrTransitionDenied
	}

	// 进入终态必须附带非空处理意见；离开终态（管理员重新转办）清空处理信息
	if target.Terminal() {
		detail := strings.TrimSpace(req.ResolutionDetail)
		if detail == "" {
			return nil, ErrResolutionRequired
		}
		now := time.Now()
		complaint.ResolutionDetail = &detail
		complaint.ResolvedAt = &now
	} else {
		complaint.ResolutionDetail = nil
		complaint.ResolvedAt = nil
	}
	complaint.Status = target

	if err := s.repo.Complaint.UpdateStatus(ctx, complaint, complaint.Version); err != nil {
		s.logger.Error("更新投诉状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toComplaintResponse(complaint), nil
}

// ────────────────────── Delete ──────────────────────

func (s *complaintService) Delete(ctx context.Context, id string, caller *Caller) error {
	if caller.Role != model.RoleAdmin {
		return ErrComplaintAccessDenied
	}

	if err := s.repo.Complaint.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrComplaintNotFound
		}
		s.logger.Error("删除投诉失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Stats ──────────────────────

func (s *complaintService) Stats(ctx context.Context, caller *Caller) (*dto.ComplaintStatsResponse, error) {
	filters, err := visibleComplaintFilters(caller)
	if err != nil {
		return nil, err
	}

	complaints, err := s.repo.Complaint.List(ctx, filters)
	if err != nil {
		s.logger.Error("查询投诉统计失败", zap.Error(err))
		return nil, err
	}

	stats := &dto.ComplaintStatsResponse{Total: len(complaints)}
	for i := range complaints {
		switch complaints[i].Status {
		case model.StatusPending:
			stats.Pending++
		case model.StatusForwarded:
			stats.Forwarded++
		case model.StatusResolved:
			stats.Resolved++
		case model.StatusRejected:
			stats.Rejected++
		}
		switch complaints[i].Category {
		case model.CategoryAcademic:
			stats.Categories.Academic++
		case model.CategoryFacilities:
			stats.Categories.Facilities++
		case model.CategoryStaff:
			stats.Categories.Staff++
		case model.CategoryOther:
			stats.Categories.Other++
		}
	}
	return stats, nil
}

// ── 响应转换 ──

func toComplaintResponse(c *model.Complaint) *dto.ComplaintResponse {
	resp := &dto.ComplaintResponse{
		ID:           c.ComplaintID,
		Title:        c.Title,
		Description:  c.Description,
		Category:     string(c.Category),
		Priority:     string(c.Priority),
		Status:       string(c.Status),
		StudentID:    c.StudentID,
		StudentName:  c.StudentName,
		StudentEmail: c.StudentEmail,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.Format(time.RFC3339),
	}
	if c.Department != nil {
		resp.Department = &dto.DepartmentResponse{
			ID:   c.Department.DepartmentID,
			Name: c.Department.Name,
		}
	}
	if c.ResolutionDetail != nil {
		resp.ResolutionDetail = *c.ResolutionDetail
	}
	if c.ResolvedAt != nil {
		resp.ResolvedAt = c.ResolvedAt.Format(time.RFC3339)
	}
	return resp
}
