package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-voice/backend/internal/dto"
	"campus-voice/backend/internal/model"
	"campus-voice/backend/internal/repository"
)

// ── 协调员管理业务错误 ──

var (
	ErrHodNotFound          = errors.New("系主任档案不存在")
	ErrHodNoDepartment      = errors.New("系主任未分配院系")
	ErrRoleNotFound         = errors.New("角色不存在")
	ErrCandidateNotEligible = errors.New("候选人不是本院系教授")
)

// TeamService 协调员管理业务接口
// 维护不变量：任一院系同一时刻至多存在一名协调员
type TeamService interface {
	// AssignCoordinator 系主任任命本院系教授为协调员
	// 降旧任、升新任在同一事务内完成，失败整体回滚
	AssignCoordinator(ctx context.Context, req *dto.AssignCoordinatorRequest, hodID string) error
	// ListCandidates 列出系主任所在院系的全部教授（候选人）
	ListCandidates(ctx context.Context, hodID string) ([]dto.CandidateResponse, error)
}

type teamService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTeamService 创建 TeamService 实例
func NewTeamService(repo *repository.Repository, logger *zap.Logger) TeamService {
	return &teamService{repo: repo, logger: logger}
}

// resolveHodDepartment 解析系主任所在院系
func (s *teamService) resolveHodDepartment(ctx context.Context, hodID string) (string, error) {
	hod, err := s.repo.User.GetByID(ctx, hodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrHodNotFound
		}
		s.logger.Error("查询系主任档案失败", zap.String("hod_id", hodID), zap.Error(err))
		return "", err
	}
	if hod.DepartmentID == nil || *hod.DepartmentID == "" {
		return "", ErrHodNoDepartment
	}
	return *hod.DepartmentID, nil
}

// ────────────────────── AssignCoordinator ──────────────────────

func (s *teamService) AssignCoordinator(ctx context.Context, req *dto.AssignCoordinatorRequest, hodID string) error {
	departmentID, err := s.resolveHodDepartment(ctx, hodID)
	if err != nil {
		return err
	}

	coordinatorRole, err := s.repo.Role.GetByName(ctx, model.RoleCoordinator)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}
	professorRole, err := s.repo.Role.GetByName(ctx, model.RoleProfessor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}

	err = s.repo.User.ReassignCoordinator(ctx, departmentID, coordinatorRole.RoleID, professorRole.RoleID, req.CoordinatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCandidateNotEligible
		}
		s.logger.Error("协调员交接失败",
			zap.String("department_id", departmentID),
			zap.String("candidate_id", req.CoordinatorID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("协调员任命成功",
		zap.String("department_id", departmentID),
		zap.String("coordinator_id", req.CoordinatorID),
	)
	return nil
}

// ────────────────────── ListCandidates ──────────────────────

func (s *teamService) ListCandidates(ctx context.Context, hodID string) ([]dto.CandidateResponse, error) {
	departmentID, err := s.resolveHodDepartment(ctx, hodID)
	if err != nil {
		return nil, err
	}

	professorRole, err := s.repo.Role.GetByName(ctx, model.RoleProfessor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	users, err := s.repo.User.ListByRoleAndDepartment(ctx, professorRole.RoleID, departmentID)
	if err != nil {
		s.logger.Error("查询候选人失败", zap.String("department_id", departmentID), zap.Error(err))
		return nil, err
	}

	result := make([]dto.CandidateResponse, 0, len(users))
	for i := range users {
		u := &users[i]
		c := dto.CandidateResponse{
			ID:    u.UserID,
			Name:  u.Name,
			Email: u.Email,
			Role:  u.RoleName(),
		}
		if u.Department != nil {
			c.Department = u.Department.Name
		}
		result = append(result, c)
	}
	return result, nil
}
