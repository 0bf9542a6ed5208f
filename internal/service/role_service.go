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

// ── 角色模块业务错误 ──

var (
	ErrRoleNameExists = errors.New("角色名称已存在")
	ErrRoleInUse      = errors.New("角色下存在用户，无法删除")
)

// RoleService 角色业务接口（参照表维护）
type RoleService interface {
	List(ctx context.Context) ([]dto.RoleResponse, error)
	Create(ctx context.Context, req *dto.CreateRoleRequest) (*dto.RoleResponse, error)
	Delete(ctx context.Context, id string) error
}

type roleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRoleService 创建 RoleService 实例
func NewRoleService(repo *repository.Repository, logger *zap.Logger) RoleService {
	return &roleService{repo: repo, logger: logger}
}

func (s *roleService) List(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := s.repo.Role.List(ctx)
	if err != nil {
		s.logger.Error("查询角色列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		result = append(result, dto.RoleResponse{ID: roles[i].RoleID, Name: roles[i].Name})
	}
	return result, nil
}

func (s *roleService) Create(ctx context.Context, req *dto.CreateRoleRequest) (*dto.RoleResponse, error) {
	if _, err := s.repo.Role.GetByName(ctx, req.Name); err == nil {
		return nil, ErrRoleNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := &model.Role{Name: req.Name}
	if err := s.repo.Role.Create(ctx, role); err != nil {
		s.logger.Error("创建角色失败", zap.Error(err))
		return nil, err
	}
	return &dto.RoleResponse{ID: role.RoleID, Name: role.Name}, nil
}

func (s *roleService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Role.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}

	n, err := s.repo.User.CountByRole(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrRoleInUse
	}

	if err := s.repo.Role.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		s.logger.Error("删除角色失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}
