package service

import (
	"go.uber.org/zap"

	"campus-voice/backend/config"
	"campus-voice/backend/internal/repository"
	"campus-voice/backend/pkg/jwt"
	"campus-voice/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	User       UserService
	Role       RoleService
	Department DepartmentService
	Complaint  ComplaintService
	Team       TeamService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:       NewUserService(repo, logger),
		Role:       NewRoleService(repo, logger),
		Department: NewDepartmentService(repo, logger),
		Complaint:  NewComplaintService(repo, logger),
		Team:       NewTeamService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
