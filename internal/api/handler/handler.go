package handler

import "campus-voice/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Department *DepartmentHandler
	Role       *RoleHandler
	Complaint  *ComplaintHandler
	Team       *TeamHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		User:       NewUserHandler(svc.User),
		Department: NewDepartmentHandler(svc.Department),
		Role:       NewRoleHandler(svc.Role),
		Complaint:  NewComplaintHandler(svc.Complaint),
		Team:       NewTeamHandler(svc.Team),
		Export:     NewExportHandler(svc.Export),
	}
}
