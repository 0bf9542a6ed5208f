package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-voice/backend/internal/dto"
	"campus-voice/backend/internal/service"
	"campus-voice/backend/pkg/response"
)

// TeamHandler 协调员管理 HTTP 处理器
type TeamHandler struct {
	teamSvc service.TeamService
}

// NewTeamHandler 创建 TeamHandler
func NewTeamHandler(teamSvc service.TeamService) *TeamHandler {
	return &TeamHandler{teamSvc: teamSvc}
}

// ListCandidates 列出本院系协调员候选人（教授）
// GET /api/v1/team-manage
func (h *TeamHandler) ListCandidates(c *gin.Context) {
	hodID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.teamSvc.ListCandidates(c.Request.Context(), hodID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHodNotFound):
			response.NotFound(c, 15001, "系主任档案不存在")
		case errors.Is(err, service.ErrHodNoDepartment):
			response.NotFound(c, 15002, "系主任未分配院系")
		case errors.Is(err, service.ErrRoleNotFound):
			response.NotFound(c, 15003, "角色不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// AssignCoordinator 任命协调员
// PUT /api/v1/team-manage
func (h *TeamHandler) AssignCoordinator(c *gin.Context) {
	hodID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AssignCoordinatorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.teamSvc.AssignCoordinator(c.Request.Context(), &req, hodID); err != nil {
		switch {
		case errors.Is(err, service.ErrHodNotFound):
			response.NotFound(c, 15001, "系主任档案不存在")
		case errors.Is(err, service.ErrHodNoDepartment):
			response.NotFound(c, 15002, "系主任未分配院系")
		case errors.Is(err, service.ErrRoleNotFound):
			response.NotFound(c, 15003, "角色不存在")
		case errors.Is(err, service.ErrCandidateNotEligible):
			response.NotFound(c, 15004, "候选人不是本院系教授")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, gin.H{"message": "协调员任命成功"})
}
