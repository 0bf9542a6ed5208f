package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-voice/backend/internal/dto"
	"campus-voice/backend/internal/service"
	"campus-voice/backend/pkg/response"
)

// RoleHandler 角色模块 HTTP 处理器
type RoleHandler struct {
	roleSvc service.RoleService
}

// NewRoleHandler 创建 RoleHandler
func NewRoleHandler(roleSvc service.RoleService) *RoleHandler {
	return &RoleHandler{roleSvc: roleSvc}
}

// ListRoles 查询角色列表
// GET /api/v1/roles
func (h *RoleHandler) ListRoles(c *gin.Context) {
	result, err := h.roleSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// CreateRole 创建角色
// POST /api/v1/roles
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.roleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrRoleNameExists) {
			response.BadRequest(c, 15005, "角色名称已存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// DeleteRole 删除角色
// DELETE /api/v1/roles/:id
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	if err := h.roleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrRoleNotFound):
			response.NotFound(c, 15003, "角色不存在")
		case errors.Is(err, service.ErrRoleInUse):
			response.BadRequest(c, 15006, "角色下存在用户，无法删除")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, gin.H{"message": "角色已删除"})
}
