package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-voice/backend/internal/dto"
	"campus-voice/backend/internal/service"
	"campus-voice/backend/pkg/response"
)

// DepartmentHandler 院系模块 HTTP 处理器
type DepartmentHandler struct {
	deptSvc service.DepartmentService
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(deptSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc}
}

// CreateDepartment 创建院系
// POST /api/v1/departments
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.deptSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDepartmentNameExists) {
			response.BadRequest(c, 13002, "院系名称已存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// GetDepartment 查询单个院系
// GET /api/v1/departments/:id
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	result, err := h.deptSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDepartmentNotFound) {
			response.NotFound(c, 13001, "院系不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ListDepartments 查询院系列表
// GET /api/v1/departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	result, err := h.deptSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateDepartment 更新院系
// PUT /api/v1/departments/:id
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.deptSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDepartmentNotFound):
			response.NotFound(c, 13001, "院系不存在")
		case errors.Is(err, service.ErrDepartmentNameExists):
			response.BadRequest(c, 13002, "院系名称已存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// DeleteDepartment 删除院系
// DELETE /api/v1/departments/:id
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	if err := h.deptSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, service.ErrDepartmentNotFound):
			response.NotFound(c, 13001, "院系不存在")
		case errors.Is(err, service.ErrDepartmentHasMembers):
			response.BadRequest(c, 13003, "院系下存在成员，无法删除")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, gin.H{"message": "院系已删除"})
}
