package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-voice/backend/internal/dto"
	"campus-voice/backend/internal/service"
	apperrors "campus-voice/backend/pkg/errors"
	"campus-voice/backend/pkg/response"
)

// ComplaintHandler 投诉模块 HTTP 处理器
type ComplaintHandler struct {
	complaintSvc service.ComplaintService
}

// NewComplaintHandler 创建 ComplaintHandler
func NewComplaintHandler(complaintSvc service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintSvc: complaintSvc}
}

// Create 学生提交投诉
// POST /api/v1/complaints
func (h *ComplaintHandler) Create(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.complaintSvc.Create(c.Request.Context(), &req, caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrComplaintAccessDenied):
			response.Forbidden(c, 14001, "仅学生可提交投诉")
		case errors.Is(err, service.ErrStudentNoDepartment):
			response.BadRequest(c, 14002, "学生未分配院系，无法提交投诉")
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 12001, "用户不存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// List 按可见范围查询投诉列表
// GET /api/v1/complaints
func (h *ComplaintHandler) List(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.complaintSvc.List(c.Request.Context(), caller)
	if err != nil {
		if errors.Is(err, service.ErrComplaintAccessDenied) {
			response.Forbidden(c, 14003, "当前角色无投诉可见范围")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// UpdateStatus 更新投诉状态
// PUT /api/v1/complaints/:id/status
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.UpdateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.complaintSvc.UpdateStatus(c.Request.Context(), c.Param("id"), &req, caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrComplaintNotFound):
			response.NotFound(c, 14004, "投诉不存在")
		case errors.Is(err, service.ErrComplaintAccessDenied):
			response.Forbidden(c, 14005, "无权访问该投诉")
		case errors.Is(err, service.ErrTransitionDenied):
			response.Forbidden(c, 14006, "当前角色不允许执行该状态变更")
		case errors.Is(err, service.ErrResolutionRequired):
			response.BadRequest(c, 14007, "处理意见不能为空")
		case errors.Is(err, apperrors.ErrOptimisticLock):
			response.Conflict(c, 14008, "投诉已被其他操作修改，请刷新后重试")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Delete 管理员删除投诉
// DELETE /api/v1/complaints/:id
func (h *ComplaintHandler) Delete(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	if err := h.complaintSvc.Delete(c.Request.Context(), c.Param("id"), caller); err != nil {
		switch {
		case errors.Is(err, service.ErrComplaintNotFound):
			response.NotFound(c, 14004, "投诉不存在")
		case errors.Is(err, service.ErrComplaintAccessDenied):
			response.Forbidden(c, 14009, "仅管理员可删除投诉")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, gin.H{"message": "投诉已删除"})
}

// Stats 按可见范围统计投诉
// GET /api/v1/complaints/stats
func (h *ComplaintHandler) Stats(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	result, err := h.complaintSvc.Stats(c.Request.Context(), caller)
	if err != nil {
		if errors.Is(err, service.ErrComplaintAccessDenied) {
			response.Forbidden(c, 14003, "当前角色无投诉可见范围")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
