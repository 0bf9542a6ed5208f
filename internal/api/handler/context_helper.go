package handler

import (
	"github.com/gin-gonic/gin"

	"campus-voice/backend/internal/service"
	"campus-voice/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetCaller 从 Gin 上下文组装调用者身份（user_id / role / department_id）。
// 三项均由 JWT 中间件注入，任何缺失都视为未认证。
func MustGetCaller(c *gin.Context) (*service.Caller, bool) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return nil, false
	}

	roleV, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	role, ok := roleV.(string)
	if !ok || role == "" {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}

	deptV, exists := c.Get("department_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}
	dept, ok := deptV.(string)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return nil, false
	}

	return &service.Caller{
		UserID:       userID,
		Role:         role,
		DepartmentID: dept,
	}, true
}
