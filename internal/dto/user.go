package dto

// ── 用户模块 DTO ──

// CreateUserRequest 管理员创建用户请求
type CreateUserRequest struct {
	Name         string  `json:"name"          binding:"required,min=2,max=50"`
	Email        string  `json:"email"         binding:"required,email"`
	RegisterNo   string  `json:"register_no"   binding:"required,max=30"`
	RoleID       string  `json:"role_id"       binding:"required,uuid"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

// CreateUserResponse 创建用户响应（含初始密码，仅此一次返回）
type CreateUserResponse struct {
	User         *UserResponse `json:"user"`
	TempPassword string        `json:"temp_password"`
}

// UpdateUserRequest 更新用户信息请求
type UpdateUserRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=50"`
	Email        *string `json:"email"         binding:"omitempty,email"`
	RoleID       *string `json:"role_id"       binding:"omitempty,uuid"`
	DepartmentID *string `json:"department_id" binding:"omitempty,uuid"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	DepartmentID string `form:"department_id" binding:"omitempty,uuid"`
	Role         string `form:"role"          binding:"omitempty,oneof=student professor coordinator hod admin"`
	Keyword      string `form:"keyword"       binding:"omitempty,max=50"`
}

// ResetPasswordResponse 重置密码响应
type ResetPasswordResponse struct {
	TempPassword string `json:"temp_password"`
}
