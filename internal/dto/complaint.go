package dto

// ── 投诉模块 DTO ──

// CreateComplaintRequest 学生提交投诉请求
// 提交人身份与院系由登录态绑定，不接受客户端传入
type CreateComplaintRequest struct {
	Title       string `json:"title"       binding:"required,min=5,max=200"`
	Description string `json:"description" binding:"required,min=20"`
	Category    string `json:"category"    binding:"required,oneof=Academic Facilities Staff Other"`
	Priority    string `json:"priority"    binding:"required,oneof=Low Medium High Urgent"`
}

// UpdateComplaintStatusRequest 更新投诉状态请求
// resolution_detail 在目标状态为 Resolved/Rejected 时必填（Service 层校验）
type UpdateComplaintStatusRequest struct {
	Status           string `json:"status"            binding:"required,oneof=Pending Forwarded Resolved Rejected"`
	ResolutionDetail string `json:"resolution_detail" binding:"omitempty,max=2000"`
}

// ComplaintResponse 投诉详情响应
type ComplaintResponse struct {
	ID               string              `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Category         string              `json:"category"`
	Priority         string              `json:"priority"`
	Status           string              `json:"status"`
	StudentID        string              `json:"student_id"`
	StudentName      string              `json:"student_name"`
	StudentEmail     string              `json:"student_email"`
	Department       *DepartmentResponse `json:"department,omitempty"`
	ResolutionDetail string              `json:"resolution_detail,omitempty"`
	ResolvedAt       string              `json:"resolved_at,omitempty"`
	CreatedAt        string              `json:"created_at"`
	UpdatedAt        string              `json:"updated_at"`
}

// ComplaintStatsResponse 投诉统计响应
// 统计口径与列表可见范围一致
type ComplaintStatsResponse struct {
	Total      int                     `json:"total"`
	Pending    int                     `json:"pending"`
	Forwarded  int                     `json:"forwarded"`
	Resolved   int                     `json:"resolved"`
	Rejected   int                     `json:"rejected"`
	Categories ComplaintCategoryCounts `json:"categories"`
}

// ComplaintCategoryCounts 按类别统计
type ComplaintCategoryCounts struct {
	Academic   int `json:"Academic"`
	Facilities int `json:"Facilities"`
	Staff      int `json:"Staff"`
	Other      int `json:"Other"`
}
