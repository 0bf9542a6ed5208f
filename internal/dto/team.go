package dto

// ── 协调员管理 DTO ──

// AssignCoordinatorRequest 任命协调员请求
// 任命人（系主任）身份由登录态确定
type AssignCoordinatorRequest struct {
	CoordinatorID string `json:"coordinator_id" binding:"required,uuid"`
}

// CandidateResponse 协调员候选人（本院系教授）
type CandidateResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
}
