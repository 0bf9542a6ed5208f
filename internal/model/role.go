package model

// ── 角色名常量 ──

const (
	RoleStudent     = "student"
	RoleProfessor   = "professor"
	RoleCoordinator = "coordinator"
	RoleHod         = "hod"
	RoleAdmin       = "admin"
)

// Role 角色表 — 对应 roles
type Role struct {
	RoleID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"role_id"`
	Name   string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"name"`
	BaseModel
}

// TableName 指定表名
func (Role) TableName() string { return "roles" }
