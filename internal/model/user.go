package model

// User 用户表 — 对应 users
// 角色通过 roles 表外键引用；院系允许为空（如管理员不隶属院系）
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	RegisterNo   string  `gorm:"type:varchar(30);not null;default:''"           json:"register_no"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	RoleID       string  `gorm:"type:uuid;not null"                             json:"role_id"`
	DepartmentID *string `gorm:"type:uuid"                                      json:"department_id,omitempty"`
	BaseModel

	// 关联
	Role       *Role       `gorm:"foreignKey:RoleID;references:RoleID"             json:"role,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// RoleName 返回角色名，关联未加载时返回空串
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
