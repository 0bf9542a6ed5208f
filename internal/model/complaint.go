package model

import "time"

// ── 投诉枚举 ──

// ComplaintStatus 投诉状态，取值与存储/前端约定的字符串完全一致
type ComplaintStatus string

const (
	StatusPending   ComplaintStatus = "Pending"
	StatusForwarded ComplaintStatus = "Forwarded"
	StatusResolved  ComplaintStatus = "Resolved"
	StatusRejected  ComplaintStatus = "Rejected"
)

// Valid 校验状态取值
func (s ComplaintStatus) Valid() bool {
	switch s {
	case StatusPending, StatusForwarded, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Terminal Resolved/Rejected 为终态
func (s ComplaintStatus) Terminal() bool {
	return s == StatusResolved || s == StatusRejected
}

// ComplaintCategory 投诉类别
type ComplaintCategory string

const (
	CategoryAcademic   ComplaintCategory = "Academic"
	CategoryFacilities ComplaintCategory = "Facilities"
	CategoryStaff      ComplaintCategory = "Staff"
	CategoryOther      ComplaintCategory = "Other"
)

// ComplaintPriority 投诉优先级
type ComplaintPriority string

const (
	PriorityLow    ComplaintPriority = "Low"
	PriorityMedium ComplaintPriority = "Medium"
	PriorityHigh   ComplaintPriority = "High"
	PriorityUrgent ComplaintPriority = "Urgent"
)

// Complaint 投诉表 — 对应 complaints
// 提交人与院系在创建时由登录态绑定，创建后不可变更；
// version 字段用于状态更新的乐观锁校验
type Complaint struct {
	ComplaintID      string            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"complaint_id"`
	Title            string            `gorm:"type:varchar(200);not null"                     json:"title"`
	Description      string            `gorm:"type:text;not null"                             json:"description"`
	Category         ComplaintCategory `gorm:"type:varchar(20);not null"                      json:"category"`
	Priority         ComplaintPriority `gorm:"type:varchar(10);not null"                      json:"priority"`
	Status           ComplaintStatus   `gorm:"type:varchar(10);not null;default:'Pending'"    json:"status"`
	StudentID        string            `gorm:"type:uuid;not null"                             json:"student_id"`
	StudentName      string            `gorm:"type:varchar(100);not null"                     json:"student_name"`
	StudentEmail     string            `gorm:"type:varchar(255);not null"                     json:"student_email"`
	DepartmentID     string            `gorm:"type:uuid;not null"                             json:"department_id"`
	ResolutionDetail *string           `gorm:"type:text"                                      json:"resolution_detail,omitempty"`
	ResolvedAt       *time.Time        `json:"resolved_at,omitempty"`
	Version          int               `gorm:"not null;default:1"                             json:"version"`
	BaseModel

	// 关联
	Student    *User       `gorm:"foreignKey:StudentID;references:UserID"          json:"student,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
}

// TableName 指定表名
func (Complaint) TableName() string { return "complaints" }
