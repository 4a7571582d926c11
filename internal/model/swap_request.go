package model

import "time"

// SwapStatus 换班申请状态
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "PENDING"
	SwapStatusApproved SwapStatus = "APPROVED"
	SwapStatusRejected SwapStatus = "REJECTED"
)

// IsTerminal 终态不可再变更
func (s SwapStatus) IsTerminal() bool {
	return s == SwapStatusApproved || s == SwapStatusRejected
}

// CanTransitionTo 仅允许 PENDING → APPROVED / REJECTED
func (s SwapStatus) CanTransitionTo(next SwapStatus) bool {
	return s == SwapStatusPending && next.IsTerminal()
}

// SwapRequest 换班申请表 对应 swap_requests
type SwapRequest struct {
	SwapRequestID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"swap_request_id"`
	RequesterID    string     `gorm:"type:uuid;not null"                             json:"requester_id"`
	ColleagueID    *string    `gorm:"type:uuid"                                      json:"colleague_id,omitempty"` // 为空表示公开申请
	RequestedDate  time.Time  `gorm:"type:date;not null"                             json:"requested_date"`
	CurrentShift   string     `gorm:"type:varchar(50);not null"                      json:"current_shift"`
	RequestedShift string     `gorm:"type:varchar(50);not null"                      json:"requested_shift"`
	Reason         *string    `gorm:"type:varchar(500)"                              json:"reason,omitempty"`
	Status         SwapStatus `gorm:"type:varchar(20);not null;default:'PENDING'"    json:"status"`
	AdminNotes     *string    `gorm:"type:varchar(500)"                              json:"admin_notes,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy     *string    `gorm:"type:uuid"                                      json:"resolved_by,omitempty"`
	BaseModel

	// 关联
	Requester *User `gorm:"foreignKey:RequesterID;references:UserID" json:"requester,omitempty"`
	Colleague *User `gorm:"foreignKey:ColleagueID;references:UserID" json:"colleague,omitempty"`
}

// TableName 指定表名
func (SwapRequest) TableName() string { return "swap_requests" }
