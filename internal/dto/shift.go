package dto

// ── 排班模块 DTO ──

// AssignShiftRequest 管理员排班请求
type AssignShiftRequest struct {
	UserID    string  `json:"user_id"    binding:"required,uuid"`
	ShiftType string  `json:"shift_type" binding:"required,max=50"`
	Date      string  `json:"date"       binding:"required"` // YYYY-MM-DD 或 RFC 3339
	StartTime string  `json:"start_time" binding:"required,max=10"`
	EndTime   string  `json:"end_time"   binding:"required,max=10"`
	Location  string  `json:"location"   binding:"required,max=100"`
	Notes     *string `json:"notes"      binding:"omitempty,max=500"`
}

// ShiftAssignmentResponse 排班响应
type ShiftAssignmentResponse struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	ShiftType string       `json:"shift_type"`
	Date      string       `json:"date"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	Location  string       `json:"location"`
	Notes     *string      `json:"notes,omitempty"`
	CreatedBy *string      `json:"created_by,omitempty"`
	CreatedAt string       `json:"created_at"`
	User      *MemberBrief `json:"user,omitempty"`
}
