package dto

// ── 换班模块 DTO ──

// RequestSwapRequest 发起换班申请
type RequestSwapRequest struct {
	RequestedDate  string  `json:"requested_date"  binding:"required"`
	CurrentShift   string  `json:"current_shift"   binding:"required,max=50"`
	RequestedShift string  `json:"requested_shift" binding:"required,max=50"`
	Reason         *string `json:"reason"          binding:"omitempty,max=500"`
	ColleagueID    *string `json:"colleague_id"    binding:"omitempty,uuid"`
}

// ProcessSwapRequest 管理员处理换班申请
type ProcessSwapRequest struct {
	Action     string  `json:"action"      binding:"required,oneof=APPROVED REJECTED"`
	AdminNotes *string `json:"admin_notes" binding:"omitempty,max=500"`
}

// SwapRequestResponse 换班申请响应
type SwapRequestResponse struct {
	ID             string       `json:"id"`
	RequesterID    string       `json:"requester_id"`
	ColleagueID    *string      `json:"colleague_id,omitempty"`
	RequestedDate  string       `json:"requested_date"`
	CurrentShift   string       `json:"current_shift"`
	RequestedShift string       `json:"requested_shift"`
	Reason         *string      `json:"reason,omitempty"`
	Status         string       `json:"status"`
	AdminNotes     *string      `json:"admin_notes,omitempty"`
	ResolvedAt     *string      `json:"resolved_at,omitempty"`
	ResolvedBy     *string      `json:"resolved_by,omitempty"`
	CreatedAt      string       `json:"created_at"`
	Requester      *MemberBrief `json:"requester,omitempty"`
	Colleague      *MemberBrief `json:"colleague,omitempty"`
}
