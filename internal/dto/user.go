package dto

// ── 用户模块 DTO ──

// CreateUserRequest 管理员创建用户请求
type CreateUserRequest struct {
	EmployeeID   string `json:"employee_id"   binding:"required,max=50"`
	Name         string `json:"name"          binding:"required,max=100"`
	Email        string `json:"email"         binding:"required,email,max=255"`
	Password     string `json:"password"      binding:"required,min=6,max=72"`
	Role         *int   `json:"role"          binding:"omitempty,oneof=0 1"`
	Department   string `json:"department"    binding:"required,max=100"`
	CurrentShift string `json:"current_shift" binding:"required,max=50"`
}

// UpdateUserRequest 管理员更新用户（仅更新非 nil 字段）
type UpdateUserRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=1,max=100"`
	Email        *string `json:"email"         binding:"omitempty,email,max=255"`
	Role         *int    `json:"role"          binding:"omitempty,oneof=0 1"`
	Department   *string `json:"department"    binding:"omitempty,min=1,max=100"`
	CurrentShift *string `json:"current_shift" binding:"omitempty,min=1,max=50"`
	Status       *string `json:"status"        binding:"omitempty,min=1,max=20"`
}

// UpdateMeRequest 本人更新（受限字段）
type UpdateMeRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=1,max=100"`
	CurrentShift *string `json:"current_shift" binding:"omitempty,min=1,max=50"`
}

// UserResponse 用户信息响应（脱敏，不含密码哈希）
type UserResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         int    `json:"role"`
	RoleName     string `json:"role_name"`
	Department   string `json:"department"`
	CurrentShift string `json:"current_shift"`
	Status       string `json:"status"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// MemberBrief 列表联表展示用的成员简要信息
type MemberBrief struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	EmployeeID string `json:"employee_id,omitempty"`
	Department string `json:"department,omitempty"`
}
