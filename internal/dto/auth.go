package dto

// ── 认证模块 DTO ──

// SignUpRequest 自助注册请求
type SignUpRequest struct {
	Name       string `json:"name"        binding:"required,max=100"`
	EmployeeID string `json:"employee_id" binding:"required,max=50"`
	Email      string `json:"email"       binding:"required,email,max=255"`
	Password   string `json:"password"    binding:"required,min=6,max=72"`
}

// SignInRequest 登录请求
type SignInRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // 有效期（秒）
	User        UserResponse `json:"user"`
}
