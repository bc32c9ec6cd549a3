package request

// LoginRequest 邮箱密码登录
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 刷新令牌，未携带时从 refresh-token Cookie 读取
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
