package dto

import "time"

// RegisterRequest 用户注册请求（multipart/form-data，头像文件单独提取）
type RegisterRequest struct {
	FullName string `form:"fullName" binding:"required,min=1,max=255"`
	Email    string `form:"email" binding:"required,email"`
	Username string `form:"username" binding:"required,min=3,max=30"`
	Password string `form:"password" binding:"required,min=8"`
}

// LoginRequest 登录请求：identifier 为邮箱或用户名
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// RefreshTokenRequest 刷新令牌请求（优先取 Cookie，其次取 Body）
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UserInfo 用户公开信息
type UserInfo struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"cover_image"`
	CreatedAt  time.Time `json:"created_at"`
}

// TokenData 登录/刷新成功后的令牌数据
type TokenData struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	TokenType    string   `json:"token_type"`
	User         UserInfo `json:"user"`
}
