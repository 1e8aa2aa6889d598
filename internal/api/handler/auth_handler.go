package handler

import (
	"errors"

	"vidtube/internal/api/dto"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/config"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register POST /api/v1/users/register（multipart/form-data）
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	avatarFile, err := c.FormFile("avatar")
	if err != nil {
		response.BadRequest(c, "请上传头像文件")
		return
	}

	maxImageMB := config.GetUpload().MaxImageMB
	avatarPath, avatarCleanup, err := saveUploadedFile(c, avatarFile, maxImageMB)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	defer avatarCleanup()

	// 封面可选
	var coverPath string
	if coverFile, err := c.FormFile("coverImage"); err == nil {
		var coverCleanup func()
		coverPath, coverCleanup, err = saveUploadedFile(c, coverFile, maxImageMB)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
		defer coverCleanup()
	}

	info, err := h.authService.Register(c.Request.Context(), &req, avatarPath, coverPath)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.Created(c, "注册成功", info)
}

// Login POST /api/v1/users/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.authService.Login(&req)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	setTokenCookies(c, data.AccessToken, data.RefreshToken)
	response.OK(c, "登录成功", data)
}

// Logout POST /api/v1/users/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	if err := h.authService.Logout(currentUserID); err != nil {
		handleAuthError(c, err)
		return
	}

	clearTokenCookies(c)
	response.OK(c, "登出成功", nil)
}

// RefreshToken POST /api/v1/users/refresh-token（Cookie 优先，其次 Body）
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, _ := c.Cookie(middleware.CookieRefreshToken)
	if refreshToken == "" {
		var req dto.RefreshTokenRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		response.Unauthorized(c, "缺少刷新令牌")
		return
	}

	data, err := h.authService.RefreshTokens(refreshToken)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	setTokenCookies(c, data.AccessToken, data.RefreshToken)
	response.OK(c, "令牌刷新成功", data)
}

// Me GET /api/v1/users/me
func (h *AuthHandler) Me(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.authService.GetCurrentUser(currentUserID)
	if err != nil {
		handleAuthError(c, err)
		return
	}

	response.OK(c, "获取当前用户成功", info)
}

func setTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	jwtCfg := config.GetJWT()
	c.SetCookie(middleware.CookieAccessToken, accessToken,
		int(jwtCfg.AccessExpireDuration().Seconds()), "/", "", false, true)
	c.SetCookie(middleware.CookieRefreshToken, refreshToken,
		int(jwtCfg.RefreshExpireDuration().Seconds()), "/", "", false, true)
}

func clearTokenCookies(c *gin.Context) {
	c.SetCookie(middleware.CookieAccessToken, "", -1, "/", "", false, true)
	c.SetCookie(middleware.CookieRefreshToken, "", -1, "/", "", false, true)
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredential):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrInvalidRefreshToken):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Auth operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
