package handler

import (
	"errors"

	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetChannelProfile GET /api/v1/users/c/:username（可选认证，登录后带观察者标记）
func (h *UserHandler) GetChannelProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		response.BadRequest(c, "用户名不能为空")
		return
	}

	viewerID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	profile, err := h.userService.GetChannelProfile(username, viewerID, page, limit)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Get channel profile failed", zap.String("username", username), zap.Error(err))
		response.InternalError(c, "获取频道主页失败")
		return
	}

	response.OK(c, "获取频道主页成功", profile)
}

// GetWatchHistory GET /api/v1/users/history
func (h *UserHandler) GetWatchHistory(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	data, err := h.userService.GetWatchHistory(currentUserID, page, limit)
	if err != nil {
		logger.Error("Get watch history failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "获取观看历史失败")
		return
	}

	response.OK(c, "获取观看历史成功", data)
}
