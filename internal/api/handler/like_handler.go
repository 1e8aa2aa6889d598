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

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Toggle POST /api/v1/likes/video/:videoId
func (h *LikeHandler) Toggle(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	data, err := h.likeService.ToggleVideoLike(currentUserID, videoID)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Toggle video like failed",
			zap.Int64("user_id", currentUserID),
			zap.Int64("video_id", videoID),
			zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
		return
	}

	response.OK(c, "点赞状态切换成功", data)
}

// ListLikedVideos GET /api/v1/likes/videos
func (h *LikeHandler) ListLikedVideos(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	data, err := h.likeService.ListLikedVideos(currentUserID, page, limit)
	if err != nil {
		logger.Error("List liked videos failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "获取点赞视频失败")
		return
	}

	response.OK(c, "获取点赞视频成功", data)
}
