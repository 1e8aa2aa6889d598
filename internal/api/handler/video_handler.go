package handler

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"vidtube/internal/api/dto"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/config"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var allowedVideoExts = map[string]bool{
	".mp4": true, ".mov": true, ".mkv": true, ".webm": true, ".avi": true,
}

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

type VideoHandler struct {
	videoService  *service.VideoService
	searchService *service.SearchService
}

func NewVideoHandler(videoService *service.VideoService, searchService *service.SearchService) *VideoHandler {
	return &VideoHandler{
		videoService:  videoService,
		searchService: searchService,
	}
}

// GetFeed GET /api/v1/videos（公开，不需要登录）
// 可选参数：query 做标题/描述模糊过滤，userId 限定某作者
func (h *VideoHandler) GetFeed(c *gin.Context) {
	page, limit := parsePagination(c)
	query := strings.TrimSpace(c.Query("query"))

	var ownerID *int64
	if v := c.Query("userId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			response.BadRequest(c, "无效的用户ID")
			return
		}
		ownerID = &id
	}

	data, err := h.videoService.GetFeed(page, limit, query, ownerID)
	if err != nil {
		logger.Error("Get video feed failed", zap.Error(err))
		response.InternalError(c, "获取视频流失败")
		return
	}

	response.OK(c, "获取视频流成功", data)
}

// Publish POST /api/v1/videos（multipart/form-data：title、description、videoFile、thumbnail）
func (h *VideoHandler) Publish(c *gin.Context) {
	var req dto.PublishVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		response.BadRequest(c, "请上传视频文件")
		return
	}
	if !allowedVideoExts[strings.ToLower(filepath.Ext(videoFile.Filename))] {
		response.BadRequest(c, "不支持的视频格式，支持: mp4, mov, mkv, webm, avi")
		return
	}

	thumbnailFile, err := c.FormFile("thumbnail")
	if err != nil {
		response.BadRequest(c, "请上传视频封面")
		return
	}
	if !allowedImageExts[strings.ToLower(filepath.Ext(thumbnailFile.Filename))] {
		response.BadRequest(c, "不支持的封面格式，支持: jpg, jpeg, png, webp")
		return
	}

	uploadCfg := config.GetUpload()

	videoPath, videoCleanup, err := saveUploadedFile(c, videoFile, uploadCfg.MaxVideoMB)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	defer videoCleanup()

	thumbnailPath, thumbnailCleanup, err := saveUploadedFile(c, thumbnailFile, uploadCfg.MaxImageMB)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	defer thumbnailCleanup()

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.videoService.Publish(c.Request.Context(), currentUserID, &req, videoPath, thumbnailPath)
	if err != nil {
		logger.Error("Publish video failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "发布视频失败")
		return
	}

	response.Created(c, "发布视频成功", info)
}

// GetDetail GET /api/v1/videos/:id（需要登录，观看副作用依赖观察者身份）
func (h *VideoHandler) GetDetail(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	detail, err := h.videoService.GetDetail(videoID, currentUserID)
	if err != nil {
		if errors.Is(err, service.ErrVideoNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Get video detail failed", zap.Int64("video_id", videoID), zap.Error(err))
		response.InternalError(c, "获取视频详情失败")
		return
	}

	response.OK(c, "获取视频详情成功", detail)
}

// Search GET /api/v1/videos/search?q=
func (h *VideoHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		response.BadRequest(c, "搜索关键词不能为空")
		return
	}

	page, limit := parsePagination(c)

	data, err := h.searchService.SearchVideos(c.Request.Context(), query, page, limit)
	if err != nil {
		logger.Error("Search videos failed", zap.String("query", query), zap.Error(err))
		response.InternalError(c, "搜索视频失败")
		return
	}

	response.OK(c, "搜索视频成功", data)
}
