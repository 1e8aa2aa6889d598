package handler

import (
	"errors"

	"vidtube/internal/api/dto"
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List GET /api/v1/comments/:videoId
func (h *CommentHandler) List(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	page, limit := parsePagination(c)

	data, err := h.commentService.ListByVideo(videoID, page, limit)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.OK(c, "获取评论列表成功", data)
}

// Add POST /api/v1/comments/:videoId
func (h *CommentHandler) Add(c *gin.Context) {
	videoID, ok := parseIDParam(c, "videoId")
	if !ok {
		response.BadRequest(c, "无效的视频ID")
		return
	}

	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	currentUserID, _ := middleware.GetCurrentUserID(c)

	info, err := h.commentService.Add(videoID, currentUserID, &req)
	if err != nil {
		handleCommentError(c, err)
		return
	}

	response.Created(c, "评论成功", info)
}

func handleCommentError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrVideoNotFound) {
		response.NotFound(c, err.Error())
		return
	}
	logger.Error("Comment operation failed", zap.Error(err))
	response.InternalError(c, "操作失败，请稍后重试")
}
