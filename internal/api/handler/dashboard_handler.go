package handler

import (
	"vidtube/internal/api/middleware"
	"vidtube/internal/api/response"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats GET /api/v1/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)

	stats, err := h.dashboardService.GetStats(c.Request.Context(), currentUserID)
	if err != nil {
		logger.Error("Get dashboard stats failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "获取频道统计失败")
		return
	}

	response.OK(c, "获取频道统计成功", stats)
}

// GetVideos GET /api/v1/dashboard/videos（含未发布）
func (h *DashboardHandler) GetVideos(c *gin.Context) {
	currentUserID, _ := middleware.GetCurrentUserID(c)
	page, limit := parsePagination(c)

	data, err := h.dashboardService.GetChannelVideos(currentUserID, page, limit)
	if err != nil {
		logger.Error("Get dashboard videos failed", zap.Int64("user_id", currentUserID), zap.Error(err))
		response.InternalError(c, "获取频道视频失败")
		return
	}

	response.OK(c, "获取频道视频成功", data)
}
