package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vidtube/internal/api/dto"
	"vidtube/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// 统计缓存：短 TTL 读穿透，观察者相关字段永不进缓存
const statsCacheTTL = 60 * time.Second

// DashboardService 创作者后台：频道统计与自有视频列表
type DashboardService struct {
	statsStore StatsStore
	videoStore VideoStore
	likeStore  LikeStore
	cache      *redis.Client
}

func NewDashboardService(statsStore StatsStore, videoStore VideoStore, likeStore LikeStore, cache *redis.Client) *DashboardService {
	return &DashboardService{
		statsStore: statsStore,
		videoStore: videoStore,
		likeStore:  likeStore,
		cache:      cache,
	}
}

// GetStats 获取频道统计，四个聚合值在一次查询中算出，命中缓存时直接返回
func (s *DashboardService) GetStats(ctx context.Context, channelID int64) (*dto.DashboardStats, error) {
	cacheKey := fmt.Sprintf("dashboard:stats:%d", channelID)

	if cached := s.readCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	raw, err := s.statsStore.GetChannelStats(channelID)
	if err != nil {
		return nil, fmt.Errorf("查询频道统计失败: %w", err)
	}

	stats := &dto.DashboardStats{
		TotalVideos:      raw.TotalVideos,
		TotalViews:       raw.TotalViews,
		TotalLikes:       raw.TotalLikes,
		TotalSubscribers: raw.TotalSubscribers,
	}

	s.writeCache(ctx, cacheKey, stats)
	return stats, nil
}

// GetChannelVideos 分页获取当前用户的全部视频（含未发布），供创作者后台管理
func (s *DashboardService) GetChannelVideos(ownerID int64, page, limit int) (*dto.VideoListData, error) {
	skip := (page - 1) * limit

	videos, total, err := s.videoStore.List(skip, limit, &ownerID, false, "", false)
	if err != nil {
		return nil, fmt.Errorf("查询频道视频失败: %w", err)
	}

	likeCounts, err := s.likeStore.CountByVideos(videoIDs(videos))
	if err != nil {
		return nil, fmt.Errorf("批量统计点赞数失败: %w", err)
	}

	return &dto.VideoListData{
		Videos: buildVideoInfos(videos, likeCounts, false),
		Meta:   dto.NewPaginationMeta(page, limit, total),
	}, nil
}

func (s *DashboardService) readCache(ctx context.Context, key string) *dto.DashboardStats {
	if s.cache == nil {
		return nil
	}

	val, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("读取统计缓存失败", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	var stats dto.DashboardStats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		logger.Warn("统计缓存反序列化失败", zap.String("key", key), zap.Error(err))
		return nil
	}
	return &stats
}

func (s *DashboardService) writeCache(ctx context.Context, key string, stats *dto.DashboardStats) {
	if s.cache == nil {
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, statsCacheTTL).Err(); err != nil {
		logger.Warn("写入统计缓存失败", zap.String("key", key), zap.Error(err))
	}
}
