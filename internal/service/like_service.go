package service

import (
	"errors"
	"fmt"

	"vidtube/internal/api/dto"
	"vidtube/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 点赞 toggle 的终态
const (
	ToggleStateAdded   = "added"
	ToggleStateRemoved = "removed"
)

// LikeService 点赞服务
type LikeService struct {
	likeStore  LikeStore
	videoStore VideoStore
}

func NewLikeService(likeStore LikeStore, videoStore VideoStore) *LikeService {
	return &LikeService{
		likeStore:  likeStore,
		videoStore: videoStore,
	}
}

// ToggleVideoLike 点赞/取消点赞
// 先尝试条件插入，唯一索引冲突即"已点赞"信号，转为删除；
// 并发双 toggle 最终收敛为 0 条或 1 条记录，不会出现重复行
func (s *LikeService) ToggleVideoLike(userID, videoID int64) (*dto.LikeToggleData, error) {
	if _, err := s.videoStore.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("查询视频失败: %w", err)
	}

	state := ToggleStateAdded
	inserted, err := s.likeStore.InsertIfAbsent(userID, videoID)
	if err != nil {
		return nil, fmt.Errorf("点赞写入失败: %w", err)
	}
	if !inserted {
		if _, err := s.likeStore.Delete(userID, videoID); err != nil {
			return nil, fmt.Errorf("取消点赞失败: %w", err)
		}
		state = ToggleStateRemoved
	}

	totalLikes, err := s.likeStore.CountByVideo(videoID)
	if err != nil {
		return nil, fmt.Errorf("统计点赞数失败: %w", err)
	}

	logger.Debug("点赞状态切换",
		zap.Int64("user_id", userID),
		zap.Int64("video_id", videoID),
		zap.String("state", state))

	return &dto.LikeToggleData{
		State:      state,
		VideoID:    videoID,
		TotalLikes: totalLikes,
	}, nil
}

// ListLikedVideos 分页获取当前用户点赞过的视频
func (s *LikeService) ListLikedVideos(userID int64, page, limit int) (*dto.LikedVideosData, error) {
	skip := (page - 1) * limit

	likes, total, err := s.likeStore.ListByUser(userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("查询点赞视频失败: %w", err)
	}

	ids := make([]int64, 0, len(likes))
	for i := range likes {
		ids = append(ids, likes[i].VideoID)
	}
	likeCounts, err := s.likeStore.CountByVideos(ids)
	if err != nil {
		return nil, fmt.Errorf("批量统计点赞数失败: %w", err)
	}

	videos := make([]dto.VideoInfo, 0, len(likes))
	for i := range likes {
		videos = append(videos, toVideoInfo(&likes[i].Video, likeCounts[likes[i].VideoID], true))
	}

	return &dto.LikedVideosData{
		Videos: videos,
		Meta:   dto.NewPaginationMeta(page, limit, total),
	}, nil
}
