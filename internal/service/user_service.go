package service

import (
	"errors"
	"fmt"
	"strings"

	"vidtube/internal/api/dto"

	"gorm.io/gorm"
)

// UserService 用户读模型：频道主页与观看历史
type UserService struct {
	userStore    UserStore
	videoStore   VideoStore
	likeStore    LikeStore
	subStore     SubscriptionStore
	historyStore HistoryStore
}

func NewUserService(
	userStore UserStore,
	videoStore VideoStore,
	likeStore LikeStore,
	subStore SubscriptionStore,
	historyStore HistoryStore,
) *UserService {
	return &UserService{
		userStore:    userStore,
		videoStore:   videoStore,
		likeStore:    likeStore,
		subStore:     subStore,
		historyStore: historyStore,
	}
}

// GetChannelProfile 按用户名装配频道主页
// 订阅数、被订阅数与观察者是否已订阅均为读取时计算，频道视频按 page/limit 内嵌
func (s *UserService) GetChannelProfile(username string, viewerID int64, page, limit int) (*dto.ChannelProfile, error) {
	user, err := s.userStore.GetByUsername(strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	subscriberCount, err := s.subStore.CountSubscribers(user.ID)
	if err != nil {
		return nil, fmt.Errorf("统计订阅数失败: %w", err)
	}

	subscribedToCount, err := s.subStore.CountSubscribedTo(user.ID)
	if err != nil {
		return nil, fmt.Errorf("统计已订阅频道数失败: %w", err)
	}

	isSubscribed := false
	if viewerID > 0 && viewerID != user.ID {
		isSubscribed, err = s.subStore.Exists(viewerID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("查询订阅状态失败: %w", err)
		}
	}

	skip := (page - 1) * limit
	ownerID := user.ID
	videos, totalVideos, err := s.videoStore.List(skip, limit, &ownerID, true, "", true)
	if err != nil {
		return nil, fmt.Errorf("查询频道视频失败: %w", err)
	}

	likeCounts, err := s.likeStore.CountByVideos(videoIDs(videos))
	if err != nil {
		return nil, fmt.Errorf("批量统计点赞数失败: %w", err)
	}

	return &dto.ChannelProfile{
		ID:                user.ID,
		Username:          user.Username,
		FullName:          user.FullName,
		Avatar:            user.Avatar,
		CoverImage:        user.CoverImage,
		SubscriberCount:   subscriberCount,
		SubscribedToCount: subscribedToCount,
		IsSubscribed:      isSubscribed,
		TotalVideos:       totalVideos,
		Videos:            buildVideoInfos(videos, likeCounts, true),
	}, nil
}

// GetWatchHistory 获取观看历史：watched_at 倒序，视频行带作者与点赞数
func (s *UserService) GetWatchHistory(userID int64, page, limit int) (*dto.WatchHistoryData, error) {
	skip := (page - 1) * limit

	entries, total, err := s.historyStore.ListByUser(userID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("查询观看历史失败: %w", err)
	}

	ids := make([]int64, 0, len(entries))
	for i := range entries {
		ids = append(ids, entries[i].VideoID)
	}
	likeCounts, err := s.likeStore.CountByVideos(ids)
	if err != nil {
		return nil, fmt.Errorf("批量统计点赞数失败: %w", err)
	}

	// 历史是观察者私有列表，顺带标记哪些视频已点赞
	likedSet, err := s.likeStore.BatchCheckLiked(userID, ids)
	if err != nil {
		return nil, fmt.Errorf("批量查询点赞状态失败: %w", err)
	}

	history := make([]dto.WatchHistoryEntry, 0, len(entries))
	for i := range entries {
		video := toVideoInfo(&entries[i].Video, likeCounts[entries[i].VideoID], true)
		video.IsLiked = likedSet[entries[i].VideoID]
		history = append(history, dto.WatchHistoryEntry{
			Video:     video,
			WatchedAt: entries[i].WatchedAt,
		})
	}

	return &dto.WatchHistoryData{
		History: history,
		Meta:    dto.NewPaginationMeta(page, limit, total),
	}, nil
}
