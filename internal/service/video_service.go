package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"vidtube/internal/api/dto"
	"vidtube/internal/config"
	"vidtube/internal/media"
	"vidtube/internal/model"
	"vidtube/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrVideoNotFound = errors.New("视频不存在")

// VideoService 视频服务：发布、信息流与详情装配
type VideoService struct {
	videoStore   VideoStore
	likeStore    LikeStore
	subStore     SubscriptionStore
	historyStore HistoryStore
	mediaStore   MediaStore
	events       EventPublisher
	dedupHistory bool

	// 时长探测可注入，便于测试替换 ffprobe
	probeDuration func(videoFile string) (float64, error)
}

func NewVideoService(
	videoStore VideoStore,
	likeStore LikeStore,
	subStore SubscriptionStore,
	historyStore HistoryStore,
	mediaStore MediaStore,
	events EventPublisher,
	dedupHistory bool,
) *VideoService {
	return &VideoService{
		videoStore:    videoStore,
		likeStore:     likeStore,
		subStore:      subStore,
		historyStore:  historyStore,
		mediaStore:    mediaStore,
		events:        events,
		dedupHistory:  dedupHistory,
		probeDuration: media.ProbeDuration,
	}
}

// Publish 发布视频：探测时长、上传视频与封面、落库并发出 video_published 事件
// 封面上传失败时回滚已上传的视频对象
func (s *VideoService) Publish(ctx context.Context, ownerID int64, req *dto.PublishVideoRequest, videoPath, thumbnailPath string) (*dto.VideoInfo, error) {
	duration, err := s.probeDuration(videoPath)
	if err != nil {
		logger.Warn("视频时长探测失败，按 0 记录", zap.Error(err))
		duration = 0
	}

	uploadCfg := config.GetUpload()
	objectBase := fmt.Sprintf("%d/%d", ownerID, time.Now().UnixNano())

	videoURL, err := s.mediaStore.UploadFile(ctx, uploadCfg.VideoBucket,
		objectBase+filepath.Ext(videoPath), videoPath)
	if err != nil {
		return nil, fmt.Errorf("视频文件上传失败: %w", err)
	}

	thumbnailURL, err := s.mediaStore.UploadFile(ctx, uploadCfg.ImageBucket,
		"thumbnails/"+objectBase+filepath.Ext(thumbnailPath), thumbnailPath)
	if err != nil {
		s.removeUploaded(ctx, videoURL)
		return nil, fmt.Errorf("封面上传失败: %w", err)
	}

	video := &model.Video{
		OwnerID:      ownerID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     videoURL,
		ThumbnailURL: thumbnailURL,
		Duration:     duration,
		IsPublished:  true,
	}

	if err := s.videoStore.Create(video); err != nil {
		s.removeUploaded(ctx, videoURL, thumbnailURL)
		return nil, fmt.Errorf("创建视频记录失败: %w", err)
	}

	logger.Info("视频发布成功",
		zap.Int64("video_id", video.ID),
		zap.Int64("owner_id", ownerID),
		zap.Float64("duration", duration))

	// 事件发布失败不阻断主流程，搜索索引允许短暂滞后
	if s.events != nil {
		if err := s.events.PublishVideoPublished(ctx, video); err != nil {
			logger.Warn("发布视频事件发送失败", zap.Int64("video_id", video.ID), zap.Error(err))
		}
	}

	info := toVideoInfo(video, 0, false)
	return &info, nil
}

// GetFeed 获取公开信息流：仅已发布视频，按创建时间倒序，逐行装饰点赞数与作者信息
func (s *VideoService) GetFeed(page, limit int, search string, ownerID *int64) (*dto.VideoListData, error) {
	skip := (page - 1) * limit

	videos, total, err := s.videoStore.List(skip, limit, ownerID, true, search, true)
	if err != nil {
		return nil, fmt.Errorf("查询视频列表失败: %w", err)
	}

	likeCounts, err := s.likeStore.CountByVideos(videoIDs(videos))
	if err != nil {
		return nil, fmt.Errorf("批量统计点赞数失败: %w", err)
	}

	return &dto.VideoListData{
		Videos: buildVideoInfos(videos, likeCounts, true),
		Meta:   dto.NewPaginationMeta(page, limit, total),
	}, nil
}

// GetDetail 获取视频详情
// 读取时计算点赞总数、观察者是否点赞、作者订阅数与观察者是否订阅；
// 观看副作用：首次观看递增播放量，观看历史按去重策略写入
func (s *VideoService) GetDetail(videoID, viewerID int64) (*dto.VideoDetail, error) {
	video, err := s.videoStore.GetByIDWithOwner(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("查询视频失败: %w", err)
	}

	// 未发布视频仅作者本人可见
	if !video.IsPublished && video.OwnerID != viewerID {
		return nil, ErrVideoNotFound
	}

	if err := s.recordView(video, viewerID); err != nil {
		logger.Warn("记录观看失败",
			zap.Int64("video_id", videoID),
			zap.Int64("viewer_id", viewerID),
			zap.Error(err))
	}

	totalLikes, err := s.likeStore.CountByVideo(videoID)
	if err != nil {
		return nil, fmt.Errorf("统计点赞数失败: %w", err)
	}

	isLiked, err := s.likeStore.Exists(viewerID, videoID)
	if err != nil {
		return nil, fmt.Errorf("查询点赞状态失败: %w", err)
	}

	subscriberCount, err := s.subStore.CountSubscribers(video.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("统计订阅数失败: %w", err)
	}

	isSubscribed, err := s.subStore.Exists(viewerID, video.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("查询订阅状态失败: %w", err)
	}

	return &dto.VideoDetail{
		ID:           video.ID,
		Title:        video.Title,
		Description:  video.Description,
		VideoURL:     video.VideoURL,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		ViewCount:    video.ViewCount,
		TotalLikes:   totalLikes,
		IsLiked:      isLiked,
		CreatedAt:    video.CreatedAt,
		Owner: dto.ChannelOwner{
			ID:              video.Owner.ID,
			Username:        video.Owner.Username,
			FullName:        video.Owner.FullName,
			Avatar:          video.Owner.Avatar,
			SubscriberCount: subscriberCount,
			IsSubscribed:    isSubscribed,
		},
	}, nil
}

// recordView 观看副作用：播放量只在该观察者首次观看时递增；
// 去重模式下观看历史用条件插入保证幂等，否则每次观看都追加一条
func (s *VideoService) recordView(video *model.Video, viewerID int64) error {
	if s.dedupHistory {
		firstWatch, err := s.historyStore.InsertFirstWatch(viewerID, video.ID)
		if err != nil {
			return err
		}
		if !firstWatch {
			return nil
		}
		if err := s.videoStore.IncrementViewCount(video.ID); err != nil {
			return err
		}
		video.ViewCount++
		return nil
	}

	watched, err := s.historyStore.HasWatched(viewerID, video.ID)
	if err != nil {
		return err
	}
	if err := s.historyStore.Append(viewerID, video.ID); err != nil {
		return err
	}
	if !watched {
		if err := s.videoStore.IncrementViewCount(video.ID); err != nil {
			return err
		}
		video.ViewCount++
	}
	return nil
}

func (s *VideoService) removeUploaded(ctx context.Context, urls ...string) {
	for _, u := range urls {
		if u == "" {
			continue
		}
		if err := s.mediaStore.Remove(ctx, u); err != nil {
			logger.Warn("回滚已上传对象失败", zap.String("url", u), zap.Error(err))
		}
	}
}
