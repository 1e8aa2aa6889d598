package service

import (
	"context"

	"vidtube/internal/model"
	"vidtube/internal/repository"
)

// 服务层按接口依赖持久层与外部协作方，repository / infra 提供具体实现

// UserStore 用户存取
type UserStore interface {
	Create(user *model.User) error
	GetByID(id int64) (*model.User, error)
	GetByUsername(username string) (*model.User, error)
	GetByEmailOrUsername(identifier string) (*model.User, error)
	ExistsByEmailOrUsername(email, username string) (bool, error)
	UpdateRefreshToken(id int64, token string) error
}

// VideoStore 视频存取
type VideoStore interface {
	Create(video *model.Video) error
	GetByID(id int64) (*model.Video, error)
	GetByIDWithOwner(id int64) (*model.Video, error)
	List(skip, limit int, ownerID *int64, publishedOnly bool, search string, withOwner bool) ([]model.Video, int64, error)
	GetByIDs(ids []int64, withOwner bool) ([]model.Video, error)
	IncrementViewCount(id int64) error
}

// CommentStore 评论存取
type CommentStore interface {
	Create(comment *model.Comment) error
	ListByVideo(videoID int64, skip, limit int) ([]model.Comment, int64, error)
}

// LikeStore 点赞关系存取
type LikeStore interface {
	InsertIfAbsent(userID, videoID int64) (bool, error)
	Delete(userID, videoID int64) (bool, error)
	Exists(userID, videoID int64) (bool, error)
	CountByVideo(videoID int64) (int64, error)
	CountByVideos(videoIDs []int64) (map[int64]int64, error)
	BatchCheckLiked(userID int64, videoIDs []int64) (map[int64]bool, error)
	ListByUser(userID int64, skip, limit int) ([]model.Like, int64, error)
}

// SubscriptionStore 订阅关系存取
type SubscriptionStore interface {
	InsertIfAbsent(subscriberID, channelID int64) (bool, error)
	Delete(subscriberID, channelID int64) (bool, error)
	Exists(subscriberID, channelID int64) (bool, error)
	CountSubscribers(channelID int64) (int64, error)
	CountSubscribedTo(subscriberID int64) (int64, error)
	ListSubscribers(channelID int64, skip, limit int) ([]model.Subscription, int64, error)
	ListSubscribedChannels(subscriberID int64, skip, limit int) ([]model.Subscription, int64, error)
}

// HistoryStore 观看历史存取
type HistoryStore interface {
	InsertFirstWatch(userID, videoID int64) (bool, error)
	Append(userID, videoID int64) error
	HasWatched(userID, videoID int64) (bool, error)
	ListByUser(userID int64, skip, limit int) ([]model.WatchHistory, int64, error)
}

// StatsStore 频道统计聚合
type StatsStore interface {
	GetChannelStats(channelID int64) (*repository.ChannelStats, error)
}

// MediaStore 媒体托管协作方：本地文件换持久 URL，按 URL 删除远端对象
type MediaStore interface {
	UploadFile(ctx context.Context, bucket, objectName, filePath string) (string, error)
	Remove(ctx context.Context, fileURL string) error
}

// EventPublisher 领域事件发布（视频发布 -> 搜索索引同步）
type EventPublisher interface {
	PublishVideoPublished(ctx context.Context, video *model.Video) error
}
