package dto

import "time"

// ChannelProfile 频道主页：订阅统计与观察者标记均为读取时计算
type ChannelProfile struct {
	ID                int64       `json:"id"`
	Username          string      `json:"username"`
	FullName          string      `json:"full_name"`
	Avatar            string      `json:"avatar"`
	CoverImage        string      `json:"cover_image"`
	SubscriberCount   int64       `json:"subscriber_count"`
	SubscribedToCount int64       `json:"subscribed_to_count"`
	IsSubscribed      bool        `json:"is_subscribed"`
	TotalVideos       int64       `json:"total_videos"`
	Videos            []VideoInfo `json:"videos"`
}

// WatchHistoryEntry 观看历史条目
type WatchHistoryEntry struct {
	Video     VideoInfo `json:"video"`
	WatchedAt time.Time `json:"watched_at"`
}

// WatchHistoryData 观看历史响应数据
type WatchHistoryData struct {
	History []WatchHistoryEntry `json:"history"`
	Meta    PaginationMeta      `json:"meta"`
}
