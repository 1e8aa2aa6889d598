package dto

import "time"

// PublishVideoRequest 视频发布请求（multipart/form-data，文件单独提取）
type PublishVideoRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	Description string `form:"description" binding:"omitempty"`
}

// OwnerBrief 列表行中嵌套的作者公开信息
type OwnerBrief struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
}

// VideoInfo 信息流/列表中的视频行
type VideoInfo struct {
	ID           int64       `json:"id"`
	OwnerID      int64       `json:"owner_id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	VideoURL     string      `json:"video_url"`
	ThumbnailURL string      `json:"thumbnail_url"`
	Duration     float64     `json:"duration"`
	ViewCount    int64       `json:"view_count"`
	IsPublished  bool        `json:"is_published"`
	Likes        int64       `json:"likes"`
	IsLiked      bool        `json:"is_liked,omitempty"` // 仅观察者相关的列表（观看历史）填充
	CreatedAt    time.Time   `json:"created_at"`
	Owner        *OwnerBrief `json:"owner,omitempty"`
}

// ChannelOwner 视频详情中的作者信息（含观察者相关字段）
type ChannelOwner struct {
	ID              int64  `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Avatar          string `json:"avatar"`
	SubscriberCount int64  `json:"subscriber_count"`
	IsSubscribed    bool   `json:"is_subscribed"`
}

// VideoDetail 视频详情：作者、点赞总数和观察者相关标记都在读取时计算
type VideoDetail struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	VideoURL     string       `json:"video_url"`
	ThumbnailURL string       `json:"thumbnail_url"`
	Duration     float64      `json:"duration"`
	ViewCount    int64        `json:"view_count"`
	TotalLikes   int64        `json:"total_likes"`
	IsLiked      bool         `json:"is_liked"`
	CreatedAt    time.Time    `json:"created_at"`
	Owner        ChannelOwner `json:"owner"`
}

// VideoListData 视频列表响应数据
type VideoListData struct {
	Videos []VideoInfo    `json:"videos"`
	Meta   PaginationMeta `json:"meta"`
}
