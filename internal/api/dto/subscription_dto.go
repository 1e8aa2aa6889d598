package dto

import "time"

// SubscriptionToggleData 订阅 toggle 结果：state 为 added / removed
type SubscriptionToggleData struct {
	State           string `json:"state"`
	ChannelID       int64  `json:"channel_id"`
	SubscriberCount int64  `json:"subscriber_count"`
}

// SubscriberInfo 订阅者条目
type SubscriberInfo struct {
	User         OwnerBrief `json:"user"`
	SubscribedAt time.Time  `json:"subscribed_at"`
}

// SubscriberListData 订阅者列表响应数据
type SubscriberListData struct {
	Subscribers []SubscriberInfo `json:"subscribers"`
	Meta        PaginationMeta   `json:"meta"`
}

// SubscribedChannelInfo 已订阅频道条目
type SubscribedChannelInfo struct {
	Channel      OwnerBrief `json:"channel"`
	SubscribedAt time.Time  `json:"subscribed_at"`
}

// SubscribedChannelListData 已订阅频道列表响应数据
type SubscribedChannelListData struct {
	Channels []SubscribedChannelInfo `json:"channels"`
	Meta     PaginationMeta          `json:"meta"`
}
