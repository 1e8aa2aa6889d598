package service

import (
	"errors"
	"fmt"

	"vidtube/internal/api/dto"
	"vidtube/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrChannelNotFound = errors.New("频道不存在")
	ErrSubscribeSelf   = errors.New("不能订阅自己的频道")
)

// SubscriptionService 订阅服务
type SubscriptionService struct {
	subStore  SubscriptionStore
	userStore UserStore
}

func NewSubscriptionService(subStore SubscriptionStore, userStore UserStore) *SubscriptionService {
	return &SubscriptionService{
		subStore:  subStore,
		userStore: userStore,
	}
}

// Toggle 订阅/取消订阅频道
// 与点赞同一套路：条件插入冲突即"已订阅"，转为删除；自订阅直接拒绝
func (s *SubscriptionService) Toggle(subscriberID, channelID int64) (*dto.SubscriptionToggleData, error) {
	if subscriberID == channelID {
		return nil, ErrSubscribeSelf
	}

	if _, err := s.userStore.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("查询频道失败: %w", err)
	}

	state := ToggleStateAdded
	inserted, err := s.subStore.InsertIfAbsent(subscriberID, channelID)
	if err != nil {
		return nil, fmt.Errorf("订阅写入失败: %w", err)
	}
	if !inserted {
		if _, err := s.subStore.Delete(subscriberID, channelID); err != nil {
			return nil, fmt.Errorf("取消订阅失败: %w", err)
		}
		state = ToggleStateRemoved
	}

	subscriberCount, err := s.subStore.CountSubscribers(channelID)
	if err != nil {
		return nil, fmt.Errorf("统计订阅数失败: %w", err)
	}

	logger.Debug("订阅状态切换",
		zap.Int64("subscriber_id", subscriberID),
		zap.Int64("channel_id", channelID),
		zap.String("state", state))

	return &dto.SubscriptionToggleData{
		State:           state,
		ChannelID:       channelID,
		SubscriberCount: subscriberCount,
	}, nil
}

// ListSubscribers 分页获取频道的订阅者
func (s *SubscriptionService) ListSubscribers(channelID int64, page, limit int) (*dto.SubscriberListData, error) {
	if _, err := s.userStore.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("查询频道失败: %w", err)
	}

	skip := (page - 1) * limit
	subs, total, err := s.subStore.ListSubscribers(channelID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("查询订阅者列表失败: %w", err)
	}

	subscribers := make([]dto.SubscriberInfo, 0, len(subs))
	for i := range subs {
		subscribers = append(subscribers, dto.SubscriberInfo{
			User:         toOwnerBrief(&subs[i].Subscriber),
			SubscribedAt: subs[i].CreatedAt,
		})
	}

	return &dto.SubscriberListData{
		Subscribers: subscribers,
		Meta:        dto.NewPaginationMeta(page, limit, total),
	}, nil
}

// ListSubscribedChannels 分页获取当前用户订阅的频道
func (s *SubscriptionService) ListSubscribedChannels(subscriberID int64, page, limit int) (*dto.SubscribedChannelListData, error) {
	skip := (page - 1) * limit
	subs, total, err := s.subStore.ListSubscribedChannels(subscriberID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("查询已订阅频道失败: %w", err)
	}

	channels := make([]dto.SubscribedChannelInfo, 0, len(subs))
	for i := range subs {
		channels = append(channels, dto.SubscribedChannelInfo{
			Channel:      toOwnerBrief(&subs[i].Channel),
			SubscribedAt: subs[i].CreatedAt,
		})
	}

	return &dto.SubscribedChannelListData{
		Channels: channels,
		Meta:     dto.NewPaginationMeta(page, limit, total),
	}, nil
}
