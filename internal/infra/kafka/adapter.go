package kafka

import (
	"context"

	"vidtube/internal/model"
)

// Publisher 领域事件发布适配器，供服务层按接口依赖
type Publisher struct {
	videoPublishedTopic string
}

func NewPublisher(videoPublishedTopic string) *Publisher {
	return &Publisher{videoPublishedTopic: videoPublishedTopic}
}

// PublishVideoPublished 把视频发布事件投递到 Kafka
func (p *Publisher) PublishVideoPublished(ctx context.Context, video *model.Video) error {
	return SendVideoPublished(ctx, p.videoPublishedTopic, &VideoPublishedEvent{
		VideoID:     video.ID,
		OwnerID:     video.OwnerID,
		Title:       video.Title,
		Description: video.Description,
		Duration:    video.Duration,
		PublishedAt: video.CreatedAt.Unix(),
	})
}
