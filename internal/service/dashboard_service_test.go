package service

import (
	"context"
	"testing"

	"vidtube/internal/model"
	"vidtube/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatsWithoutCache(t *testing.T) {
	stats := newFakeStatsStore()
	stats.stats[1] = repository.ChannelStats{
		TotalVideos:      3,
		TotalViews:       1200,
		TotalLikes:       45,
		TotalSubscribers: 9,
	}

	videos := newFakeVideoStore()
	svc := NewDashboardService(stats, videos, newFakeLikeStore(videos), nil)

	got, err := svc.GetStats(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(3), got.TotalVideos)
	assert.Equal(t, int64(1200), got.TotalViews)
	assert.Equal(t, int64(45), got.TotalLikes)
	assert.Equal(t, int64(9), got.TotalSubscribers)
}

func TestGetStatsZeroForNewChannel(t *testing.T) {
	videos := newFakeVideoStore()
	svc := NewDashboardService(newFakeStatsStore(), videos, newFakeLikeStore(videos), nil)

	got, err := svc.GetStats(context.Background(), 42)
	require.NoError(t, err)

	assert.Zero(t, got.TotalVideos)
	assert.Zero(t, got.TotalViews)
	assert.Zero(t, got.TotalLikes)
	assert.Zero(t, got.TotalSubscribers)
}

func TestGetChannelVideosIncludesUnpublished(t *testing.T) {
	videos := newFakeVideoStore()
	likes := newFakeLikeStore(videos)
	svc := NewDashboardService(newFakeStatsStore(), videos, likes, nil)

	require.NoError(t, videos.Create(&model.Video{OwnerID: 1, Title: "public", IsPublished: true}))
	require.NoError(t, videos.Create(&model.Video{OwnerID: 1, Title: "draft", IsPublished: false}))
	require.NoError(t, videos.Create(&model.Video{OwnerID: 2, Title: "someone-else", IsPublished: true}))

	data, err := svc.GetChannelVideos(1, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, int64(2), data.Meta.Total)
	require.Len(t, data.Videos, 2)

	titles := []string{data.Videos[0].Title, data.Videos[1].Title}
	assert.ElementsMatch(t, []string{"public", "draft"}, titles)
}
