package service

import (
	"context"
	"testing"

	"vidtube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ES 客户端未初始化时搜索走数据库降级路径
func TestSearchVideosFallsBackToDB(t *testing.T) {
	videos := newFakeVideoStore()
	likes := newFakeLikeStore(videos)
	svc := NewSearchService(videos, likes, "videos_test")

	require.NoError(t, videos.Create(&model.Video{OwnerID: 1, Title: "Golang 入门教程", IsPublished: true}))
	require.NoError(t, videos.Create(&model.Video{OwnerID: 1, Title: "Rust 入门教程", IsPublished: true}))
	require.NoError(t, videos.Create(&model.Video{OwnerID: 1, Title: "Golang 进阶", Description: "草稿", IsPublished: false}))

	data, err := svc.SearchVideos(context.Background(), "golang", 1, 10)
	require.NoError(t, err)

	require.Len(t, data.Videos, 1, "只命中已发布视频")
	assert.Equal(t, "Golang 入门教程", data.Videos[0].Title)
	assert.Equal(t, int64(1), data.Meta.Total)
}

func TestSearchVideosMatchesDescription(t *testing.T) {
	videos := newFakeVideoStore()
	likes := newFakeLikeStore(videos)
	svc := NewSearchService(videos, likes, "videos_test")

	require.NoError(t, videos.Create(&model.Video{
		OwnerID:     1,
		Title:       "untitled",
		Description: "一个关于分布式系统的视频",
		IsPublished: true,
	}))

	data, err := svc.SearchVideos(context.Background(), "分布式", 1, 10)
	require.NoError(t, err)
	require.Len(t, data.Videos, 1)
}
