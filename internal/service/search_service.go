package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"vidtube/internal/api/dto"
	"vidtube/internal/infra/elasticsearch"
	"vidtube/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SearchService 视频全文搜索：Elasticsearch 优先，不可用时降级为数据库模糊匹配
type SearchService struct {
	videoStore VideoStore
	likeStore  LikeStore
	indexName  string
}

func NewSearchService(videoStore VideoStore, likeStore LikeStore, indexName string) *SearchService {
	if indexName == "" {
		indexName = "videos"
	}
	return &SearchService{
		videoStore: videoStore,
		likeStore:  likeStore,
		indexName:  indexName,
	}
}

// esVideoDoc videos 索引中的文档结构
type esVideoDoc struct {
	ID          int64   `json:"id"`
	OwnerID     int64   `json:"owner_id"`
	OwnerName   string  `json:"owner_name"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	ViewCount   int64   `json:"view_count"`
	PublishedAt int64   `json:"published_at"`
	CreatedAt   string  `json:"created_at"`
}

type esSearchResult struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source esVideoDoc `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchVideos 按关键词搜索已发布视频
func (s *SearchService) SearchVideos(ctx context.Context, query string, page, limit int) (*dto.VideoListData, error) {
	ids, total, err := s.searchES(ctx, query, page, limit)
	if err != nil {
		logger.Warn("ES 搜索失败，降级为数据库模糊匹配", zap.String("query", query), zap.Error(err))
		return s.searchDB(query, page, limit)
	}

	videos, err := s.videoStore.GetByIDs(ids, true)
	if err != nil {
		return nil, fmt.Errorf("按搜索结果查询视频失败: %w", err)
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

// SyncVideoToES 将视频写入搜索索引（worker 消费 video_published 事件时调用）
func (s *SearchService) SyncVideoToES(ctx context.Context, videoID int64) error {
	video, err := s.videoStore.GetByIDWithOwner(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("待索引视频已不存在", zap.Int64("video_id", videoID))
			return nil
		}
		return fmt.Errorf("查询待索引视频失败: %w", err)
	}

	doc := esVideoDoc{
		ID:          video.ID,
		OwnerID:     video.OwnerID,
		OwnerName:   video.Owner.Username,
		Title:       video.Title,
		Description: video.Description,
		Duration:    video.Duration,
		ViewCount:   video.ViewCount,
		PublishedAt: video.CreatedAt.Unix(),
		CreatedAt:   video.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("序列化索引文档失败: %w", err)
	}

	resp, err := elasticsearch.Index(ctx, s.indexName, fmt.Sprintf("%d", video.ID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("写入搜索索引失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("写入搜索索引失败: %s", resp.String())
	}

	logger.Info("视频已写入搜索索引", zap.Int64("video_id", video.ID))
	return nil
}

// searchES 在 ES 上执行 multi_match 查询，返回命中视频 ID（按相关性排序）与总数
func (s *SearchService) searchES(ctx context.Context, query string, page, limit int) ([]int64, int64, error) {
	queryBody := map[string]interface{}{
		"from":             (page - 1) * limit,
		"size":             limit,
		"track_total_hits": true,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title^3", "description", "owner_name"},
			},
		},
	}

	body, err := json.Marshal(queryBody)
	if err != nil {
		return nil, 0, err
	}

	resp, err := elasticsearch.Search(ctx, s.indexName, bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, 0, fmt.Errorf("elasticsearch search error: %s", resp.String())
	}

	var result esSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, result.Hits.Total.Value, nil
}

// searchDB 数据库降级路径：ILIKE 匹配标题与描述
func (s *SearchService) searchDB(query string, page, limit int) (*dto.VideoListData, error) {
	skip := (page - 1) * limit

	videos, total, err := s.videoStore.List(skip, limit, nil, true, query, true)
	if err != nil {
		return nil, fmt.Errorf("搜索视频失败: %w", err)
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
