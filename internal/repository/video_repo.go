package repository

import (
	"vidtube/internal/model"

	"gorm.io/gorm"
)

type VideoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// Create 创建视频记录
func (r *VideoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.First(&video, id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// GetByIDWithOwner 根据 ID 获取视频（含作者信息）
func (r *VideoRepository) GetByIDWithOwner(id int64) (*model.Video, error) {
	var video model.Video
	err := r.db.Preload("Owner").First(&video, id).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// List 视频列表查询（match -> join -> sort -> paginate）
// publishedOnly 为 false 时包含未发布视频（仅创作者后台使用）
func (r *VideoRepository) List(skip, limit int, ownerID *int64, publishedOnly bool, search string, withOwner bool) ([]model.Video, int64, error) {
	query := r.db.Model(&model.Video{}).Scopes(MatchText(search))

	if publishedOnly {
		query = query.Scopes(Published())
	}
	if ownerID != nil {
		query = query.Scopes(OwnedBy(*ownerID))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	findQuery := query.Scopes(NewestFirst(), Paginate(skip, limit))
	if withOwner {
		findQuery = findQuery.Preload("Owner")
	}

	var videos []model.Video
	if err := findQuery.Find(&videos).Error; err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

// GetByIDs 批量查询视频（ES 搜索回表用，保持传入顺序）
func (r *VideoRepository) GetByIDs(ids []int64, withOwner bool) ([]model.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := r.db.Where("id IN ?", ids).Scopes(Published())
	if withOwner {
		query = query.Preload("Owner")
	}

	var videos []model.Video
	if err := query.Find(&videos).Error; err != nil {
		return nil, err
	}

	byID := make(map[int64]model.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	ordered := make([]model.Video, 0, len(videos))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered, nil
}

// IncrementViewCount 播放量 +1
func (r *VideoRepository) IncrementViewCount(id int64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
