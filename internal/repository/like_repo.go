package repository

import (
	"vidtube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

// InsertIfAbsent 条件插入点赞记录
// 借助 (user_id, video_id) 唯一索引 + ON CONFLICT DO NOTHING，
// 返回是否真正插入：false 即记录已存在（toggle 的"改删除"信号）
func (r *LikeRepository) InsertIfAbsent(userID, videoID int64) (bool, error) {
	like := &model.Like{UserID: userID, VideoID: videoID}
	result := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete 删除点赞记录，返回是否删除了已有记录
func (r *LikeRepository) Delete(userID, videoID int64) (bool, error) {
	result := r.db.Where("user_id = ? AND video_id = ?", userID, videoID).Delete(&model.Like{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists 检查点赞关系是否存在
func (r *LikeRepository) Exists(userID, videoID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).Count(&count).Error
	return count > 0, err
}

// CountByVideo 统计视频的点赞数
func (r *LikeRepository) CountByVideo(videoID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

// CountByVideos 批量统计点赞数（信息流装饰用，一次 GROUP BY 而非逐行查询）
func (r *LikeRepository) CountByVideos(videoIDs []int64) (map[int64]int64, error) {
	if len(videoIDs) == 0 {
		return map[int64]int64{}, nil
	}

	type row struct {
		VideoID int64
		Count   int64
	}
	var rows []row
	err := r.db.Model(&model.Like{}).
		Select("video_id, COUNT(*) AS count").
		Where("video_id IN ?", videoIDs).
		Group("video_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[int64]int64, len(videoIDs))
	for _, id := range videoIDs {
		result[id] = 0
	}
	for _, row := range rows {
		result[row.VideoID] = row.Count
	}
	return result, nil
}

// BatchCheckLiked 批量查询当前用户对一组视频的点赞状态
func (r *LikeRepository) BatchCheckLiked(userID int64, videoIDs []int64) (map[int64]bool, error) {
	if len(videoIDs) == 0 {
		return map[int64]bool{}, nil
	}

	var likedIDs []int64
	err := r.db.Model(&model.Like{}).
		Where("user_id = ? AND video_id IN ?", userID, videoIDs).
		Pluck("video_id", &likedIDs).Error
	if err != nil {
		return nil, err
	}

	likedSet := make(map[int64]bool, len(likedIDs))
	for _, id := range likedIDs {
		likedSet[id] = true
	}

	result := make(map[int64]bool, len(videoIDs))
	for _, id := range videoIDs {
		result[id] = likedSet[id]
	}
	return result, nil
}

// ListByUser 获取用户点赞列表（含视频及其作者，点赞时间倒序）
func (r *LikeRepository) ListByUser(userID int64, skip, limit int) ([]model.Like, int64, error) {
	query := r.db.Model(&model.Like{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var likes []model.Like
	err := query.Preload("Video").Preload("Video.Owner").
		Scopes(NewestFirst(), Paginate(skip, limit)).
		Find(&likes).Error
	if err != nil {
		return nil, 0, err
	}
	return likes, total, nil
}
