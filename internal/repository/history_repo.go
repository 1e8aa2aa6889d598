package repository

import (
	"time"

	"vidtube/internal/model"

	"gorm.io/gorm"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// InsertFirstWatch 首次观看时插入历史记录
// 单条条件插入语句，避免先查后写的并发窗口；返回是否真正插入
func (r *HistoryRepository) InsertFirstWatch(userID, videoID int64) (bool, error) {
	result := r.db.Exec(`
		INSERT INTO watch_history (user_id, video_id, watched_at)
		SELECT ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM watch_history WHERE user_id = ? AND video_id = ?
		)
	`, userID, videoID, time.Now(), userID, videoID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Append 追加观看历史记录（允许重复的策略下使用）
func (r *HistoryRepository) Append(userID, videoID int64) error {
	entry := &model.WatchHistory{UserID: userID, VideoID: videoID}
	return r.db.Create(entry).Error
}

// HasWatched 检查用户是否看过该视频
func (r *HistoryRepository) HasWatched(userID, videoID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.WatchHistory{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser 获取用户观看历史（含视频及其作者，观看时间倒序，分页）
func (r *HistoryRepository) ListByUser(userID int64, skip, limit int) ([]model.WatchHistory, int64, error) {
	query := r.db.Model(&model.WatchHistory{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []model.WatchHistory
	err := query.Preload("Video").Preload("Video.Owner").
		Order("watched_at DESC").
		Scopes(Paginate(skip, limit)).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
