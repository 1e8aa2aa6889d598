package repository

import "gorm.io/gorm"

// ChannelStats 频道统计汇总
type ChannelStats struct {
	TotalVideos      int64 `json:"total_videos"`
	TotalViews       int64 `json:"total_views"`
	TotalLikes       int64 `json:"total_likes"`
	TotalSubscribers int64 `json:"total_subscribers"`
}

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// GetChannelStats 聚合频道的视频数、总播放量、总获赞数、订阅者数
// 点赞数按"频道名下视频收到的点赞"统计，与读侧口径一致
func (r *DashboardRepository) GetChannelStats(channelID int64) (*ChannelStats, error) {
	var stats ChannelStats

	err := r.db.Raw(`
		SELECT
			(SELECT COUNT(*) FROM videos WHERE owner_id = ?) AS total_videos,
			(SELECT COALESCE(SUM(view_count), 0) FROM videos WHERE owner_id = ?) AS total_views,
			(SELECT COUNT(*) FROM likes l JOIN videos v ON l.video_id = v.id WHERE v.owner_id = ?) AS total_likes,
			(SELECT COUNT(*) FROM subscriptions WHERE channel_id = ?) AS total_subscribers
	`, channelID, channelID, channelID, channelID).Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
