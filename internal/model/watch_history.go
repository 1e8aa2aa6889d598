package model

import "time"

// WatchHistory 观看历史模型（按用户归属，watched_at 倒序即观看记录）
// 是否允许同一视频重复出现由 app.dedup_watch_history 策略控制，
// 去重模式下通过条件插入保证首次观看语义
type WatchHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:观看记录ID" json:"id"`
	UserID    int64     `gorm:"not null;index:idx_watch_history_user_id;index:idx_composite_user_watched,priority:1;comment:观看用户ID" json:"user_id"`
	VideoID   int64     `gorm:"not null;index:idx_watch_history_video_id;comment:被观看视频ID" json:"video_id"`
	WatchedAt time.Time `gorm:"autoCreateTime;index:idx_composite_user_watched,priority:2;comment:观看时间" json:"watched_at"`

	// 关联关系
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Video Video `gorm:"foreignKey:VideoID" json:"video,omitempty"`
}

func (WatchHistory) TableName() string {
	return "watch_history"
}
