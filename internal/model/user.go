package model

import "time"

// User 用户模型（同时也是可被订阅的频道）
type User struct {
	ID           int64     `gorm:"primaryKey;autoIncrement;comment:用户标识" json:"id"`
	Username     string    `gorm:"size:255;not null;uniqueIndex;comment:用户名（小写）" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex;comment:邮箱" json:"email"`
	FullName     string    `gorm:"size:255;not null;index:idx_users_full_name;comment:昵称" json:"full_name"`
	Password     string    `gorm:"size:255;not null;comment:密码哈希" json:"-"` // json:"-" 序列化时忽略密码
	Avatar       string    `gorm:"size:500;not null;comment:头像地址" json:"avatar"`
	CoverImage   string    `gorm:"size:500;comment:主页封面地址" json:"cover_image"`
	RefreshToken string    `gorm:"size:1024;comment:当前刷新令牌" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Videos       []Video        `gorm:"foreignKey:OwnerID" json:"videos,omitempty"`
	Comments     []Comment      `gorm:"foreignKey:OwnerID" json:"comments,omitempty"`
	Likes        []Like         `gorm:"foreignKey:UserID" json:"likes,omitempty"`
	WatchHistory []WatchHistory `gorm:"foreignKey:UserID" json:"watch_history,omitempty"`
}

func (User) TableName() string {
	return "users"
}
