package repository

import "gorm.io/gorm"

// 查询阶段以 gorm Scope 的形式组合：各个列表接口共享同一套
// match / filter / paginate 片段，而不是在每个查询里内联条件

// Published 仅已发布视频
func Published() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_published = ?", true)
	}
}

// OwnedBy 按作者筛选
func OwnedBy(ownerID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}

// MatchText 标题/描述模糊匹配
func MatchText(query string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if query == "" {
			return db
		}
		pattern := "%" + query + "%"
		return db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
}

// NewestFirst 创建时间倒序
func NewestFirst() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}
}

// Paginate 统一分页：skip = (page-1)*limit 由调用方换算
func Paginate(skip, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(skip).Limit(limit)
	}
}
