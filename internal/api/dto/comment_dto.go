package dto

import "time"

// AddCommentRequest 添加评论请求
type AddCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
}

// CommentInfo 评论行（只暴露作者公开字段）
type CommentInfo struct {
	ID        int64      `json:"id"`
	VideoID   int64      `json:"video_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	Owner     OwnerBrief `json:"owner"`
}

// CommentListData 评论列表响应数据
type CommentListData struct {
	Comments []CommentInfo  `json:"comments"`
	Meta     PaginationMeta `json:"meta"`
}
