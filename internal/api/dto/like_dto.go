package dto

// LikeToggleData 点赞 toggle 结果：state 为 added / removed
type LikeToggleData struct {
	State      string `json:"state"`
	VideoID    int64  `json:"video_id"`
	TotalLikes int64  `json:"total_likes"`
}

// LikedVideosData 点赞视频列表响应数据
type LikedVideosData struct {
	Videos []VideoInfo    `json:"videos"`
	Meta   PaginationMeta `json:"meta"`
}
