package service

import (
	"vidtube/internal/api/dto"
	"vidtube/internal/model"
)

// model -> dto 转换工具，服务层共用

func toUserInfo(user *model.User) dto.UserInfo {
	return dto.UserInfo{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Avatar:     user.Avatar,
		CoverImage: user.CoverImage,
		CreatedAt:  user.CreatedAt,
	}
}

func toOwnerBrief(user *model.User) dto.OwnerBrief {
	return dto.OwnerBrief{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Avatar:   user.Avatar,
	}
}

func toVideoInfo(video *model.Video, likes int64, withOwner bool) dto.VideoInfo {
	info := dto.VideoInfo{
		ID:           video.ID,
		OwnerID:      video.OwnerID,
		Title:        video.Title,
		Description:  video.Description,
		VideoURL:     video.VideoURL,
		ThumbnailURL: video.ThumbnailURL,
		Duration:     video.Duration,
		ViewCount:    video.ViewCount,
		IsPublished:  video.IsPublished,
		Likes:        likes,
		CreatedAt:    video.CreatedAt,
	}
	if withOwner {
		owner := toOwnerBrief(&video.Owner)
		info.Owner = &owner
	}
	return info
}

// buildVideoInfos 按批量点赞数装饰视频列表，保持入参顺序
func buildVideoInfos(videos []model.Video, likeCounts map[int64]int64, withOwner bool) []dto.VideoInfo {
	infos := make([]dto.VideoInfo, 0, len(videos))
	for i := range videos {
		infos = append(infos, toVideoInfo(&videos[i], likeCounts[videos[i].ID], withOwner))
	}
	return infos
}

func videoIDs(videos []model.Video) []int64 {
	ids := make([]int64, 0, len(videos))
	for i := range videos {
		ids = append(ids, videos[i].ID)
	}
	return ids
}
