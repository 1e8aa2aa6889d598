package service

import (
	"errors"
	"fmt"

	"vidtube/internal/api/dto"
	"vidtube/internal/model"

	"gorm.io/gorm"
)

// CommentService 评论服务
type CommentService struct {
	commentStore CommentStore
	videoStore   VideoStore
	userStore    UserStore
}

func NewCommentService(commentStore CommentStore, videoStore VideoStore, userStore UserStore) *CommentService {
	return &CommentService{
		commentStore: commentStore,
		videoStore:   videoStore,
		userStore:    userStore,
	}
}

// Add 为视频添加评论，目标视频不存在时返回 ErrVideoNotFound
func (s *CommentService) Add(videoID, ownerID int64, req *dto.AddCommentRequest) (*dto.CommentInfo, error) {
	if err := s.ensureVideoExists(videoID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		VideoID: videoID,
		OwnerID: ownerID,
		Content: req.Content,
	}

	if err := s.commentStore.Create(comment); err != nil {
		return nil, fmt.Errorf("创建评论失败: %w", err)
	}

	// 响应里带作者公开信息，Create 不会回填关联
	owner, err := s.userStore.GetByID(ownerID)
	if err != nil {
		return nil, fmt.Errorf("查询评论作者失败: %w", err)
	}
	comment.Owner = *owner

	info := toCommentInfo(comment)
	return &info, nil
}

// ListByVideo 分页获取视频评论：按创建时间倒序，空列表是正常结果
func (s *CommentService) ListByVideo(videoID int64, page, limit int) (*dto.CommentListData, error) {
	if err := s.ensureVideoExists(videoID); err != nil {
		return nil, err
	}

	skip := (page - 1) * limit
	comments, total, err := s.commentStore.ListByVideo(videoID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("查询评论列表失败: %w", err)
	}

	infos := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		infos = append(infos, toCommentInfo(&comments[i]))
	}

	return &dto.CommentListData{
		Comments: infos,
		Meta:     dto.NewPaginationMeta(page, limit, total),
	}, nil
}

func (s *CommentService) ensureVideoExists(videoID int64) error {
	if _, err := s.videoStore.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVideoNotFound
		}
		return fmt.Errorf("查询视频失败: %w", err)
	}
	return nil
}

func toCommentInfo(comment *model.Comment) dto.CommentInfo {
	return dto.CommentInfo{
		ID:        comment.ID,
		VideoID:   comment.VideoID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		Owner:     toOwnerBrief(&comment.Owner),
	}
}
