package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"vidtube/internal/api/dto"
	"vidtube/internal/config"
	"vidtube/internal/model"
	"vidtube/pkg/logger"
	"vidtube/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUserExists          = errors.New("邮箱或用户名已被注册")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrInvalidCredential   = errors.New("用户名或密码错误")
	ErrInvalidRefreshToken = errors.New("刷新令牌无效或已被轮换")
)

// AuthService 账号服务：注册、登录、登出与令牌轮换
type AuthService struct {
	userStore UserStore
	media     MediaStore
}

func NewAuthService(userStore UserStore, media MediaStore) *AuthService {
	return &AuthService{
		userStore: userStore,
		media:     media,
	}
}

// Register 注册新用户
// 头像必传、封面可选，先上传媒体再落库；落库失败时回滚已上传的对象
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest, avatarPath, coverPath string) (*dto.UserInfo, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userStore.ExistsByEmailOrUsername(email, username)
	if err != nil {
		return nil, fmt.Errorf("检查用户是否存在失败: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	imageBucket := config.GetUpload().ImageBucket

	avatarURL, err := s.media.UploadFile(ctx, imageBucket, imageObjectName("avatars", avatarPath), avatarPath)
	if err != nil {
		return nil, fmt.Errorf("头像上传失败: %w", err)
	}

	var coverURL string
	if coverPath != "" {
		coverURL, err = s.media.UploadFile(ctx, imageBucket, imageObjectName("covers", coverPath), coverPath)
		if err != nil {
			s.removeUploaded(ctx, avatarURL)
			return nil, fmt.Errorf("封面上传失败: %w", err)
		}
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.removeUploaded(ctx, avatarURL, coverURL)
		return nil, err
	}

	user := &model.User{
		Username:   username,
		Email:      email,
		FullName:   req.FullName,
		Password:   hashed,
		Avatar:     avatarURL,
		CoverImage: coverURL,
	}

	if err := s.userStore.Create(user); err != nil {
		s.removeUploaded(ctx, avatarURL, coverURL)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("创建用户失败: %w", err)
	}

	logger.Info("用户注册成功",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username))

	info := toUserInfo(user)
	return &info, nil
}

// Login 登录：identifier 支持邮箱或用户名，成功后签发令牌对并保存刷新令牌
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenData, error) {
	user, err := s.userStore.GetByEmailOrUsername(strings.ToLower(strings.TrimSpace(req.Identifier)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	return s.issueTokens(user)
}

// Logout 登出：清空服务端保存的刷新令牌，旧令牌随即失效
func (s *AuthService) Logout(userID int64) error {
	if err := s.userStore.UpdateRefreshToken(userID, ""); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("清除刷新令牌失败: %w", err)
	}
	return nil
}

// RefreshTokens 刷新令牌轮换：校验入参与服务端保存值一致后签发新令牌对
func (s *AuthService) RefreshTokens(refreshToken string) (*dto.TokenData, error) {
	claims, err := utils.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.userStore.GetByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	// 与保存值不一致说明令牌已被轮换或登出，拒绝复用
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, ErrInvalidRefreshToken
	}

	return s.issueTokens(user)
}

// GetCurrentUser 获取当前登录用户信息
func (s *AuthService) GetCurrentUser(userID int64) (*dto.UserInfo, error) {
	user, err := s.userStore.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("查询用户失败: %w", err)
	}

	info := toUserInfo(user)
	return &info, nil
}

func (s *AuthService) issueTokens(user *model.User) (*dto.TokenData, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("生成访问令牌失败: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("生成刷新令牌失败: %w", err)
	}

	if err := s.userStore.UpdateRefreshToken(user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("保存刷新令牌失败: %w", err)
	}

	return &dto.TokenData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		User:         toUserInfo(user),
	}, nil
}

func (s *AuthService) removeUploaded(ctx context.Context, urls ...string) {
	for _, u := range urls {
		if u == "" {
			continue
		}
		if err := s.media.Remove(ctx, u); err != nil {
			logger.Warn("回滚已上传对象失败", zap.String("url", u), zap.Error(err))
		}
	}
}

func imageObjectName(prefix, localPath string) string {
	return fmt.Sprintf("%s/%d%s", prefix, time.Now().UnixNano(), filepath.Ext(localPath))
}
