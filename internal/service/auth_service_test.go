package service

import (
	"context"
	"testing"

	"vidtube/internal/api/dto"
	"vidtube/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthServiceFixture(t *testing.T) (*AuthService, *fakeUserStore, *fakeMediaStore) {
	t.Helper()
	users := newFakeUserStore()
	media := newFakeMediaStore()
	return NewAuthService(users, media), users, media
}

func registerTestUser(t *testing.T, svc *AuthService) *dto.UserInfo {
	t.Helper()
	info, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Test User",
		Email:    "user@test.local",
		Username: "TestUser",
		Password: "secret-password",
	}, "/tmp/avatar.png", "")
	require.NoError(t, err)
	return info
}

func TestRegisterNormalizesAndUploads(t *testing.T) {
	svc, users, media := newAuthServiceFixture(t)

	info := registerTestUser(t, svc)

	assert.Equal(t, "testuser", info.Username, "用户名落库前小写化")
	assert.NotEmpty(t, info.Avatar)
	assert.Len(t, media.uploads, 1)

	stored, err := users.GetByID(info.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", stored.Password, "密码只保存哈希")
	assert.True(t, utils.VerifyPassword("secret-password", stored.Password))
}

func TestRegisterDuplicateRejected(t *testing.T) {
	svc, _, media := newAuthServiceFixture(t)

	registerTestUser(t, svc)
	uploadsAfterFirst := len(media.uploads)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		FullName: "Other",
		Email:    "user@test.local",
		Username: "someone-else",
		Password: "secret-password",
	}, "/tmp/avatar2.png", "")

	assert.ErrorIs(t, err, ErrUserExists)
	assert.Len(t, media.uploads, uploadsAfterFirst, "冲突在上传之前就被拦截")
}

func TestLoginByEmailAndUsername(t *testing.T) {
	svc, _, _ := newAuthServiceFixture(t)
	registerTestUser(t, svc)

	byEmail, err := svc.Login(&dto.LoginRequest{Identifier: "user@test.local", Password: "secret-password"})
	require.NoError(t, err)
	assert.NotEmpty(t, byEmail.AccessToken)
	assert.NotEmpty(t, byEmail.RefreshToken)
	assert.Equal(t, "Bearer", byEmail.TokenType)

	byUsername, err := svc.Login(&dto.LoginRequest{Identifier: "testuser", Password: "secret-password"})
	require.NoError(t, err)
	assert.Equal(t, byEmail.User.ID, byUsername.User.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthServiceFixture(t)
	registerTestUser(t, svc)

	_, err := svc.Login(&dto.LoginRequest{Identifier: "testuser", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newAuthServiceFixture(t)

	_, err := svc.Login(&dto.LoginRequest{Identifier: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestRefreshTokenRotation(t *testing.T) {
	svc, users, _ := newAuthServiceFixture(t)
	info := registerTestUser(t, svc)

	first, err := svc.Login(&dto.LoginRequest{Identifier: "testuser", Password: "secret-password"})
	require.NoError(t, err)

	rotated, err := svc.RefreshTokens(first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)

	stored, err := users.GetByID(info.ID)
	require.NoError(t, err)
	assert.Equal(t, rotated.RefreshToken, stored.RefreshToken, "服务端只认最新一枚刷新令牌")
}

func TestRefreshTokenRejectedAfterLogout(t *testing.T) {
	svc, _, _ := newAuthServiceFixture(t)
	info := registerTestUser(t, svc)

	tokens, err := svc.Login(&dto.LoginRequest{Identifier: "testuser", Password: "secret-password"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(info.ID))

	_, err = svc.RefreshTokens(tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRefreshTokenGarbageRejected(t *testing.T) {
	svc, _, _ := newAuthServiceFixture(t)

	_, err := svc.RefreshTokens("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestGetCurrentUser(t *testing.T) {
	svc, _, _ := newAuthServiceFixture(t)
	info := registerTestUser(t, svc)

	got, err := svc.GetCurrentUser(info.ID)
	require.NoError(t, err)
	assert.Equal(t, info.Username, got.Username)

	_, err = svc.GetCurrentUser(999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
