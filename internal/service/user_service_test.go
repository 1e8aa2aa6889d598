package service

import (
	"testing"

	"vidtube/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userServiceFixture struct {
	users   *fakeUserStore
	videos  *fakeVideoStore
	likes   *fakeLikeStore
	subs    *fakeSubscriptionStore
	history *fakeHistoryStore
	svc     *UserService
}

func newUserServiceFixture(t *testing.T) *userServiceFixture {
	t.Helper()

	users := newFakeUserStore()
	videos := newFakeVideoStore()
	f := &userServiceFixture{
		users:   users,
		videos:  videos,
		likes:   newFakeLikeStore(videos),
		subs:    newFakeSubscriptionStore(users),
		history: newFakeHistoryStore(videos),
	}
	f.svc = NewUserService(f.users, f.videos, f.likes, f.subs, f.history)
	return f
}

func (f *userServiceFixture) seedUser(t *testing.T, name string) *model.User {
	t.Helper()
	u := &model.User{Username: name, Email: name + "@test.local", FullName: name, Password: "x"}
	require.NoError(t, f.users.Create(u))
	return u
}

func TestGetChannelProfile(t *testing.T) {
	f := newUserServiceFixture(t)
	channel := f.seedUser(t, "channel")
	viewer := f.seedUser(t, "viewer")
	other := f.seedUser(t, "other")

	for _, title := range []string{"one", "two"} {
		require.NoError(t, f.videos.Create(&model.Video{OwnerID: channel.ID, Title: title, IsPublished: true}))
	}
	require.NoError(t, f.videos.Create(&model.Video{OwnerID: channel.ID, Title: "draft", IsPublished: false}))

	_, err := f.subs.InsertIfAbsent(viewer.ID, channel.ID)
	require.NoError(t, err)
	_, err = f.subs.InsertIfAbsent(other.ID, channel.ID)
	require.NoError(t, err)
	_, err = f.subs.InsertIfAbsent(channel.ID, other.ID)
	require.NoError(t, err)

	profile, err := f.svc.GetChannelProfile("channel", viewer.ID, 1, 10)
	require.NoError(t, err)

	assert.Equal(t, "channel", profile.Username)
	assert.Equal(t, int64(2), profile.SubscriberCount)
	assert.Equal(t, int64(1), profile.SubscribedToCount)
	assert.True(t, profile.IsSubscribed)
	assert.Equal(t, int64(2), profile.TotalVideos, "频道主页只展示已发布视频")
	assert.Len(t, profile.Videos, 2)
}

func TestGetChannelProfileAnonymousViewer(t *testing.T) {
	f := newUserServiceFixture(t)
	channel := f.seedUser(t, "channel")
	subscriber := f.seedUser(t, "subscriber")

	_, err := f.subs.InsertIfAbsent(subscriber.ID, channel.ID)
	require.NoError(t, err)

	profile, err := f.svc.GetChannelProfile("channel", 0, 1, 10)
	require.NoError(t, err)

	assert.False(t, profile.IsSubscribed, "未登录观察者标记恒为 false")
	assert.Equal(t, int64(1), profile.SubscriberCount)
}

func TestGetChannelProfileCaseInsensitiveUsername(t *testing.T) {
	f := newUserServiceFixture(t)
	f.seedUser(t, "channel")

	profile, err := f.svc.GetChannelProfile("  Channel ", 0, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "channel", profile.Username)
}

func TestGetChannelProfileNotFound(t *testing.T) {
	f := newUserServiceFixture(t)

	_, err := f.svc.GetChannelProfile("ghost", 0, 1, 10)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetWatchHistoryNewestFirst(t *testing.T) {
	f := newUserServiceFixture(t)
	owner := f.seedUser(t, "creator")
	viewer := f.seedUser(t, "viewer")

	v1 := &model.Video{OwnerID: owner.ID, Title: "earlier", IsPublished: true}
	v2 := &model.Video{OwnerID: owner.ID, Title: "later", IsPublished: true}
	require.NoError(t, f.videos.Create(v1))
	require.NoError(t, f.videos.Create(v2))

	require.NoError(t, f.history.Append(viewer.ID, v1.ID))
	require.NoError(t, f.history.Append(viewer.ID, v2.ID))
	_, err := f.likes.InsertIfAbsent(viewer.ID, v2.ID)
	require.NoError(t, err)

	data, err := f.svc.GetWatchHistory(viewer.ID, 1, 10)
	require.NoError(t, err)

	require.Len(t, data.History, 2)
	assert.Equal(t, "later", data.History[0].Video.Title)
	assert.Equal(t, "earlier", data.History[1].Video.Title)
	assert.True(t, data.History[0].Video.IsLiked)
	assert.False(t, data.History[1].Video.IsLiked)
	assert.Equal(t, int64(2), data.Meta.Total)
}

func TestGetWatchHistoryEmpty(t *testing.T) {
	f := newUserServiceFixture(t)
	viewer := f.seedUser(t, "viewer")

	data, err := f.svc.GetWatchHistory(viewer.ID, 1, 10)
	require.NoError(t, err)

	assert.Empty(t, data.History)
	assert.Equal(t, int64(0), data.Meta.Total)
	assert.Equal(t, int64(0), data.Meta.TotalPages)
}
