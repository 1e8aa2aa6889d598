package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"vidtube/internal/model"
	"vidtube/internal/repository"

	"gorm.io/gorm"
)

// 内存版 store 实现，服务层测试不依赖数据库

type fakeUserStore struct {
	users  map[int64]*model.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User), nextID: 1}
}

func (s *fakeUserStore) Create(user *model.User) error {
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = s.nextID
	s.nextID++
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) GetByID(id int64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetByUsername(username string) (*model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) GetByEmailOrUsername(identifier string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == identifier || u.Username == identifier {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) ExistsByEmailOrUsername(email, username string) (bool, error) {
	for _, u := range s.users {
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) UpdateRefreshToken(id int64, token string) error {
	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.RefreshToken = token
	return nil
}

type fakeVideoStore struct {
	videos []*model.Video
	nextID int64
}

func newFakeVideoStore() *fakeVideoStore {
	return &fakeVideoStore{nextID: 1}
}

func (s *fakeVideoStore) Create(video *model.Video) error {
	video.ID = s.nextID
	s.nextID++
	if video.CreatedAt.IsZero() {
		// ID 递增即时间递增，排序断言依赖这一点
		video.CreatedAt = time.Unix(video.ID, 0)
	}
	s.videos = append(s.videos, video)
	return nil
}

func (s *fakeVideoStore) GetByID(id int64) (*model.Video, error) {
	for _, v := range s.videos {
		if v.ID == id {
			cp := *v
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeVideoStore) GetByIDWithOwner(id int64) (*model.Video, error) {
	return s.GetByID(id)
}

func (s *fakeVideoStore) List(skip, limit int, ownerID *int64, publishedOnly bool, search string, withOwner bool) ([]model.Video, int64, error) {
	var filtered []*model.Video
	for _, v := range s.videos {
		if publishedOnly && !v.IsPublished {
			continue
		}
		if ownerID != nil && v.OwnerID != *ownerID {
			continue
		}
		if search != "" {
			needle := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(v.Title), needle) &&
				!strings.Contains(strings.ToLower(v.Description), needle) {
				continue
			}
		}
		filtered = append(filtered, v)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	total := int64(len(filtered))
	if skip >= len(filtered) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(filtered) {
		end = len(filtered)
	}

	page := make([]model.Video, 0, end-skip)
	for _, v := range filtered[skip:end] {
		page = append(page, *v)
	}
	return page, total, nil
}

func (s *fakeVideoStore) GetByIDs(ids []int64, withOwner bool) ([]model.Video, error) {
	var out []model.Video
	for _, id := range ids {
		for _, v := range s.videos {
			if v.ID == id && v.IsPublished {
				out = append(out, *v)
			}
		}
	}
	return out, nil
}

func (s *fakeVideoStore) IncrementViewCount(id int64) error {
	for _, v := range s.videos {
		if v.ID == id {
			v.ViewCount++
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type likeKey struct {
	userID  int64
	videoID int64
}

type fakeLikeStore struct {
	likes  map[likeKey]time.Time
	videos *fakeVideoStore
}

func newFakeLikeStore(videos *fakeVideoStore) *fakeLikeStore {
	return &fakeLikeStore{likes: make(map[likeKey]time.Time), videos: videos}
}

func (s *fakeLikeStore) InsertIfAbsent(userID, videoID int64) (bool, error) {
	k := likeKey{userID, videoID}
	if _, ok := s.likes[k]; ok {
		return false, nil
	}
	s.likes[k] = time.Now()
	return true, nil
}

func (s *fakeLikeStore) Delete(userID, videoID int64) (bool, error) {
	k := likeKey{userID, videoID}
	if _, ok := s.likes[k]; !ok {
		return false, nil
	}
	delete(s.likes, k)
	return true, nil
}

func (s *fakeLikeStore) Exists(userID, videoID int64) (bool, error) {
	_, ok := s.likes[likeKey{userID, videoID}]
	return ok, nil
}

func (s *fakeLikeStore) CountByVideo(videoID int64) (int64, error) {
	var n int64
	for k := range s.likes {
		if k.videoID == videoID {
			n++
		}
	}
	return n, nil
}

func (s *fakeLikeStore) CountByVideos(videoIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(videoIDs))
	for _, id := range videoIDs {
		n, _ := s.CountByVideo(id)
		out[id] = n
	}
	return out, nil
}

func (s *fakeLikeStore) BatchCheckLiked(userID int64, videoIDs []int64) (map[int64]bool, error) {
	out := make(map[int64]bool, len(videoIDs))
	for _, id := range videoIDs {
		out[id] = false
		if _, ok := s.likes[likeKey{userID, id}]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (s *fakeLikeStore) ListByUser(userID int64, skip, limit int) ([]model.Like, int64, error) {
	var all []model.Like
	for k, at := range s.likes {
		if k.userID != userID {
			continue
		}
		like := model.Like{UserID: k.userID, VideoID: k.videoID, CreatedAt: at}
		if v, err := s.videos.GetByID(k.videoID); err == nil {
			like.Video = *v
		}
		all = append(all, like)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if skip >= len(all) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

type subKey struct {
	subscriberID int64
	channelID    int64
}

type fakeSubscriptionStore struct {
	subs  map[subKey]time.Time
	users *fakeUserStore
}

func newFakeSubscriptionStore(users *fakeUserStore) *fakeSubscriptionStore {
	return &fakeSubscriptionStore{subs: make(map[subKey]time.Time), users: users}
}

func (s *fakeSubscriptionStore) InsertIfAbsent(subscriberID, channelID int64) (bool, error) {
	k := subKey{subscriberID, channelID}
	if _, ok := s.subs[k]; ok {
		return false, nil
	}
	s.subs[k] = time.Now()
	return true, nil
}

func (s *fakeSubscriptionStore) Delete(subscriberID, channelID int64) (bool, error) {
	k := subKey{subscriberID, channelID}
	if _, ok := s.subs[k]; !ok {
		return false, nil
	}
	delete(s.subs, k)
	return true, nil
}

func (s *fakeSubscriptionStore) Exists(subscriberID, channelID int64) (bool, error) {
	_, ok := s.subs[subKey{subscriberID, channelID}]
	return ok, nil
}

func (s *fakeSubscriptionStore) CountSubscribers(channelID int64) (int64, error) {
	var n int64
	for k := range s.subs {
		if k.channelID == channelID {
			n++
		}
	}
	return n, nil
}

func (s *fakeSubscriptionStore) CountSubscribedTo(subscriberID int64) (int64, error) {
	var n int64
	for k := range s.subs {
		if k.subscriberID == subscriberID {
			n++
		}
	}
	return n, nil
}

func (s *fakeSubscriptionStore) ListSubscribers(channelID int64, skip, limit int) ([]model.Subscription, int64, error) {
	var all []model.Subscription
	for k, at := range s.subs {
		if k.channelID != channelID {
			continue
		}
		sub := model.Subscription{SubscriberID: k.subscriberID, ChannelID: k.channelID, CreatedAt: at}
		if u, err := s.users.GetByID(k.subscriberID); err == nil {
			sub.Subscriber = *u
		}
		all = append(all, sub)
	}
	return paginateSubs(all, skip, limit)
}

func (s *fakeSubscriptionStore) ListSubscribedChannels(subscriberID int64, skip, limit int) ([]model.Subscription, int64, error) {
	var all []model.Subscription
	for k, at := range s.subs {
		if k.subscriberID != subscriberID {
			continue
		}
		sub := model.Subscription{SubscriberID: k.subscriberID, ChannelID: k.channelID, CreatedAt: at}
		if u, err := s.users.GetByID(k.channelID); err == nil {
			sub.Channel = *u
		}
		all = append(all, sub)
	}
	return paginateSubs(all, skip, limit)
}

func paginateSubs(all []model.Subscription, skip, limit int) ([]model.Subscription, int64, error) {
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	if skip >= len(all) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

type fakeHistoryStore struct {
	entries []model.WatchHistory
	videos  *fakeVideoStore
}

func newFakeHistoryStore(videos *fakeVideoStore) *fakeHistoryStore {
	return &fakeHistoryStore{videos: videos}
}

func (s *fakeHistoryStore) InsertFirstWatch(userID, videoID int64) (bool, error) {
	watched, _ := s.HasWatched(userID, videoID)
	if watched {
		return false, nil
	}
	return true, s.Append(userID, videoID)
}

func (s *fakeHistoryStore) Append(userID, videoID int64) error {
	s.entries = append(s.entries, model.WatchHistory{
		UserID:    userID,
		VideoID:   videoID,
		WatchedAt: time.Now().Add(time.Duration(len(s.entries)) * time.Millisecond),
	})
	return nil
}

func (s *fakeHistoryStore) HasWatched(userID, videoID int64) (bool, error) {
	for _, e := range s.entries {
		if e.UserID == userID && e.VideoID == videoID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeHistoryStore) ListByUser(userID int64, skip, limit int) ([]model.WatchHistory, int64, error) {
	var all []model.WatchHistory
	for _, e := range s.entries {
		if e.UserID != userID {
			continue
		}
		if v, err := s.videos.GetByID(e.VideoID); err == nil {
			e.Video = *v
		}
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].WatchedAt.After(all[j].WatchedAt) })

	total := int64(len(all))
	if skip >= len(all) {
		return nil, total, nil
	}
	end := skip + limit
	if end > len(all) {
		end = len(all)
	}
	return all[skip:end], total, nil
}

type fakeStatsStore struct {
	stats map[int64]repository.ChannelStats
}

func newFakeStatsStore() *fakeStatsStore {
	return &fakeStatsStore{stats: make(map[int64]repository.ChannelStats)}
}

func (s *fakeStatsStore) GetChannelStats(channelID int64) (*repository.ChannelStats, error) {
	st := s.stats[channelID]
	return &st, nil
}

type fakeMediaStore struct {
	uploads    []string
	removed    []string
	failUpload map[string]bool // objectName 前缀 -> 失败
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{failUpload: make(map[string]bool)}
}

func (s *fakeMediaStore) UploadFile(_ context.Context, bucket, objectName, _ string) (string, error) {
	for prefix := range s.failUpload {
		if strings.HasPrefix(objectName, prefix) {
			return "", fmt.Errorf("upload rejected: %s", objectName)
		}
	}
	url := fmt.Sprintf("http://media.local/%s/%s", bucket, objectName)
	s.uploads = append(s.uploads, url)
	return url, nil
}

func (s *fakeMediaStore) Remove(_ context.Context, fileURL string) error {
	s.removed = append(s.removed, fileURL)
	return nil
}

type fakeEventPublisher struct {
	published []int64
}

func (p *fakeEventPublisher) PublishVideoPublished(_ context.Context, video *model.Video) error {
	p.published = append(p.published, video.ID)
	return nil
}
