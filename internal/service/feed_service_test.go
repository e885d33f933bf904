package service

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"
)

type fakeFeedPosts struct {
	calls    int
	lastF    model.PostFilter
	lastSort string
	lastDir  string
	lastOff  int
	lastLim  int
	posts    []model.Post
	total    int64
	err      error
}

func (f *fakeFeedPosts) ListVisible(_ context.Context, filter model.PostFilter, sortBy, sortDir string, offset, limit int) ([]model.Post, int64, error) {
	f.calls++
	f.lastF = filter
	f.lastSort = sortBy
	f.lastDir = sortDir
	f.lastOff = offset
	f.lastLim = limit
	if f.err != nil {
		return nil, 0, f.err
	}
	if filter.None {
		return nil, 0, nil
	}
	return f.posts, f.total, nil
}

type fakeFollows struct {
	ids []uint64
	err error
}

func (f *fakeFollows) FollowingIDs(context.Context, uint64) ([]uint64, error) {
	return f.ids, f.err
}

// fakeFeedCache 内存版版本化缓存
type fakeFeedCache struct {
	version    uint64
	versionErr error
	pages      map[string][]byte
	lastTTL    time.Duration
	sets       int
}

func newFakeFeedCache() *fakeFeedCache {
	return &fakeFeedCache{pages: map[string][]byte{}}
}

func (c *fakeFeedCache) Version(context.Context) (uint64, error) {
	if c.versionErr != nil {
		return 0, c.versionErr
	}
	return c.version, nil
}

func (c *fakeFeedCache) Bump(context.Context) error {
	c.version++
	return nil
}

func (c *fakeFeedCache) GetPage(_ context.Context, key string) ([]byte, bool, error) {
	b, ok := c.pages[key]
	return b, ok, nil
}

func (c *fakeFeedCache) SetPage(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	c.pages[key] = payload
	c.lastTTL = ttl
	c.sets++
	return nil
}

func newTestFeedService(posts *fakeFeedPosts, follows *fakeFollows, cache *fakeFeedCache) *FeedService {
	return &FeedService{posts: posts, follows: follows, cache: cache}
}

func TestListFeedRoleGate(t *testing.T) {
	svc := newTestFeedService(&fakeFeedPosts{}, &fakeFollows{}, newFakeFeedCache())
	_, err := svc.ListFeed(context.Background(), model.Viewer{ID: 1, Role: model.Role(9)}, FeedQuery{})
	if !errors.Is(err, pkg.ErrForbidden) {
		t.Fatalf("want forbidden, got %v", err)
	}
}

func TestListFeedAdminSeesAll(t *testing.T) {
	posts := &fakeFeedPosts{}
	svc := newTestFeedService(posts, &fakeFollows{}, newFakeFeedCache())

	if _, err := svc.ListFeed(context.Background(), model.Viewer{ID: 9, Role: model.RoleAdmin}, FeedQuery{}); err != nil {
		t.Fatal(err)
	}
	if !posts.lastF.All {
		t.Fatalf("admin filter = %+v, want All", posts.lastF)
	}

	// admin 指定目标用户：无需关注关系，直接按作者过滤
	if _, err := svc.ListFeed(context.Background(), model.Viewer{ID: 9, Role: model.RoleAdmin}, FeedQuery{TargetID: 42}); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(posts.lastF.AuthorIDs, []uint64{42}) {
		t.Fatalf("admin target filter = %+v", posts.lastF)
	}
}

func TestListFeedVisibleSet(t *testing.T) {
	posts := &fakeFeedPosts{}
	svc := newTestFeedService(posts, &fakeFollows{ids: []uint64{2, 3}}, newFakeFeedCache())

	if _, err := svc.ListFeed(context.Background(), model.Viewer{ID: 1, Role: model.RoleUser}, FeedQuery{}); err != nil {
		t.Fatal(err)
	}

	got := append([]uint64(nil), posts.lastF.AuthorIDs...)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	want := []uint64{1, 2, 3} // 关注的人 + 自己
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("visible authors = %v, want %v", got, want)
	}
}

func TestListFeedTargetOutsideSet(t *testing.T) {
	posts := &fakeFeedPosts{}
	svc := newTestFeedService(posts, &fakeFollows{ids: []uint64{2}}, newFakeFeedCache())

	payload, err := svc.ListFeed(context.Background(), model.Viewer{ID: 1, Role: model.RoleUser}, FeedQuery{TargetID: 77})
	if err != nil {
		t.Fatal(err)
	}
	// 不暴露 77 的帖子是否存在：空结果而非报错
	if !posts.lastF.None {
		t.Fatalf("filter = %+v, want None", posts.lastF)
	}
	if !bytes.Contains(payload, []byte(`"total":0`)) {
		t.Fatalf("payload = %s, want empty page", payload)
	}
}

func TestListFeedNormalization(t *testing.T) {
	tests := []struct {
		name     string
		q        FeedQuery
		wantSort string
		wantDir  string
		wantLim  int
		wantOff  int
		wantTTL  time.Duration
	}{
		{"defaults", FeedQuery{}, "created_at", "desc", 10, 0, 30 * time.Second},
		{"unknown sort falls back", FeedQuery{SortBy: "like_count", SortDir: "ASC"}, "created_at", "asc", 10, 0, 30 * time.Second},
		{"content sort kept", FeedQuery{SortBy: "content"}, "content", "desc", 10, 0, 30 * time.Second},
		{"per_page clamped high", FeedQuery{PerPage: 500, Page: 2}, "created_at", "desc", 100, 100, 30 * time.Second},
		{"ttl clamped low", FeedQuery{TTL: 1}, "created_at", "desc", 10, 0, 5 * time.Second},
		{"ttl clamped high", FeedQuery{TTL: 9999}, "created_at", "desc", 10, 0, 300 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := &fakeFeedPosts{}
			cache := newFakeFeedCache()
			svc := newTestFeedService(posts, &fakeFollows{}, cache)

			if _, err := svc.ListFeed(context.Background(), model.Viewer{ID: 1, Role: model.RoleUser}, tt.q); err != nil {
				t.Fatal(err)
			}
			if posts.lastSort != tt.wantSort || posts.lastDir != tt.wantDir {
				t.Fatalf("sort = %s %s, want %s %s", posts.lastSort, posts.lastDir, tt.wantSort, tt.wantDir)
			}
			if posts.lastLim != tt.wantLim || posts.lastOff != tt.wantOff {
				t.Fatalf("limit/offset = %d/%d, want %d/%d", posts.lastLim, posts.lastOff, tt.wantLim, tt.wantOff)
			}
			if cache.lastTTL != tt.wantTTL {
				t.Fatalf("ttl = %v, want %v", cache.lastTTL, tt.wantTTL)
			}
		})
	}
}

func TestListFeedCacheHitBytesIdentical(t *testing.T) {
	posts := &fakeFeedPosts{posts: []model.Post{{ID: 5, AuthorID: 1, Content: "hi"}}, total: 1}
	svc := newTestFeedService(posts, &fakeFollows{}, newFakeFeedCache())
	viewer := model.Viewer{ID: 1, Role: model.RoleUser}

	first, err := svc.ListFeed(context.Background(), viewer, FeedQuery{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.ListFeed(context.Background(), viewer, FeedQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("cached payload differs from computed payload")
	}
	if posts.calls != 1 {
		t.Fatalf("store hit %d times, want 1", posts.calls)
	}
}

func TestListFeedBumpInvalidates(t *testing.T) {
	posts := &fakeFeedPosts{}
	cache := newFakeFeedCache()
	svc := newTestFeedService(posts, &fakeFollows{}, cache)
	viewer := model.Viewer{ID: 1, Role: model.RoleUser}

	if _, err := svc.ListFeed(context.Background(), viewer, FeedQuery{}); err != nil {
		t.Fatal(err)
	}
	if err := cache.Bump(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ListFeed(context.Background(), viewer, FeedQuery{}); err != nil {
		t.Fatal(err)
	}
	// 版本切换后旧键不再命中，必须重算
	if posts.calls != 2 {
		t.Fatalf("store hit %d times, want 2", posts.calls)
	}
}

func TestListFeedPerViewerIsolation(t *testing.T) {
	posts := &fakeFeedPosts{}
	svc := newTestFeedService(posts, &fakeFollows{}, newFakeFeedCache())

	if _, err := svc.ListFeed(context.Background(), model.Viewer{ID: 1, Role: model.RoleUser}, FeedQuery{}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ListFeed(context.Background(), model.Viewer{ID: 2, Role: model.RoleUser}, FeedQuery{}); err != nil {
		t.Fatal(err)
	}
	// 不同 viewer 各算各的，缓存键不串
	if posts.calls != 2 {
		t.Fatalf("store hit %d times, want 2", posts.calls)
	}
}

func TestListFeedDegradesWithoutCache(t *testing.T) {
	posts := &fakeFeedPosts{posts: []model.Post{{ID: 1, AuthorID: 1}}, total: 1}
	cache := newFakeFeedCache()
	cache.versionErr = errors.New("redis down")
	svc := newTestFeedService(posts, &fakeFollows{}, cache)

	payload, err := svc.ListFeed(context.Background(), model.Viewer{ID: 1, Role: model.RoleUser}, FeedQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if len(payload) == 0 {
		t.Fatal("want computed payload")
	}
	if cache.sets != 0 {
		t.Fatalf("cache written %d times while unavailable, want 0", cache.sets)
	}
}
