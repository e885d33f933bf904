package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"

	"gorm.io/gorm"
)

type fakePostStore struct {
	createFn func(post *model.Post) error
	findFn   func(id uint64) (*model.Post, error)
	updateFn func(postID, actorID uint64, content string) error
	deleteFn func(postID, by uint64, reason string) (bool, error)
}

func (f *fakePostStore) Create(_ context.Context, post *model.Post) error {
	return f.createFn(post)
}

func (f *fakePostStore) FindByID(_ context.Context, id uint64) (*model.Post, error) {
	return f.findFn(id)
}

func (f *fakePostStore) UpdateContent(_ context.Context, postID, actorID uint64, content string) error {
	return f.updateFn(postID, actorID, content)
}

func (f *fakePostStore) SoftDelete(_ context.Context, postID, by uint64, reason string) (bool, error) {
	return f.deleteFn(postID, by, reason)
}

type fakeBumper struct {
	bumps int
	err   error
}

func (b *fakeBumper) Bump(context.Context) error {
	b.bumps++
	return b.err
}

func TestCreatePost(t *testing.T) {
	tests := []struct {
		name      string
		viewer    model.Viewer
		content   string
		wantErr   error
		wantBumps int
	}{
		{"user ok", model.Viewer{ID: 1, Role: model.RoleUser}, "hello", nil, 1},
		{"admin forbidden", model.Viewer{ID: 1, Role: model.RoleAdmin}, "hello", pkg.ErrForbidden, 0},
		{"moderator forbidden", model.Viewer{ID: 1, Role: model.RoleModerator}, "hello", pkg.ErrForbidden, 0},
		{"empty content", model.Viewer{ID: 1, Role: model.RoleUser}, "", pkg.ErrValidation, 0},
		{"281 runes rejected", model.Viewer{ID: 1, Role: model.RoleUser}, strings.Repeat("字", 281), pkg.ErrValidation, 0},
		{"280 runes ok", model.Viewer{ID: 1, Role: model.RoleUser}, strings.Repeat("字", 280), nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bumper := &fakeBumper{}
			svc := &PostService{
				repo: &fakePostStore{createFn: func(post *model.Post) error {
					post.ID = 100
					return nil
				}},
				cache: bumper,
			}

			post, err := svc.CreatePost(context.Background(), tt.viewer, tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			} else {
				if err != nil {
					t.Fatal(err)
				}
				if post.AuthorID != tt.viewer.ID {
					t.Fatalf("author = %d, want %d", post.AuthorID, tt.viewer.ID)
				}
			}
			if bumper.bumps != tt.wantBumps {
				t.Fatalf("bumps = %d, want %d", bumper.bumps, tt.wantBumps)
			}
		})
	}
}

func TestUpdatePostOwnership(t *testing.T) {
	bumper := &fakeBumper{}
	svc := &PostService{
		repo: &fakePostStore{
			findFn: func(uint64) (*model.Post, error) {
				return &model.Post{ID: 5, AuthorID: 2, Content: "old"}, nil
			},
			updateFn: func(uint64, uint64, string) error { return nil },
		},
		cache: bumper,
	}

	// 非作者
	_, err := svc.UpdatePost(context.Background(), model.Viewer{ID: 1, Role: model.RoleUser}, 5, "new")
	if !errors.Is(err, pkg.ErrForbidden) {
		t.Fatalf("want forbidden, got %v", err)
	}
	if bumper.bumps != 0 {
		t.Fatalf("bumps = %d, want 0", bumper.bumps)
	}

	// 作者本人
	post, err := svc.UpdatePost(context.Background(), model.Viewer{ID: 2, Role: model.RoleUser}, 5, "new")
	if err != nil {
		t.Fatal(err)
	}
	if post.Content != "new" {
		t.Fatalf("content = %q", post.Content)
	}
	if bumper.bumps != 1 {
		t.Fatalf("bumps = %d, want 1", bumper.bumps)
	}
}

func TestDeletePost(t *testing.T) {
	t.Run("author delete stamps reason", func(t *testing.T) {
		bumper := &fakeBumper{}
		var gotReason string
		svc := &PostService{
			repo: &fakePostStore{
				findFn: func(uint64) (*model.Post, error) {
					return &model.Post{ID: 5, AuthorID: 1}, nil
				},
				deleteFn: func(_, _ uint64, reason string) (bool, error) {
					gotReason = reason
					return true, nil
				},
			},
			cache: bumper,
		}
		if err := svc.DeletePost(context.Background(), model.Viewer{ID: 1, Role: model.RoleUser}, 5); err != nil {
			t.Fatal(err)
		}
		if gotReason != model.DeleteReasonAuthor {
			t.Fatalf("reason = %q", gotReason)
		}
		if bumper.bumps != 1 {
			t.Fatalf("bumps = %d, want 1", bumper.bumps)
		}
	})

	t.Run("admin delete stamps reason", func(t *testing.T) {
		var gotReason string
		svc := &PostService{
			repo: &fakePostStore{
				findFn: func(uint64) (*model.Post, error) {
					return &model.Post{ID: 5, AuthorID: 1}, nil
				},
				deleteFn: func(_, _ uint64, reason string) (bool, error) {
					gotReason = reason
					return true, nil
				},
			},
			cache: &fakeBumper{},
		}
		if err := svc.DeletePost(context.Background(), model.Viewer{ID: 9, Role: model.RoleAdmin}, 5); err != nil {
			t.Fatal(err)
		}
		if gotReason != model.DeleteReasonAdmin {
			t.Fatalf("reason = %q", gotReason)
		}
	})

	t.Run("user cannot delete others", func(t *testing.T) {
		svc := &PostService{
			repo: &fakePostStore{
				findFn: func(uint64) (*model.Post, error) {
					return &model.Post{ID: 5, AuthorID: 2}, nil
				},
			},
			cache: &fakeBumper{},
		}
		err := svc.DeletePost(context.Background(), model.Viewer{ID: 1, Role: model.RoleUser}, 5)
		if !errors.Is(err, pkg.ErrForbidden) {
			t.Fatalf("want forbidden, got %v", err)
		}
	})

	t.Run("already deleted is idempotent", func(t *testing.T) {
		bumper := &fakeBumper{}
		svc := &PostService{
			repo: &fakePostStore{
				findFn: func(uint64) (*model.Post, error) {
					return nil, gorm.ErrRecordNotFound
				},
			},
			cache: bumper,
		}
		if err := svc.DeletePost(context.Background(), model.Viewer{ID: 1, Role: model.RoleUser}, 5); err != nil {
			t.Fatal(err)
		}
		if bumper.bumps != 0 {
			t.Fatalf("bumps = %d, want 0", bumper.bumps)
		}
	})

	t.Run("moderator cannot delete", func(t *testing.T) {
		svc := &PostService{repo: &fakePostStore{}, cache: &fakeBumper{}}
		err := svc.DeletePost(context.Background(), model.Viewer{ID: 1, Role: model.RoleModerator}, 5)
		if !errors.Is(err, pkg.ErrForbidden) {
			t.Fatalf("want forbidden, got %v", err)
		}
	})
}

// 落库成功但版本号没动：旧键会被继续命中，错误必须传到调用方
func TestBumpFailurePropagates(t *testing.T) {
	store := &fakePostStore{
		createFn: func(post *model.Post) error {
			post.ID = 100
			return nil
		},
		findFn: func(uint64) (*model.Post, error) {
			return &model.Post{ID: 5, AuthorID: 1}, nil
		},
		updateFn: func(uint64, uint64, string) error { return nil },
		deleteFn: func(uint64, uint64, string) (bool, error) { return true, nil },
	}
	svc := &PostService{
		repo:  store,
		cache: &fakeBumper{err: errors.New("incr timeout")},
	}
	viewer := model.Viewer{ID: 1, Role: model.RoleUser}

	if _, err := svc.CreatePost(context.Background(), viewer, "hi"); !errors.Is(err, pkg.ErrCacheInvalidation) {
		t.Fatalf("create err = %v, want cache invalidation", err)
	}
	if _, err := svc.UpdatePost(context.Background(), viewer, 5, "new"); !errors.Is(err, pkg.ErrCacheInvalidation) {
		t.Fatalf("update err = %v, want cache invalidation", err)
	}
	if err := svc.DeletePost(context.Background(), viewer, 5); !errors.Is(err, pkg.ErrCacheInvalidation) {
		t.Fatalf("delete err = %v, want cache invalidation", err)
	}
}
