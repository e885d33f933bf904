package service

import (
	"context"
	"errors"
	"testing"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"

	"gorm.io/gorm"
)

type fakeUserSearch struct {
	lastKeyword string
	lastLimit   int
	users       []model.User
	byID        map[uint64]*model.User
}

func (f *fakeUserSearch) FindByID(id uint64) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserSearch) Search(keyword string, limit int) ([]model.User, error) {
	f.lastKeyword = keyword
	f.lastLimit = limit
	return f.users, nil
}

type fakeFollowCounts struct {
	followings int64
	followers  int64
}

func (f *fakeFollowCounts) CountFollowings(context.Context, uint64) (int64, error) {
	return f.followings, nil
}

func (f *fakeFollowCounts) CountFollowers(context.Context, uint64) (int64, error) {
	return f.followers, nil
}

func TestSearchUsers(t *testing.T) {
	store := &fakeUserSearch{users: []model.User{
		{ID: 1, Username: "alice", Role: model.RoleUser},
		{ID: 2, Username: "alina", Role: model.RoleModerator},
	}}
	svc := &ProfileService{users: store, follows: &fakeFollowCounts{}}

	out, err := svc.SearchUsers("  ali ", 0)
	if err != nil {
		t.Fatal(err)
	}
	if store.lastKeyword != "ali" {
		t.Fatalf("keyword = %q, want trimmed", store.lastKeyword)
	}
	if store.lastLimit != maxSearchResults {
		t.Fatalf("limit = %d, want %d", store.lastLimit, maxSearchResults)
	}
	if len(out) != 2 || out[0].Username != "alice" || out[1].Role != "moderator" {
		t.Fatalf("out = %+v", out)
	}

	if _, err := svc.SearchUsers("   ", 5); !errors.Is(err, pkg.ErrValidation) {
		t.Fatalf("want validation, got %v", err)
	}

	if _, err := svc.SearchUsers("a", 999); err != nil {
		t.Fatal(err)
	}
	if store.lastLimit != maxSearchResults {
		t.Fatalf("limit = %d, want capped at %d", store.lastLimit, maxSearchResults)
	}
}

func TestProfile(t *testing.T) {
	svc := &ProfileService{
		users: &fakeUserSearch{byID: map[uint64]*model.User{
			7: {ID: 7, Username: "bob", Role: model.RoleUser, Email: "bob@example.com"},
		}},
		follows: &fakeFollowCounts{followings: 3, followers: 12},
	}

	p, err := svc.Profile(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if p.Username != "bob" || p.FollowingCount != 3 || p.FollowerCount != 12 {
		t.Fatalf("profile = %+v", p)
	}

	if _, err := svc.Profile(context.Background(), 99); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
	if _, err := svc.Profile(context.Background(), 0); !errors.Is(err, pkg.ErrValidation) {
		t.Fatalf("want validation, got %v", err)
	}
}
