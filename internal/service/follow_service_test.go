package service

import (
	"context"
	"errors"
	"testing"

	"Lee_Feed/internal/model"
	"Lee_Feed/internal/pkg"
)

type fakeFollowStore struct {
	followFn   func(followerID, followeeID uint64) (bool, error)
	unfollowFn func(followerID, followeeID uint64) (bool, error)
}

func (f *fakeFollowStore) Follow(_ context.Context, followerID, followeeID uint64) (bool, error) {
	return f.followFn(followerID, followeeID)
}

func (f *fakeFollowStore) Unfollow(_ context.Context, followerID, followeeID uint64) (bool, error) {
	return f.unfollowFn(followerID, followeeID)
}

func (f *fakeFollowStore) IsFollowing(context.Context, uint64, uint64) (bool, error) {
	return false, nil
}

func (f *fakeFollowStore) ListFollowings(context.Context, uint64, uint64, int) ([]model.Follow, uint64, error) {
	return nil, 0, nil
}

func (f *fakeFollowStore) ListFollowers(context.Context, uint64, uint64, int) ([]model.Follow, uint64, error) {
	return nil, 0, nil
}

type fakeRoleLookup struct {
	users map[uint64]*model.User
}

func (f *fakeRoleLookup) FindByID(id uint64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func TestFollowEdgeRules(t *testing.T) {
	store := &fakeFollowStore{
		followFn: func(uint64, uint64) (bool, error) { return true, nil },
	}
	users := &fakeRoleLookup{users: map[uint64]*model.User{
		2: {ID: 2, Role: model.RoleUser},
		3: {ID: 3, Role: model.RoleAdmin},
	}}
	svc := &FollowService{repo: store, users: users}

	tests := []struct {
		name       string
		viewer     model.Viewer
		followeeID uint64
		wantErr    error
	}{
		{"ok", model.Viewer{ID: 1, Role: model.RoleUser}, 2, nil},
		{"self edge", model.Viewer{ID: 2, Role: model.RoleUser}, 2, pkg.ErrValidation},
		{"zero id", model.Viewer{ID: 1, Role: model.RoleUser}, 0, pkg.ErrValidation},
		{"admin cannot follow", model.Viewer{ID: 9, Role: model.RoleAdmin}, 2, pkg.ErrForbidden},
		{"cannot follow admin", model.Viewer{ID: 1, Role: model.RoleUser}, 3, pkg.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed, err := svc.Follow(context.Background(), tt.viewer, tt.followeeID)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatal(err)
				}
				if !changed {
					t.Fatal("want changed")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnfollowIdempotent(t *testing.T) {
	store := &fakeFollowStore{
		unfollowFn: func(uint64, uint64) (bool, error) { return false, nil },
	}
	svc := &FollowService{repo: store}

	changed, err := svc.Unfollow(context.Background(), model.Viewer{ID: 1, Role: model.RoleUser}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if changed {
		t.Fatal("no edge existed, want changed=false")
	}
}
