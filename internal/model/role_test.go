package model

import "testing"

func TestAllowed(t *testing.T) {
	tests := []struct {
		action Action
		role   Role
		want   bool
	}{
		{ActionListFeed, RoleUser, true},
		{ActionListFeed, RoleModerator, true},
		{ActionListFeed, RoleAdmin, true},

		{ActionCreatePost, RoleUser, true},
		{ActionCreatePost, RoleModerator, false},
		{ActionCreatePost, RoleAdmin, false},

		{ActionEditPost, RoleUser, true},
		{ActionEditPost, RoleAdmin, false},

		{ActionDeletePost, RoleUser, true},
		{ActionDeletePost, RoleModerator, false},
		{ActionDeletePost, RoleAdmin, true},

		{ActionSubmitReport, RoleUser, true},
		{ActionSubmitReport, RoleModerator, false},
		{ActionSubmitReport, RoleAdmin, false},

		{ActionModerate, RoleUser, false},
		{ActionModerate, RoleModerator, true},
		{ActionModerate, RoleAdmin, false},

		{ActionListFeed, Role(9), false},
		{Action("unknown"), RoleAdmin, false},
	}
	for _, tt := range tests {
		if got := Allowed(tt.action, tt.role); got != tt.want {
			t.Errorf("Allowed(%s, %s) = %v, want %v", tt.action, tt.role, got, tt.want)
		}
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleUser, RoleModerator, RoleAdmin} {
		if !r.Valid() {
			t.Errorf("%s should be valid", r)
		}
	}
	if Role(-1).Valid() || Role(3).Valid() {
		t.Error("out-of-range roles should be invalid")
	}
}
