package model

// Role 闭合角色枚举，写库时存 int
type Role int

const (
	RoleUser      Role = 0
	RoleModerator Role = 1
	RoleAdmin     Role = 2
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleModerator || r == RoleAdmin
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleModerator:
		return "moderator"
	case RoleAdmin:
		return "admin"
	}
	return "unknown"
}

// Viewer 每次请求由认证层注入的身份，业务层只认它
type Viewer struct {
	ID   uint64
	Role Role
}

// Action 需要做角色校验的操作
type Action string

const (
	ActionListFeed     Action = "feed.list"
	ActionCreatePost   Action = "post.create"
	ActionEditPost     Action = "post.edit"
	ActionDeletePost   Action = "post.delete"
	ActionSubmitReport Action = "report.submit"
	ActionModerate     Action = "moderation.resolve"
)

// allowedRoles 操作->角色白名单，集中声明避免散落在各 handler 里漂移
// 说明：admin 不能发帖/举报；moderator 专职内容处理，admin 不参与（职责分离）
var allowedRoles = map[Action][]Role{
	ActionListFeed:     {RoleUser, RoleModerator, RoleAdmin},
	ActionCreatePost:   {RoleUser},
	ActionEditPost:     {RoleUser},
	ActionDeletePost:   {RoleUser, RoleAdmin},
	ActionSubmitReport: {RoleUser},
	ActionModerate:     {RoleModerator},
}

// Allowed 判断角色是否允许执行操作
func Allowed(a Action, r Role) bool {
	for _, role := range allowedRoles[a] {
		if role == r {
			return true
		}
	}
	return false
}
