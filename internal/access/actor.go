package access

import "academy_backend/internal/model"

type ActorKind string

const (
	KindStaff  ActorKind = "staff"
	KindClient ActorKind = "client"
)

// Actor 当前操作的身份。nil 表示匿名访问，是合法输入而非错误。
type Actor struct {
	Kind  ActorKind
	ID    uint
	Roles []model.StaffRole
}

func StaffActor(id uint, roles []model.StaffRole) *Actor {
	return &Actor{Kind: KindStaff, ID: id, Roles: roles}
}

func ClientActor(id uint) *Actor {
	return &Actor{Kind: KindClient, ID: id}
}

func (a *Actor) HasRole(role model.StaffRole) bool {
	if a == nil || a.Kind != KindStaff {
		return false
	}
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func IsSuperAdmin(a *Actor) bool {
	return a.HasRole(model.RoleSuperAdmin)
}

func IsManager(a *Actor) bool {
	return a.HasRole(model.RoleManager)
}

// IsSuperAdminOrManager 管理级权限：superadmin 视同 manager
func IsSuperAdminOrManager(a *Actor) bool {
	return IsSuperAdmin(a) || IsManager(a)
}

func IsProduction(a *Actor) bool {
	return a.HasRole(model.RoleProduction)
}

func IsCommerciale(a *Actor) bool {
	return a.HasRole(model.RoleCommerciale)
}

func IsMarketing(a *Actor) bool {
	return a.HasRole(model.RoleMarketing)
}

// IsInternal 后台员工（至少持有一个角色）。无角色的员工账号不具备
// 任何提升权限。
func IsInternal(a *Actor) bool {
	return a != nil && a.Kind == KindStaff && len(a.Roles) > 0
}

func IsClient(a *Actor) bool {
	return a != nil && a.Kind == KindClient
}

func IsAuthenticated(a *Actor) bool {
	return a != nil
}
