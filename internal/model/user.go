package model

import (
	"encoding/json"
	"time"
)

// StaffRole 后台员工角色
type StaffRole string

const (
	RoleSuperAdmin  StaffRole = "superadmin"
	RoleManager     StaffRole = "manager"
	RoleProduction  StaffRole = "production"
	RoleCommerciale StaffRole = "commerciale"
	RoleMarketing   StaffRole = "marketing"
)

// StaffRoles 固定角色枚举，角色集合必须是它的子集
var StaffRoles = []StaffRole{
	RoleSuperAdmin,
	RoleManager,
	RoleProduction,
	RoleCommerciale,
	RoleMarketing,
}

func IsValidStaffRole(r StaffRole) bool {
	for _, known := range StaffRoles {
		if r == known {
			return true
		}
	}
	return false
}

// User 后台员工账号（管理端）。终端学员账号见 Account。
// swagger:model User
type User struct {
	BaseModel
	Name      string          `gorm:"size:100;not null" json:"name"`
	Email     string          `gorm:"size:100;unique;not null" json:"email"`
	Password  string          `gorm:"size:100;not null" json:"-"`
	Roles     json.RawMessage `gorm:"type:json" json:"roles"` // JSON: []StaffRole
	Disabled  bool            `gorm:"default:false" json:"disabled"`
	LastLogin time.Time       `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}

// DecodeRoles 解析角色集合，空集合视为无任何特权
func (u *User) DecodeRoles() []StaffRole {
	var roles []StaffRole
	if len(u.Roles) == 0 {
		return roles
	}
	_ = json.Unmarshal(u.Roles, &roles)
	return roles
}

func (u *User) SetRoles(roles []StaffRole) error {
	raw, err := json.Marshal(roles)
	if err != nil {
		return err
	}
	u.Roles = raw
	return nil
}
