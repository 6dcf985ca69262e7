package access

import (
	"testing"

	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRolePredicates(t *testing.T) {
	super := StaffActor(1, []model.StaffRole{model.RoleSuperAdmin})
	manager := StaffActor(2, []model.StaffRole{model.RoleManager})
	production := StaffActor(3, []model.StaffRole{model.RoleProduction})
	noRole := StaffActor(4, nil)
	client := ClientActor(5)

	assert.True(t, IsSuperAdmin(super))
	assert.False(t, IsSuperAdmin(manager))

	// superadmin 视同 manager
	assert.True(t, IsSuperAdminOrManager(super))
	assert.True(t, IsSuperAdminOrManager(manager))
	assert.False(t, IsSuperAdminOrManager(production))

	assert.True(t, IsInternal(production))
	assert.False(t, IsInternal(noRole))
	assert.False(t, IsInternal(client))
	assert.False(t, IsInternal(nil))

	assert.True(t, IsClient(client))
	assert.False(t, IsClient(production))

	assert.True(t, IsAuthenticated(client))
	assert.False(t, IsAuthenticated(nil))
}

func TestHasRoleNilSafe(t *testing.T) {
	var a *Actor
	assert.False(t, a.HasRole(model.RoleManager))
	assert.False(t, ClientActor(1).HasRole(model.RoleManager))
}

func TestPolicyTable(t *testing.T) {
	super := StaffActor(1, []model.StaffRole{model.RoleSuperAdmin})
	production := StaffActor(2, []model.StaffRole{model.RoleProduction})
	client := ClientActor(3)

	cases := []struct {
		name       string
		actor      *Actor
		collection Collection
		op         Operation
		allowed    bool
		ownColumn  string
	}{
		{"匿名可读课程", nil, Courses, Read, true, ""},
		{"匿名不能建课程", nil, Courses, Create, false, ""},
		{"内部员工建课程", production, Courses, Create, true, ""},
		{"学员不能建课程", client, Courses, Create, false, ""},

		{"分类仅超管可改", production, Categories, Update, false, ""},
		{"超管改分类", super, Categories, Update, true, ""},
		{"匿名可读分类", nil, Categories, Read, true, ""},

		{"学员提交答卷", client, Submissions, Create, true, ""},
		{"学员只能读自己的答卷", client, Submissions, Read, true, "client_id"},
		{"内部员工读全部答卷", production, Submissions, Read, true, ""},
		{"匿名读不到答卷", nil, Submissions, Read, false, ""},
		{"学员不能改答卷", client, Submissions, Update, false, ""},

		{"学员读自己的报名", client, Participants, Read, true, "client_id"},
		{"学员账号行级自读", client, Accounts, Read, true, "id"},
		{"账号删除仅超管", production, Accounts, Delete, false, ""},
		{"员工表仅超管", production, Users, Read, false, ""},
		{"超管读员工表", super, Users, Read, true, ""},

		{"学员删自己的留言", client, Comments, Delete, true, "client_id"},
		{"内部员工删任意留言", production, Comments, Delete, true, ""},
		{"匿名不能删留言", nil, Comments, Delete, false, ""},
		{"员工账号不能发留言", production, Comments, Create, false, ""},

		{"匿名注册开放", nil, Accounts, Create, true, ""},
		{"视频须登录可读", nil, Videos, Read, false, ""},
		{"学员读视频", client, Videos, Read, true, ""},

		{"未登记集合一律拒绝", super, Collection("unknown"), Read, false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Can(tc.actor, tc.collection, tc.op)
			assert.Equal(t, tc.allowed, d.Allowed)
			assert.Equal(t, tc.ownColumn, d.OwnerColumn)
		})
	}
}
