package access

import "gorm.io/gorm"

type Collection string

const (
	Categories   Collection = "categories"
	Instructors  Collection = "instructors"
	Courses      Collection = "courses"
	Exams        Collection = "exams"
	Submissions  Collection = "exam_submissions"
	Participants Collection = "participations"
	Comments     Collection = "comments"
	Reviews      Collection = "course_reviews"
	Certificates Collection = "certificates"
	Accounts     Collection = "accounts"
	Users        Collection = "users"
	Videos       Collection = "videos"
)

type Operation string

const (
	Create Operation = "create"
	Read   Operation = "read"
	Update Operation = "update"
	Delete Operation = "delete"
)

// Decision 授权结果。Allowed 为 false 表示拒绝；OwnerColumn 非空时仅放行
// 归属当前 Actor 的行（行级过滤，而非整表放行）。
type Decision struct {
	Allowed     bool
	OwnerColumn string
}

var deny = Decision{}
var allow = Decision{Allowed: true}

func ownScope(column string) Decision {
	return Decision{Allowed: true, OwnerColumn: column}
}

// Apply 把行级范围转成 GORM 过滤条件
func (d Decision) Apply(q *gorm.DB, a *Actor) *gorm.DB {
	if !d.Allowed {
		return q.Where("1 = 0")
	}
	if d.OwnerColumn != "" {
		return q.Where(d.OwnerColumn+" = ?", a.ID)
	}
	return q
}

type rule func(a *Actor) Decision

// policy 把原本散落在各集合配置里的访问规则收拢成一张
// (collection, operation) -> effect 的策略表，便于审计与单测。
var policy = map[Collection]map[Operation]rule{
	Categories: {
		Create: superAdminOnly,
		Read:   anyone,
		Update: superAdminOnly,
		Delete: superAdminOnly,
	},
	Instructors: {
		Create: superAdminOnly,
		Read:   anyone,
		Update: superAdminOnly,
		Delete: superAdminOnly,
	},
	Courses: {
		Create: internalOnly,
		Read:   anyone, // 内容裁剪由 gating 解析器完成，见 service.CourseService
		Update: internalOnly,
		Delete: internalOnly,
	},
	Exams: {
		Create: internalOnly,
		Read: func(a *Actor) Decision {
			if IsInternal(a) {
				return allow
			}
			if IsClient(a) {
				return allow // 仅已发布，见 repository 过滤
			}
			return deny
		},
		Update: internalOnly,
		Delete: internalOnly,
	},
	Submissions: {
		Create: clientOnly,
		Read:   internalOrOwnClient,
		Update: internalOnly, // 仅管理端补充 feedback
		Delete: internalOnly,
	},
	Participants: {
		Create: clientOnly,
		Read:   internalOrOwnClient,
		Update: internalOrOwnClient,
		Delete: internalOnly,
	},
	Comments: {
		Create: clientOnly,
		Read:   anyone,
		Update: internalOnly,
		Delete: internalOrOwnClient, // 学员可删除自己的留言
	},
	Reviews: {
		Create: clientOnly,
		Read:   anyone,
		Update: internalOnly,
		Delete: internalOnly,
	},
	Certificates: {
		Create: internalOnly,
		Read:   anyone,
		Update: internalOnly,
		Delete: internalOnly,
	},
	Accounts: {
		Create: anyone, // 注册开放
		Read:   internalOrOwnAccount,
		Update: internalOrOwnAccount,
		Delete: superAdminOnly,
	},
	Users: {
		Create: superAdminOnly,
		Read:   superAdminOnly,
		Update: superAdminOnly,
		Delete: superAdminOnly,
	},
	Videos: {
		Create: internalOnly,
		Read:   authenticatedOnly,
		Update: internalOnly,
		Delete: internalOnly,
	},
}

// Can 回答 actor 能否对集合执行操作。未登记的集合/操作一律拒绝。
func Can(a *Actor, c Collection, op Operation) Decision {
	ops, ok := policy[c]
	if !ok {
		return deny
	}
	r, ok := ops[op]
	if !ok {
		return deny
	}
	return r(a)
}

func anyone(_ *Actor) Decision {
	return allow
}

func authenticatedOnly(a *Actor) Decision {
	if IsAuthenticated(a) {
		return allow
	}
	return deny
}

func superAdminOnly(a *Actor) Decision {
	if IsSuperAdmin(a) {
		return allow
	}
	return deny
}

func internalOnly(a *Actor) Decision {
	if IsInternal(a) {
		return allow
	}
	return deny
}

func clientOnly(a *Actor) Decision {
	if IsClient(a) {
		return allow
	}
	return deny
}

func internalOrOwnClient(a *Actor) Decision {
	if IsInternal(a) {
		return allow
	}
	if IsClient(a) {
		return ownScope("client_id")
	}
	return deny
}

func internalOrOwnAccount(a *Actor) Decision {
	if IsInternal(a) {
		return allow
	}
	if IsClient(a) {
		return ownScope("id")
	}
	return deny
}
