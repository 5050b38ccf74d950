// Package authz 以显式谓词表达“谁可以做什么”，路由中间件和业务层共用同一份规则。
package authz

// Role 调用方角色
type Role string

const (
	RoleUser    Role = "user"
	RolePartner Role = "partner"
)

// Valid 是否为已知角色
func (r Role) Valid() bool {
	return r == RoleUser || r == RolePartner
}

// Principal 认证服务签发的调用方身份
type Principal struct {
	ID   int64
	Role Role
}

// Capability 操作能力
type Capability string

const (
	CapViewFeed      Capability = "feed:view"
	CapEngage        Capability = "video:engage"
	CapComment       Capability = "comment:write"
	CapPublishVideo  Capability = "video:publish"
	CapManageProfile Capability = "partner:profile"
)

var grants = map[Role]map[Capability]bool{
	RoleUser: {
		CapViewFeed: true,
		CapEngage:   true,
		CapComment:  true,
	},
	RolePartner: {
		CapPublishVideo:  true,
		CapManageProfile: true,
	},
}

// Can 角色是否具备某项能力
func Can(p Principal, c Capability) bool {
	if p.ID <= 0 {
		return false
	}
	return grants[p.Role][c]
}

// IsPartnerSelf 调用方是否为该商家本人
func IsPartnerSelf(p Principal, partnerID int64) bool {
	return Can(p, CapManageProfile) && p.ID == partnerID
}

// IsAuthor 调用方是否为内容作者
func IsAuthor(p Principal, authorUserID int64) bool {
	return p.Role == RoleUser && p.ID > 0 && p.ID == authorUserID
}
