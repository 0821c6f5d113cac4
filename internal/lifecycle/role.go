package lifecycle

import (
	"sort"
	"strings"
)

// Role 调用方角色（封闭枚举）
type Role string

const (
	RoleStudent Role = "student"
	RoleAdvisor Role = "advisor"
	RoleAdmin   Role = "admin"
)

// roleAliases 兼容旧系统的 user.tipo 取值（ALUNO / PROFESSOR / ADMIN）
var roleAliases = map[string]Role{
	"student":       RoleStudent,
	"aluno":         RoleStudent,
	"advisor":       RoleAdvisor,
	"professor":     RoleAdvisor,
	"orientador":    RoleAdvisor,
	"admin":         RoleAdmin,
	"administrator": RoleAdmin,
	"administrador": RoleAdmin,
}

// ParseRole 解析角色字符串，大小写不敏感
func ParseRole(s string) (Role, bool) {
	r, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]
	return r, ok
}

// RoleSet 角色集合（一个用户可同时持有多个角色）
type RoleSet uint8

const (
	roleBitStudent RoleSet = 1 << iota
	roleBitAdvisor
	roleBitAdmin
)

func (r Role) bit() RoleSet {
	switch r {
	case RoleStudent:
		return roleBitStudent
	case RoleAdvisor:
		return roleBitAdvisor
	case RoleAdmin:
		return roleBitAdmin
	}
	return 0
}

// NewRoleSet 由角色列表构造集合
func NewRoleSet(roles ...Role) RoleSet {
	var s RoleSet
	for _, r := range roles {
		s |= r.bit()
	}
	return s
}

// ParseRoleSet 由持久化的角色字符串构造集合，未知取值忽略
func ParseRoleSet(values []string) RoleSet {
	var s RoleSet
	for _, v := range values {
		if r, ok := ParseRole(v); ok {
			s |= r.bit()
		}
	}
	return s
}

// Has 是否持有指定角色
func (s RoleSet) Has(r Role) bool { return s&r.bit() != 0 }

// Intersects 是否与另一集合存在交集
func (s RoleSet) Intersects(other RoleSet) bool { return s&other != 0 }

// IsStaff 是否为审核人员（Advisor 或 Administrator）
func (s RoleSet) IsStaff() bool { return s.Intersects(NewRoleSet(RoleAdvisor, RoleAdmin)) }

// Roles 返回有序角色列表
func (s RoleSet) Roles() []Role {
	var out []Role
	for _, r := range []Role{RoleStudent, RoleAdvisor, RoleAdmin} {
		if s.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// Strings 返回有序角色字符串
func (s RoleSet) Strings() []string {
	roles := s.Roles()
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	sort.Strings(out)
	return out
}

func (s RoleSet) String() string { return strings.Join(s.Strings(), "|") }
