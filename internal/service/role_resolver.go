package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/repository"
)

// RoleResolver 根据调用者标识解析其持有的角色集合
type RoleResolver interface {
	RolesOf(ctx context.Context, userID string) (lifecycle.RoleSet, error)
}

// Caller 已解析角色的调用者
type Caller struct {
	UserID string
	Roles  lifecycle.RoleSet
}

// IsAdmin 是否持有管理员角色
func (c Caller) IsAdmin() bool { return c.Roles.Has(lifecycle.RoleAdmin) }

type roleResolver struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRoleResolver 创建基于 user_roles 表的 RoleResolver
func NewRoleResolver(repo *repository.Repository, logger *zap.Logger) RoleResolver {
	return &roleResolver{repo: repo, logger: logger}
}

// RolesOf 未知用户返回空集合（后续授权检查自然拒绝）
// 非 UUID 的用户标识同样视为未知用户
func (r *roleResolver) RolesOf(ctx context.Context, userID string) (lifecycle.RoleSet, error) {
	raw, err := r.repo.UserRole.RolesOf(ctx, userID)
	if err != nil {
		if isMalformedReference(err) {
			return 0, nil
		}
		return 0, translate(r.logger, "查询用户角色", err)
	}
	return lifecycle.ParseRoleSet(raw), nil
}

// resolveCaller 解析调用者角色
func resolveCaller(ctx context.Context, roles RoleResolver, userID string) (Caller, error) {
	set, err := roles.RolesOf(ctx, userID)
	if err != nil {
		return Caller{}, err
	}
	return Caller{UserID: userID, Roles: set}, nil
}
