package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/dto"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
	pkgerrors "github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/errors"
)

// TokenRevoker Token 黑名单存储（Redis）
type TokenRevoker interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
}

// AuthService 认证业务接口
// Token 由外部认证服务签发，本服务只负责注销与身份查询
type AuthService interface {
	Logout(ctx context.Context, jti string, expiresAt time.Time) error
	GetCurrentUser(ctx context.Context, callerID string) (*dto.CurrentUserResponse, error)
}

var errRevocationUnavailable = errors.New("token revocation store not configured")

type authService struct {
	roles   RoleResolver
	revoker TokenRevoker
	logger  *zap.Logger
	now     func() time.Time
}

// NewAuthService 创建 AuthService 实例
// revoker 为 nil 时登出不可用
func NewAuthService(roles RoleResolver, revoker TokenRevoker, logger *zap.Logger) AuthService {
	return &authService{roles: roles, revoker: revoker, logger: logger, now: time.Now}
}

// Logout 将当前 Token 的 jti 加入黑名单直至其过期
func (s *authService) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return pkgerrors.Validation(CodeTokenNotRevocable, "token", "Token 缺少 jti，无法注销")
	}
	if s.revoker == nil {
		s.logger.Warn("Token 黑名单不可用，登出未生效", zap.String("jti", jti))
		return pkgerrors.Wrap(errRevocationUnavailable, pkgerrors.KindInternal, CodeInternal, "Token 注销服务暂不可用")
	}

	ttl := expiresAt.Sub(s.now())
	if expiresAt.IsZero() || ttl <= 0 {
		return nil
	}
	if err := s.revoker.BlacklistToken(ctx, jti, ttl); err != nil {
		return translate(s.logger, "写入 Token 黑名单", err)
	}
	s.logger.Info("Token 已注销", zap.String("jti", jti), zap.Duration("ttl", ttl))
	return nil
}

// GetCurrentUser 返回调用者的实时角色（角色变更无需重新签发 Token）
func (s *authService) GetCurrentUser(ctx context.Context, callerID string) (*dto.CurrentUserResponse, error) {
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}
	return &dto.CurrentUserResponse{
		UserID:  caller.UserID,
		Roles:   caller.Roles.Strings(),
		IsStaff: caller.Roles.IsStaff(),
		IsAdmin: caller.Roles.Has(lifecycle.RoleAdmin),
	}, nil
}
