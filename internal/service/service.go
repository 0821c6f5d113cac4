package service

import (
	"go.uber.org/zap"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/config"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Roles        RoleResolver
	Auth         AuthService
	Lifecycle    LifecycleService
	Phase        PhaseService
	Export       ExportService
	Notification NotificationService
}

// NewService 创建 Service 聚合
// notifier 为 nil 时不发送通知；revoker 为 nil 时登出不可用
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	notifier Notifier,
	revoker TokenRevoker,
	logger *zap.Logger,
) *Service {
	machine := lifecycle.NewMachine(lifecycle.Policy{
		RequestMinLength:    cfg.Lifecycle.RequestMinLength,
		ResolutionMinLength: cfg.Lifecycle.ResolutionMinLength,
	})
	roles := NewRoleResolver(repo, logger)
	return &Service{
		Roles:        roles,
		Auth:         NewAuthService(roles, revoker, logger),
		Lifecycle:    NewLifecycleService(repo, roles, machine, notifier, logger),
		Phase:        NewPhaseService(repo, roles, logger),
		Export:       NewExportService(repo, roles, logger),
		Notification: NewNotificationService(repo, logger),
	}
}
