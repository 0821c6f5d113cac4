package handler

import "github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	Lifecycle    *LifecycleHandler
	Phase        *PhaseHandler
	Export       *ExportHandler
	Notification *NotificationHandler
	Health       *HealthHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service, probes map[string]Probe) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		Lifecycle:    NewLifecycleHandler(svc.Lifecycle),
		Phase:        NewPhaseHandler(svc.Phase),
		Export:       NewExportHandler(svc.Export),
		Notification: NewNotificationHandler(svc.Notification),
		Health:       NewHealthHandler(probes),
	}
}
