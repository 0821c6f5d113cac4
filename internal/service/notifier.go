package service

import (
	"context"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
)

// ArchiveRequestedNotice 新归档申请通知（发给项目导师）
type ArchiveRequestedNotice struct {
	RequestID     string   `json:"request_id"`
	ProjectID     string   `json:"project_id"`
	ProjectTitle  string   `json:"project_title"`
	RequesterID   string   `json:"requester_id"`
	Justification string   `json:"justification"`
	AdvisorIDs    []string `json:"advisor_ids"` // 为空时投递给全部导师
}

// ArchiveResolvedNotice 归档申请处理结果通知（发给申请人）
type ArchiveResolvedNotice struct {
	RequestID     string                  `json:"request_id"`
	ProjectID     string                  `json:"project_id"`
	ProjectTitle  string                  `json:"project_title"`
	RequesterID   string                  `json:"requester_id"`
	ResolverID    string                  `json:"resolver_id"`
	Status        lifecycle.RequestStatus `json:"status"`
	Justification string                  `json:"justification,omitempty"`
}

// Notifier 通知发送器（尽力而为，失败不影响生命周期操作）
type Notifier interface {
	ArchiveRequested(ctx context.Context, n ArchiveRequestedNotice) error
	ArchiveResolved(ctx context.Context, n ArchiveResolvedNotice) error
}

// NopNotifier 不发送任何通知（队列未配置时使用）
type NopNotifier struct{}

func (NopNotifier) ArchiveRequested(context.Context, ArchiveRequestedNotice) error { return nil }
func (NopNotifier) ArchiveResolved(context.Context, ArchiveResolvedNotice) error   { return nil }
