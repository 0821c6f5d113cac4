package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/service"
)

// ── 任务类型 ──

const (
	TypeArchiveRequested = "notification:archive_requested"
	TypeArchiveResolved  = "notification:archive_resolved"
)

// NewArchiveRequestedTask 构造"收到归档申请"通知任务
func NewArchiveRequestedTask(n service.ArchiveRequestedNotice, opts ...asynq.Option) (*asynq.Task, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("序列化任务载荷失败: %w", err)
	}
	return asynq.NewTask(TypeArchiveRequested, payload, opts...), nil
}

// NewArchiveResolvedTask 构造"归档申请已处理"通知任务
func NewArchiveResolvedTask(n service.ArchiveResolvedNotice, opts ...asynq.Option) (*asynq.Task, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("序列化任务载荷失败: %w", err)
	}
	return asynq.NewTask(TypeArchiveResolved, payload, opts...), nil
}
