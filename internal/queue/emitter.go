package queue

import (
	"context"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/config"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/service"
)

// Enqueuer asynq.Client 的最小子集
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Emitter 基于 asynq 的通知发送器，实现 service.Notifier
// 只负责入队，通知行由 worker 写入
type Emitter struct {
	client   Enqueuer
	queue    string
	maxRetry int
	logger   *zap.Logger
}

var _ service.Notifier = (*Emitter)(nil)

// NewEmitter 创建发送器
func NewEmitter(client Enqueuer, cfg *config.QueueConfig, logger *zap.Logger) *Emitter {
	e := &Emitter{client: client, queue: "notifications", maxRetry: 5, logger: logger}
	if cfg != nil {
		if cfg.NotificationQueue != "" {
			e.queue = cfg.NotificationQueue
		}
		if cfg.MaxRetry > 0 {
			e.maxRetry = cfg.MaxRetry
		}
	}
	return e
}

func (e *Emitter) options() []asynq.Option {
	return []asynq.Option{asynq.Queue(e.queue), asynq.MaxRetry(e.maxRetry)}
}

// ArchiveRequested 入队"收到归档申请"通知
func (e *Emitter) ArchiveRequested(ctx context.Context, n service.ArchiveRequestedNotice) error {
	task, err := NewArchiveRequestedTask(n)
	if err != nil {
		return err
	}
	return e.enqueue(ctx, task, n.RequestID)
}

// ArchiveResolved 入队"归档申请已处理"通知
func (e *Emitter) ArchiveResolved(ctx context.Context, n service.ArchiveResolvedNotice) error {
	task, err := NewArchiveResolvedTask(n)
	if err != nil {
		return err
	}
	return e.enqueue(ctx, task, n.RequestID)
}

func (e *Emitter) enqueue(ctx context.Context, task *asynq.Task, requestID string) error {
	info, err := e.client.EnqueueContext(ctx, task, e.options()...)
	if err != nil {
		return err
	}
	e.logger.Debug("通知任务已入队",
		zap.String("type", task.Type()),
		zap.String("task_id", info.ID),
		zap.String("queue", info.Queue),
		zap.String("request_id", requestID),
	)
	return nil
}
