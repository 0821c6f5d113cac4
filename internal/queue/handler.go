package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/model"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/repository"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/service"
)

// 站内通知类型
const (
	notifyArchiveRequested = "archive_requested"
	notifyArchiveApproved  = "archive_approved"
	notifyArchiveDenied    = "archive_denied"

	relatedArchivalRequest = "archival_request"
)

// NotificationHandler 消费通知任务并写入站内通知
type NotificationHandler struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationHandler 创建任务处理器
func NewNotificationHandler(repo *repository.Repository, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{repo: repo, logger: logger}
}

// Register 在 mux 上注册全部通知任务
func (h *NotificationHandler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeArchiveRequested, h.HandleArchiveRequested)
	mux.HandleFunc(TypeArchiveResolved, h.HandleArchiveResolved)
}

// HandleArchiveRequested 通知项目导师；项目没有导师时通知全部导师
func (h *NotificationHandler) HandleArchiveRequested(ctx context.Context, t *asynq.Task) error {
	var n service.ArchiveRequestedNotice
	if err := json.Unmarshal(t.Payload(), &n); err != nil {
		h.logger.Error("通知任务载荷无效", zap.String("type", t.Type()), zap.Error(err))
		return fmt.Errorf("解析载荷失败: %v: %w", err, asynq.SkipRetry)
	}

	recipients := n.AdvisorIDs
	if len(recipients) == 0 {
		ids, err := h.repo.UserRole.ListUserIDsByRole(ctx, string(lifecycle.RoleAdvisor))
		if err != nil {
			h.logger.Error("查询导师列表失败", zap.Error(err))
			return err
		}
		recipients = ids
	}
	if len(recipients) == 0 {
		h.logger.Warn("归档申请无可通知的导师", zap.String("request_id", n.RequestID))
		return nil
	}

	items := make([]model.Notification, 0, len(recipients))
	for _, uid := range dedupe(recipients) {
		items = append(items, newNotification(uid, notifyArchiveRequested,
			"Nova solicitação de arquivamento",
			fmt.Sprintf("O projeto \"%s\" recebeu uma solicitação de arquivamento: %s", n.ProjectTitle, n.Justification),
			n.RequestID))
	}
	return h.save(ctx, t.Type(), n.RequestID, items)
}

// HandleArchiveResolved 通知申请人处理结果
func (h *NotificationHandler) HandleArchiveResolved(ctx context.Context, t *asynq.Task) error {
	var n service.ArchiveResolvedNotice
	if err := json.Unmarshal(t.Payload(), &n); err != nil {
		h.logger.Error("通知任务载荷无效", zap.String("type", t.Type()), zap.Error(err))
		return fmt.Errorf("解析载荷失败: %v: %w", err, asynq.SkipRetry)
	}

	typ := notifyArchiveApproved
	title := "Solicitação de arquivamento aprovada"
	content := fmt.Sprintf("O projeto \"%s\" foi arquivado.", n.ProjectTitle)
	if n.Status == lifecycle.RequestDenied {
		typ = notifyArchiveDenied
		title = "Solicitação de arquivamento negada"
		content = fmt.Sprintf("A solicitação de arquivamento do projeto \"%s\" foi negada: %s", n.ProjectTitle, n.Justification)
	}
	items := []model.Notification{newNotification(n.RequesterID, typ, title, content, n.RequestID)}
	return h.save(ctx, t.Type(), n.RequestID, items)
}

func (h *NotificationHandler) save(ctx context.Context, taskType, requestID string, items []model.Notification) error {
	if err := h.repo.Notification.BatchCreate(ctx, items); err != nil {
		h.logger.Error("写入通知失败",
			zap.String("type", taskType),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return err
	}
	h.logger.Info("通知已写入",
		zap.String("type", taskType),
		zap.String("request_id", requestID),
		zap.Int("recipients", len(items)),
	)
	return nil
}

func newNotification(userID, typ, title, content, requestID string) model.Notification {
	relatedType := relatedArchivalRequest
	relatedID := requestID
	return model.Notification{
		UserID:      userID,
		Type:        typ,
		Title:       title,
		Content:     content,
		RelatedType: &relatedType,
		RelatedID:   &relatedID,
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
