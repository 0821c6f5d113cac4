package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/dto"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/repository"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NotificationService 站内通知读取（写入由 worker 完成）
type NotificationService interface {
	ListMine(ctx context.Context, q *dto.NotificationListQuery, callerID string) ([]dto.NotificationResponse, int64, error)
	MarkRead(ctx context.Context, notificationID, callerID string) error
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

// normalizePage 修正分页参数
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func (s *notificationService) ListMine(ctx context.Context, q *dto.NotificationListQuery, callerID string) ([]dto.NotificationResponse, int64, error) {
	page, size := normalizePage(q.Page, q.PageSize)
	q.Page, q.PageSize = page, size

	items, total, err := s.repo.Notification.ListByUser(ctx, callerID, q.UnreadOnly, (page-1)*size, size)
	if err != nil {
		return nil, 0, translate(s.logger, "查询站内通知", err)
	}

	list := make([]dto.NotificationResponse, 0, len(items))
	for _, n := range items {
		list = append(list, dto.NotificationResponse{
			ID:          n.NotificationID,
			Type:        n.Type,
			Title:       n.Title,
			Content:     n.Content,
			IsRead:      n.IsRead,
			RelatedType: n.RelatedType,
			RelatedID:   n.RelatedID,
			CreatedAt:   formatTime(n.CreatedAt),
		})
	}
	return list, total, nil
}

// MarkRead 只能标记自己的通知，他人通知按不存在处理
func (s *notificationService) MarkRead(ctx context.Context, notificationID, callerID string) error {
	if err := s.repo.Notification.MarkRead(ctx, notificationID, callerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationNotFound(notificationID)
		}
		return translate(s.logger, "标记通知已读", err)
	}
	return nil
}
