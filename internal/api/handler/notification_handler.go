package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/dto"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/service"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/response"
)

// NotificationHandler 站内通知 HTTP 处理器
type NotificationHandler struct {
	notificationSvc service.NotificationService
}

// NewNotificationHandler 创建 NotificationHandler
func NewNotificationHandler(notificationSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc}
}

// ListMine 我的通知（分页）
// GET /api/v1/notifications?unread_only=&page=&page_size=
func (h *NotificationHandler) ListMine(c *gin.Context) {
	var q dto.NotificationListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, total, err := h.notificationSvc.ListMine(c.Request.Context(), &q, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OKPage(c, list, total, q.Page, q.PageSize)
}

// MarkRead 标记已读
// PUT /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	notificationID, ok := uuidParam(c, service.NotificationNotFound)
	if !ok {
		return
	}

	if err := h.notificationSvc.MarkRead(c.Request.Context(), notificationID, callerID); err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, nil)
}
