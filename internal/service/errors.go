package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
	pkgerrors "github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/errors"
)

// ── 服务层业务码（与 lifecycle 包的 170xx 同段）──

const (
	CodeProjectNotFound      = 17101
	CodeRequestNotFound      = 17102
	CodeConcurrentUpdate     = 17103
	CodeInvalidPhase         = 17104
	CodeInvalidScope         = 17105
	CodeAccessDenied         = 17106
	CodeNotificationNotFound = 17107
	CodeTokenNotRevocable    = 17108
	CodeMalformedReference   = 17109
	CodeInternal             = 10000
)

// pgInvalidTextRepresentation 如 UUID 列收到非法字面量
const pgInvalidTextRepresentation = "22P02"

// ProjectNotFound 项目不存在
func ProjectNotFound(id string) error {
	return pkgerrors.NotFound(CodeProjectNotFound, "项目不存在").WithMeta("project_id", id)
}

// RequestNotFound 归档申请不存在
func RequestNotFound(id string) error {
	return pkgerrors.NotFound(CodeRequestNotFound, "归档申请不存在").WithMeta("archival_request_id", id)
}

// NotificationNotFound 通知不存在（含他人的通知）
func NotificationNotFound(id string) error {
	return pkgerrors.NotFound(CodeNotificationNotFound, "通知不存在").WithMeta("notification_id", id)
}

// isMalformedReference 标识格式非法，数据库中不可能存在对应记录
func isMalformedReference(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation
}

// translate 将持久化层错误统一转换为错误分类
// 已是 AppError 的直接透传；未知错误记录日志后包装为 internal
func translate(logger *zap.Logger, op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := pkgerrors.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		return pkgerrors.Wrap(err, pkgerrors.KindConflict, CodeConcurrentUpdate, "数据已被其他操作修改，请刷新后重试")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return pkgerrors.Wrap(err, pkgerrors.KindConflict, lifecycle.CodePendingRequestExists, "该项目已有待处理的归档申请，请等待审核结果")
	case isMalformedReference(err):
		return pkgerrors.Wrap(err, pkgerrors.KindNotFound, CodeMalformedReference, "记录不存在")
	}
	logger.Error(op+"失败", zap.Error(err))
	return pkgerrors.Wrap(err, pkgerrors.KindInternal, CodeInternal, "服务器内部错误")
}

// logRejection 记录业务拒绝（非系统错误，Info/Warn 级别）
func logRejection(logger *zap.Logger, op string, callerID string, err error) {
	kind := pkgerrors.KindOf(err)
	fields := []zap.Field{zap.String("caller_id", callerID), zap.String("kind", string(kind)), zap.Error(err)}
	switch kind {
	case pkgerrors.KindInternal:
		// 已在 translate 中记录
	case pkgerrors.KindAuthorization, pkgerrors.KindConflict:
		logger.Warn(op+"被拒绝", fields...)
	default:
		logger.Info(op+"被拒绝", fields...)
	}
}
