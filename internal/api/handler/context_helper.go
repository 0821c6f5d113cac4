package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pkgerrors "github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/errors"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/response"
)

// 通用业务码
const (
	codeBadRequest      = 10001
	codeUnauthenticated = 10002
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, codeUnauthenticated, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, codeUnauthenticated, "未认证")
		return "", false
	}
	return s, true
}

// uuidParam 读取路径参数 :id
// 非 UUID 的标识不可能对应任何记录，直接按 not_found 响应
func uuidParam(c *gin.Context, notFound func(string) error) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		handleError(c, notFound(id))
		return "", false
	}
	return id, true
}

// bindFailed 请求体 / 查询参数绑定失败
func bindFailed(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, codeBadRequest, "参数校验失败", err.Error())
}

// statusOf 错误分类 → HTTP 状态码
func statusOf(kind pkgerrors.Kind) int {
	switch kind {
	case pkgerrors.KindValidation:
		return http.StatusBadRequest
	case pkgerrors.KindAuthorization:
		return http.StatusForbidden
	case pkgerrors.KindNotFound:
		return http.StatusNotFound
	case pkgerrors.KindConflict:
		return http.StatusConflict
	case pkgerrors.KindInvalidState:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// handleError 业务错误统一出口
// details 合并 field 与 meta（min_length、required_roles、status 等）
func handleError(c *gin.Context, err error) {
	ae, ok := pkgerrors.As(err)
	if !ok || ae.Kind == pkgerrors.KindInternal {
		_ = c.Error(err)
		response.InternalError(c)
		return
	}

	var details gin.H
	if ae.Field != "" || len(ae.Meta) > 0 {
		details = gin.H{}
		if ae.Field != "" {
			details["field"] = ae.Field
		}
		for k, v := range ae.Meta {
			details[k] = v
		}
	}
	if details == nil {
		response.Error(c, statusOf(ae.Kind), ae.Code, ae.Message)
		return
	}
	response.ErrorWithDetails(c, statusOf(ae.Kind), ae.Code, ae.Message, details)
}
