package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/dto"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/service"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/response"
)

// LifecycleHandler 项目生命周期 HTTP 处理器
type LifecycleHandler struct {
	lifecycleSvc service.LifecycleService
}

// NewLifecycleHandler 创建 LifecycleHandler
func NewLifecycleHandler(lifecycleSvc service.LifecycleService) *LifecycleHandler {
	return &LifecycleHandler{lifecycleSvc: lifecycleSvc}
}

// ── 项目 ──

// GetProject 项目快照
// GET /api/v1/projects/:id
func (h *LifecycleHandler) GetProject(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, service.ProjectNotFound)
	if !ok {
		return
	}

	project, err := h.lifecycleSvc.GetProject(c.Request.Context(), projectID, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, project)
}

// ListProjectHistory 项目生命周期审计记录
// GET /api/v1/projects/:id/history
func (h *LifecycleHandler) ListProjectHistory(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, service.ProjectNotFound)
	if !ok {
		return
	}

	events, err := h.lifecycleSvc.ListProjectHistory(c.Request.Context(), projectID, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": events})
}

// ListDeactivatedProjects 已停用项目
// GET /api/v1/projects/deactivated?scope=mine|all&include_deleted=true
func (h *LifecycleHandler) ListDeactivatedProjects(c *gin.Context) {
	var q dto.DeactivatedProjectsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	projects, err := h.lifecycleSvc.ListDeactivatedProjects(c.Request.Context(), &q, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": projects})
}

// ── 归档流程 ──

// RequestArchive 作者申请归档
// POST /api/v1/projects/:id/archive-requests
func (h *LifecycleHandler) RequestArchive(c *gin.Context) {
	var req dto.JustificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, service.ProjectNotFound)
	if !ok {
		return
	}

	created, err := h.lifecycleSvc.RequestArchive(c.Request.Context(), projectID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.Created(c, created)
}

// ApproveArchive 批准归档申请（无需理由）
// POST /api/v1/archive-requests/:id/approve
func (h *LifecycleHandler) ApproveArchive(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, service.RequestNotFound)
	if !ok {
		return
	}

	project, err := h.lifecycleSvc.ApproveArchive(c.Request.Context(), requestID, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, project)
}

// DenyArchive 驳回归档申请
// POST /api/v1/archive-requests/:id/deny
func (h *LifecycleHandler) DenyArchive(c *gin.Context) {
	var req dto.JustificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, service.RequestNotFound)
	if !ok {
		return
	}

	resolved, err := h.lifecycleSvc.DenyArchive(c.Request.Context(), requestID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, resolved)
}

// AdminDeactivate 管理员停用项目
// POST /api/v1/admin/projects/:id/deactivate
func (h *LifecycleHandler) AdminDeactivate(c *gin.Context) {
	var req dto.JustificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, service.ProjectNotFound)
	if !ok {
		return
	}

	project, err := h.lifecycleSvc.AdminDeactivate(c.Request.Context(), projectID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, project)
}

// AdminDelete 管理员删除项目（终态）
// POST /api/v1/admin/projects/:id/delete
func (h *LifecycleHandler) AdminDelete(c *gin.Context) {
	var req dto.JustificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, service.ProjectNotFound)
	if !ok {
		return
	}

	project, err := h.lifecycleSvc.AdminDelete(c.Request.Context(), projectID, &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, project)
}

// ── 归档申请查询 ──

// ListArchivalRequests 按状态与范围查询
// GET /api/v1/archive-requests?status=&scope=mine|all|pending|advised&project_id=
func (h *LifecycleHandler) ListArchivalRequests(c *gin.Context) {
	var q dto.ArchivalRequestListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindFailed(c, err)
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.lifecycleSvc.ListArchivalRequests(c.Request.Context(), &q, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// ListMyArchivalRequests 我发起的申请
// GET /api/v1/archive-requests/mine
func (h *LifecycleHandler) ListMyArchivalRequests(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.lifecycleSvc.ListMyArchivalRequests(c.Request.Context(), callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// ListPendingArchivalRequests 待处理申请（导师 / 管理员）
// GET /api/v1/archive-requests/pending
func (h *LifecycleHandler) ListPendingArchivalRequests(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	list, err := h.lifecycleSvc.ListPendingArchivalRequests(c.Request.Context(), callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetArchivalRequest 申请详情
// GET /api/v1/archive-requests/:id
func (h *LifecycleHandler) GetArchivalRequest(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	requestID, ok := uuidParam(c, service.RequestNotFound)
	if !ok {
		return
	}

	req, err := h.lifecycleSvc.GetArchivalRequest(c.Request.Context(), requestID, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, req)
}
