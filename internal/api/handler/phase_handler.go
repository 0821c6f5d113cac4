package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/dto"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/service"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/response"
)

// PhaseHandler 项目阶段 HTTP 处理器
type PhaseHandler struct {
	phaseSvc service.PhaseService
}

// NewPhaseHandler 创建 PhaseHandler
func NewPhaseHandler(phaseSvc service.PhaseService) *PhaseHandler {
	return &PhaseHandler{phaseSvc: phaseSvc}
}

// GetPhases 全部四个阶段
// GET /api/v1/projects/:id/phases
func (h *PhaseHandler) GetPhases(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, service.ProjectNotFound)
	if !ok {
		return
	}

	phases, err := h.phaseSvc.GetPhases(c.Request.Context(), projectID, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, phases)
}

// CurrentPhase 推导的当前阶段
// GET /api/v1/projects/:id/phases/current
func (h *PhaseHandler) CurrentPhase(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	projectID, ok := uuidParam(c, service.ProjectNotFound)
	if !ok {
		return
	}

	current, err := h.phaseSvc.CurrentPhase(c.Request.Context(), projectID, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, current)
}

// RecordPhaseContent 记录阶段内容
// PUT /api/v1/projects/:id/phases/:phase/content
func (h *PhaseHandler) RecordPhaseContent(c *gin.Context) {
	var req dto.RecordPhaseContentRequest
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

	phase, err := h.phaseSvc.RecordPhaseContent(c.Request.Context(), projectID, c.Param("phase"), &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, phase)
}

// SetPhaseStatus 设置阶段状态
// PUT /api/v1/projects/:id/phases/:phase/status
func (h *PhaseHandler) SetPhaseStatus(c *gin.Context) {
	var req dto.SetPhaseStatusRequest
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

	phase, err := h.phaseSvc.SetPhaseStatus(c.Request.Context(), projectID, c.Param("phase"), &req, callerID)
	if err != nil {
		handleError(c, err)
		return
	}

	response.OK(c, phase)
}
