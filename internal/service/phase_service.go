package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/dto"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/model"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/phase"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/repository"
	pkgerrors "github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/errors"
)

// PhaseService 项目阶段跟踪
//
// 两个概念互相独立：
//   - 阶段状态（pending / in_progress / completed）由 SetPhaseStatus 显式设置
//   - 当前阶段由内容推导（有内容的最高阶段），RecordPhaseContent 不改变阶段状态
//
// 不校验前置阶段是否完成。
type PhaseService interface {
	GetPhases(ctx context.Context, projectID, callerID string) (*dto.ProjectPhasesResponse, error)
	CurrentPhase(ctx context.Context, projectID, callerID string) (*dto.PhaseRefResponse, error)
	RecordPhaseContent(ctx context.Context, projectID, phaseKey string, req *dto.RecordPhaseContentRequest, callerID string) (*dto.PhaseResponse, error)
	SetPhaseStatus(ctx context.Context, projectID, phaseKey string, req *dto.SetPhaseStatusRequest, callerID string) (*dto.PhaseResponse, error)
}

type phaseService struct {
	repo   *repository.Repository
	roles  RoleResolver
	logger *zap.Logger
	now    func() time.Time
}

// NewPhaseService 创建 PhaseService 实例
func NewPhaseService(repo *repository.Repository, roles RoleResolver, logger *zap.Logger) PhaseService {
	return &phaseService{repo: repo, roles: roles, logger: logger, now: time.Now}
}

// currentPhaseOf 读取项目全部阶段内容并推导当前阶段
func currentPhaseOf(ctx context.Context, repo *repository.Repository, projectID string) (phase.Phase, error) {
	rows, err := repo.Phase.ListByProject(ctx, projectID)
	if err != nil {
		return phase.Ideation, err
	}
	contents := make([]phase.Content, 0, len(rows))
	for i := range rows {
		contents = append(contents, rows[i].Content())
	}
	return phase.Current(contents), nil
}

func parsePhase(key string) (phase.Phase, error) {
	p, ok := phase.Parse(key)
	if !ok {
		return 0, pkgerrors.Validation(CodeInvalidPhase, "phase",
			fmt.Sprintf("未知阶段 %q（可选 1-4、ideation / modeling / prototyping / implementation）", key))
	}
	return p, nil
}

// loadVisible 加载项目并检查读取可见性
func (s *phaseService) loadVisible(ctx context.Context, projectID string, caller Caller) (*model.Project, error) {
	p, err := s.repo.Project.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ProjectNotFound(projectID)
		}
		return nil, translate(s.logger, "查询项目", err)
	}
	if !canView(p, caller) {
		return nil, ProjectNotFound(projectID)
	}
	return p, nil
}

// loadWritable 写操作：作者或管理员；已删除项目不可写
func (s *phaseService) loadWritable(ctx context.Context, projectID string, caller Caller) (*model.Project, error) {
	p, err := s.loadVisible(ctx, projectID, caller)
	if err != nil {
		return nil, err
	}
	if p.Status.Terminal() {
		return nil, pkgerrors.InvalidState(lifecycle.CodeProjectDeleted, "项目已删除，不允许修改阶段内容").
			WithMeta("status", string(p.Status))
	}
	if !p.IsAuthor(caller.UserID) && !caller.IsAdmin() {
		return nil, pkgerrors.Authorization(lifecycle.CodeNotAuthor, "仅项目作者或管理员可以修改阶段内容")
	}
	return p, nil
}

func (s *phaseService) getOrDefault(ctx context.Context, projectID string, p phase.Phase) (*model.ProjectPhase, error) {
	row, err := s.repo.Phase.Get(ctx, projectID, p)
	if err == nil {
		return row, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, translate(s.logger, "查询阶段", err)
	}
	row = &model.ProjectPhase{ProjectID: projectID, Phase: p, Status: phase.StatusPending}
	_ = row.SetAttachments(nil)
	return row, nil
}

// ────────────────────── GetPhases ──────────────────────

// GetPhases 返回全部四个阶段，未记录的阶段以 pending 默认值填充
func (s *phaseService) GetPhases(ctx context.Context, projectID, callerID string) (*dto.ProjectPhasesResponse, error) {
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadVisible(ctx, projectID, caller); err != nil {
		return nil, err
	}

	rows, err := s.repo.Phase.ListByProject(ctx, projectID)
	if err != nil {
		return nil, translate(s.logger, "查询阶段列表", err)
	}
	byPhase := make(map[phase.Phase]*model.ProjectPhase, len(rows))
	contents := make([]phase.Content, 0, len(rows))
	for i := range rows {
		byPhase[rows[i].Phase] = &rows[i]
		contents = append(contents, rows[i].Content())
	}

	resp := &dto.ProjectPhasesResponse{
		ProjectID:    projectID,
		CurrentPhase: toPhaseRef(phase.Current(contents)),
		Phases:       make([]dto.PhaseResponse, 0, len(phase.All())),
	}
	for _, p := range phase.All() {
		row, ok := byPhase[p]
		if !ok {
			row = &model.ProjectPhase{ProjectID: projectID, Phase: p, Status: phase.StatusPending}
		}
		resp.Phases = append(resp.Phases, toPhaseResponse(row))
	}
	return resp, nil
}

// ────────────────────── CurrentPhase ──────────────────────

func (s *phaseService) CurrentPhase(ctx context.Context, projectID, callerID string) (*dto.PhaseRefResponse, error) {
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadVisible(ctx, projectID, caller); err != nil {
		return nil, err
	}
	current, err := currentPhaseOf(ctx, s.repo, projectID)
	if err != nil {
		return nil, translate(s.logger, "推导当前阶段", err)
	}
	ref := toPhaseRef(current)
	return &ref, nil
}

// ────────────────────── RecordPhaseContent ──────────────────────

// RecordPhaseContent 幂等写入阶段内容
// description / attachments 为 nil 时保持原值；空切片清空附件。阶段状态不变。
func (s *phaseService) RecordPhaseContent(ctx context.Context, projectID, phaseKey string, req *dto.RecordPhaseContentRequest, callerID string) (*dto.PhaseResponse, error) {
	const op = "记录阶段内容"
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}
	p, err := parsePhase(phaseKey)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadWritable(ctx, projectID, caller); err != nil {
		logRejection(s.logger, op, callerID, err)
		return nil, err
	}

	row, err := s.getOrDefault(ctx, projectID, p)
	if err != nil {
		return nil, err
	}
	if req.Description != nil {
		row.Description = strings.TrimSpace(*req.Description)
	}
	if req.Attachments != nil {
		list := make([]model.Attachment, 0, len(req.Attachments))
		for _, a := range req.Attachments {
			list = append(list, model.Attachment{Name: a.Name, URL: a.URL, MimeType: a.MimeType, Size: a.Size})
		}
		if err := row.SetAttachments(list); err != nil {
			return nil, translate(s.logger, "序列化附件", err)
		}
	}
	row.UpdatedAt = s.now()
	row.UpdatedBy = &caller.UserID

	if err := s.repo.Phase.Upsert(ctx, row); err != nil {
		return nil, translate(s.logger, op, err)
	}
	s.logger.Info("阶段内容已更新",
		zap.String("project_id", projectID),
		zap.String("phase", p.Name()),
		zap.String("user_id", callerID),
	)
	resp := toPhaseResponse(row)
	return &resp, nil
}

// ────────────────────── SetPhaseStatus ──────────────────────

func (s *phaseService) SetPhaseStatus(ctx context.Context, projectID, phaseKey string, req *dto.SetPhaseStatusRequest, callerID string) (*dto.PhaseResponse, error) {
	const op = "设置阶段状态"
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}
	p, err := parsePhase(phaseKey)
	if err != nil {
		return nil, err
	}
	status, ok := phase.ParseStatus(req.Status)
	if !ok {
		return nil, pkgerrors.Validation(CodeInvalidPhase, "status",
			fmt.Sprintf("未知阶段状态 %q（可选 pending / in_progress / completed）", req.Status))
	}
	if _, err := s.loadWritable(ctx, projectID, caller); err != nil {
		logRejection(s.logger, op, callerID, err)
		return nil, err
	}

	row, err := s.getOrDefault(ctx, projectID, p)
	if err != nil {
		return nil, err
	}
	row.Status = status
	row.UpdatedAt = s.now()
	row.UpdatedBy = &caller.UserID

	if err := s.repo.Phase.Upsert(ctx, row); err != nil {
		return nil, translate(s.logger, op, err)
	}
	resp := toPhaseResponse(row)
	return &resp, nil
}

func toPhaseResponse(row *model.ProjectPhase) dto.PhaseResponse {
	resp := dto.PhaseResponse{
		PhaseRefResponse: toPhaseRef(row.Phase),
		Status:           string(row.Status),
		Description:      row.Description,
		Attachments:      []dto.AttachmentInput{},
		HasContent:       row.Content().HasContent(),
		UpdatedAt:        formatTime(row.UpdatedAt),
	}
	if resp.Status == "" {
		resp.Status = string(phase.StatusPending)
	}
	for _, a := range row.AttachmentList() {
		resp.Attachments = append(resp.Attachments, dto.AttachmentInput{Name: a.Name, URL: a.URL, MimeType: a.MimeType, Size: a.Size})
	}
	return resp
}
