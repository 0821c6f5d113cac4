package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/dto"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/model"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/repository"
	pkgerrors "github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/errors"
)

// LifecycleService 项目生命周期网关
//
// 每个操作：解析调用者角色 → 在单个事务内加锁读取项目 / 申请 →
// 交由状态机校验 → 写入项目状态、申请台账与审计记录 → 提交后尽力发送通知。
// 业务规则只存在于 lifecycle.Machine 的迁移表中。
type LifecycleService interface {
	GetProject(ctx context.Context, projectID, callerID string) (*dto.ProjectResponse, error)
	ListProjectHistory(ctx context.Context, projectID, callerID string) ([]dto.LifecycleEventResponse, error)

	RequestArchive(ctx context.Context, projectID string, req *dto.JustificationRequest, callerID string) (*dto.ArchivalRequestResponse, error)
	ApproveArchive(ctx context.Context, requestID, callerID string) (*dto.ProjectResponse, error)
	DenyArchive(ctx context.Context, requestID string, req *dto.JustificationRequest, callerID string) (*dto.ArchivalRequestResponse, error)
	AdminDeactivate(ctx context.Context, projectID string, req *dto.JustificationRequest, callerID string) (*dto.ProjectResponse, error)
	AdminDelete(ctx context.Context, projectID string, req *dto.JustificationRequest, callerID string) (*dto.ProjectResponse, error)

	ListDeactivatedProjects(ctx context.Context, q *dto.DeactivatedProjectsQuery, callerID string) ([]dto.ProjectResponse, error)
	ListMyArchivalRequests(ctx context.Context, callerID string) ([]dto.ArchivalRequestResponse, error)
	ListArchivalRequests(ctx context.Context, q *dto.ArchivalRequestListQuery, callerID string) ([]dto.ArchivalRequestResponse, error)
	ListPendingArchivalRequests(ctx context.Context, callerID string) ([]dto.ArchivalRequestResponse, error)
	GetArchivalRequest(ctx context.Context, requestID, callerID string) (*dto.ArchivalRequestResponse, error)
}

type lifecycleService struct {
	repo     *repository.Repository
	roles    RoleResolver
	machine  *lifecycle.Machine
	ledger   *ArchivalLedger
	notifier Notifier
	logger   *zap.Logger
}

// NewLifecycleService 创建 LifecycleService 实例
func NewLifecycleService(
	repo *repository.Repository,
	roles RoleResolver,
	machine *lifecycle.Machine,
	notifier Notifier,
	logger *zap.Logger,
) LifecycleService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &lifecycleService{
		repo:     repo,
		roles:    roles,
		machine:  machine,
		ledger:   NewArchivalLedger(repo.ArchivalRequest, machine, logger),
		notifier: notifier,
		logger:   logger,
	}
}

// ────────────────────── 事务与加载辅助 ──────────────────────

// inTx 在单个事务内执行 fn，fn 返回错误或 panic 时回滚
func (s *lifecycleService) inTx(ctx context.Context, op string, fn func(tx *repository.Repository) error) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return translate(s.logger, op+"：开启事务", err)
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	if err := fn(s.repo.WithTx(tx)); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return translate(s.logger, op+"：提交事务", err)
		}
	}
	return nil
}

func (s *lifecycleService) lockProject(ctx context.Context, tx *repository.Repository, id string) (*model.Project, error) {
	p, err := tx.Project.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ProjectNotFound(id)
		}
		return nil, translate(s.logger, "锁定项目", err)
	}
	return p, nil
}

func (s *lifecycleService) loadProject(ctx context.Context, id string) (*model.Project, error) {
	p, err := s.repo.Project.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ProjectNotFound(id)
		}
		return nil, translate(s.logger, "查询项目", err)
	}
	return p, nil
}

// applyStatus 写入新状态（乐观锁）并追加审计记录
func (s *lifecycleService) applyStatus(
	ctx context.Context,
	tx *repository.Repository,
	p *model.Project,
	ev lifecycle.Event,
	to lifecycle.Status,
	actorID, justification string,
	requestID *string,
	meta map[string]any,
) error {
	from := p.Status
	if err := tx.Project.UpdateStatus(ctx, p, to, actorID); err != nil {
		return translate(s.logger, "更新项目状态", err)
	}

	event := &model.LifecycleEvent{
		ProjectID:         p.ProjectID,
		ArchivalRequestID: requestID,
		Event:             ev,
		FromStatus:        from,
		ToStatus:          to,
		ActorID:           actorID,
		Justification:     justification,
	}
	if len(meta) > 0 {
		b, err := json.Marshal(meta)
		if err != nil {
			return translate(s.logger, "序列化审计元数据", err)
		}
		event.Metadata = datatypes.JSON(b)
	}
	if err := tx.LifecycleEvent.Create(ctx, event); err != nil {
		return translate(s.logger, "写入生命周期审计记录", err)
	}
	return nil
}

// reject 记录业务拒绝并原样返回
func (s *lifecycleService) reject(op, callerID string, err error) error {
	logRejection(s.logger, op, callerID, err)
	return err
}

func (s *lifecycleService) projectResponse(ctx context.Context, p *model.Project, caller Caller) *dto.ProjectResponse {
	current, err := currentPhaseOf(ctx, s.repo, p.ProjectID)
	if err != nil {
		// 当前阶段仅用于展示，读取失败不影响主流程
		s.logger.Warn("推导当前阶段失败", zap.String("project_id", p.ProjectID), zap.Error(err))
		resp := toProjectResponse(p, nil, caller)
		return &resp
	}
	resp := toProjectResponse(p, &current, caller)
	return &resp
}

// canView 项目可见性：Active 公开；Deleted 仅管理员；其余状态对作者与导师 / 管理员可见
func canView(p *model.Project, caller Caller) bool {
	switch {
	case p.Status == lifecycle.StatusDeleted:
		return caller.IsAdmin()
	case p.Status.Public():
		return true
	default:
		return caller.Roles.IsStaff() || p.IsAuthor(caller.UserID)
	}
}

// ────────────────────── GetProject ──────────────────────

func (s *lifecycleService) GetProject(ctx context.Context, projectID, callerID string) (*dto.ProjectResponse, error) {
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}
	p, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !canView(p, caller) {
		return nil, ProjectNotFound(projectID)
	}
	return s.projectResponse(ctx, p, caller), nil
}

// ────────────────────── ListProjectHistory ──────────────────────

func (s *lifecycleService) ListProjectHistory(ctx context.Context, projectID, callerID string) ([]dto.LifecycleEventResponse, error) {
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}
	p, err := s.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !canView(p, caller) {
		return nil, ProjectNotFound(projectID)
	}
	if !caller.Roles.IsStaff() && !p.IsAuthor(caller.UserID) {
		return nil, s.reject("查询项目历史", callerID,
			pkgerrors.Authorization(CodeAccessDenied, "仅项目作者、导师或管理员可查看项目历史"))
	}

	events, err := s.repo.LifecycleEvent.ListByProject(ctx, projectID)
	if err != nil {
		return nil, translate(s.logger, "查询项目历史", err)
	}
	out := make([]dto.LifecycleEventResponse, 0, len(events))
	for i := range events {
		out = append(out, toLifecycleEventResponse(&events[i]))
	}
	return out, nil
}

// ────────────────────── RequestArchive ──────────────────────

func (s *lifecycleService) RequestArchive(ctx context.Context, projectID string, req *dto.JustificationRequest, callerID string) (*dto.ArchivalRequestResponse, error) {
	const op = "申请归档"
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}

	var (
		project *model.Project
		created *model.ArchivalRequest
	)
	err = s.inTx(ctx, op, func(tx *repository.Repository) error {
		p, err := s.lockProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		ledger := s.ledger.WithRepo(tx.ArchivalRequest)
		pending, err := ledger.PendingFor(ctx, projectID)
		if err != nil {
			return err
		}

		to, err := s.machine.Check(lifecycle.Attempt{
			Event:             lifecycle.EventRequestArchive,
			Current:           p.Status,
			Roles:             caller.Roles,
			IsAuthor:          p.IsAuthor(caller.UserID),
			Justification:     req.Justification,
			HasPendingRequest: pending != nil,
		})
		if err != nil {
			return err
		}

		// 先以版本号占用项目，再写申请：并发申请中只有一方能通过版本检查
		from := p.Status
		if err := tx.Project.UpdateStatus(ctx, p, to, caller.UserID); err != nil {
			return translate(s.logger, "更新项目状态", err)
		}
		created, err = ledger.Create(ctx, projectID, caller.UserID, req.Justification)
		if err != nil {
			return err
		}
		event := &model.LifecycleEvent{
			ProjectID:         projectID,
			ArchivalRequestID: &created.ArchivalRequestID,
			Event:             lifecycle.EventRequestArchive,
			FromStatus:        from,
			ToStatus:          to,
			ActorID:           caller.UserID,
			Justification:     created.Justification,
		}
		if err := tx.LifecycleEvent.Create(ctx, event); err != nil {
			return translate(s.logger, "写入生命周期审计记录", err)
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, s.reject(op, callerID, err)
	}

	s.logger.Info("归档申请已提交",
		zap.String("project_id", projectID),
		zap.String("archival_request_id", created.ArchivalRequestID),
		zap.String("requester_id", callerID),
	)

	advisorIDs := make([]string, 0, len(project.Advisors))
	for _, a := range project.Advisors {
		advisorIDs = append(advisorIDs, a.UserID)
	}
	s.emit(ctx, "archive_requested", func(ctx context.Context) error {
		return s.notifier.ArchiveRequested(ctx, ArchiveRequestedNotice{
			RequestID:     created.ArchivalRequestID,
			ProjectID:     projectID,
			ProjectTitle:  project.Title,
			RequesterID:   callerID,
			Justification: created.Justification,
			AdvisorIDs:    advisorIDs,
		})
	})

	resp := toArchivalRequestResponse(created, project.Title)
	return &resp, nil
}

// ────────────────────── ApproveArchive / DenyArchive ──────────────────────

// resolve 处理申请的公共流程
//
// 锁顺序固定为 项目 → 申请，与 AdminDelete 一致，避免死锁：
// 先无锁读取申请拿到项目 ID，锁住项目后再对申请加锁重读。
func (s *lifecycleService) resolve(
	ctx context.Context,
	op string,
	requestID string,
	caller Caller,
	ev lifecycle.Event,
	disposition lifecycle.RequestStatus,
	justification string,
) (*model.Project, *model.ArchivalRequest, error) {
	pre, err := s.ledger.Get(ctx, requestID)
	if err != nil {
		return nil, nil, err
	}

	var (
		project  *model.Project
		resolved *model.ArchivalRequest
	)
	err = s.inTx(ctx, op, func(tx *repository.Repository) error {
		p, err := s.lockProject(ctx, tx, pre.ProjectID)
		if err != nil {
			return err
		}
		ledger := s.ledger.WithRepo(tx.ArchivalRequest)
		r, err := ledger.GetForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		to, err := s.machine.Check(lifecycle.Attempt{
			Event:         ev,
			Current:       p.Status,
			Roles:         caller.Roles,
			IsAuthor:      p.IsAuthor(caller.UserID),
			Justification: justification,
			RequestStatus: r.Status,
		})
		if err != nil {
			return err
		}

		if err := ledger.Resolve(ctx, r, caller.UserID, disposition, justification); err != nil {
			return err
		}
		var reason string
		if r.ResolutionJustification != nil {
			reason = *r.ResolutionJustification
		}
		if err := s.applyStatus(ctx, tx, p, ev, to, caller.UserID, reason, &r.ArchivalRequestID, nil); err != nil {
			return err
		}
		project, resolved = p, r
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("归档申请已处理",
		zap.String("archival_request_id", requestID),
		zap.String("project_id", project.ProjectID),
		zap.String("status", string(disposition)),
		zap.String("resolver_id", caller.UserID),
	)
	s.notifyResolved(ctx, project, resolved)
	return project, resolved, nil
}

func (s *lifecycleService) ApproveArchive(ctx context.Context, requestID, callerID string) (*dto.ProjectResponse, error) {
	const op = "批准归档申请"
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}
	project, _, err := s.resolve(ctx, op, requestID, caller, lifecycle.EventApprove, lifecycle.RequestApproved, "")
	if err != nil {
		return nil, s.reject(op, callerID, err)
	}
	return s.projectResponse(ctx, project, caller), nil
}

func (s *lifecycleService) DenyArchive(ctx context.Context, requestID string, req *dto.JustificationRequest, callerID string) (*dto.ArchivalRequestResponse, error) {
	const op = "驳回归档申请"
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}
	project, resolved, err := s.resolve(ctx, op, requestID, caller, lifecycle.EventDeny, lifecycle.RequestDenied, req.Justification)
	if err != nil {
		return nil, s.reject(op, callerID, err)
	}
	resp := toArchivalRequestResponse(resolved, project.Title)
	return &resp, nil
}

// ────────────────────── AdminDeactivate / AdminDelete ──────────────────────

func (s *lifecycleService) AdminDeactivate(ctx context.Context, projectID string, req *dto.JustificationRequest, callerID string) (*dto.ProjectResponse, error) {
	const op = "管理员停用项目"
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}

	var project *model.Project
	err = s.inTx(ctx, op, func(tx *repository.Repository) error {
		p, err := s.lockProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		to, err := s.machine.Check(lifecycle.Attempt{
			Event:         lifecycle.EventAdminDeactivate,
			Current:       p.Status,
			Roles:         caller.Roles,
			IsAuthor:      p.IsAuthor(caller.UserID),
			Justification: req.Justification,
		})
		if err != nil {
			return err
		}
		if err := s.applyStatus(ctx, tx, p, lifecycle.EventAdminDeactivate, to, caller.UserID, strings.TrimSpace(req.Justification), nil, nil); err != nil {
			return err
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, s.reject(op, callerID, err)
	}

	s.logger.Info("项目已被管理员停用", zap.String("project_id", projectID), zap.String("admin_id", callerID))
	return s.projectResponse(ctx, project, caller), nil
}

// AdminDelete 删除项目（终态）
// 项目处于 PendingArchive 时，其待处理申请在同一事务内以管理员理由驳回
func (s *lifecycleService) AdminDelete(ctx context.Context, projectID string, req *dto.JustificationRequest, callerID string) (*dto.ProjectResponse, error) {
	const op = "管理员删除项目"
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}

	var (
		project    *model.Project
		autoDenied *model.ArchivalRequest
	)
	err = s.inTx(ctx, op, func(tx *repository.Repository) error {
		p, err := s.lockProject(ctx, tx, projectID)
		if err != nil {
			return err
		}
		ledger := s.ledger.WithRepo(tx.ArchivalRequest)

		to, err := s.machine.Check(lifecycle.Attempt{
			Event:         lifecycle.EventAdminDelete,
			Current:       p.Status,
			Roles:         caller.Roles,
			IsAuthor:      p.IsAuthor(caller.UserID),
			Justification: req.Justification,
		})
		if err != nil {
			return err
		}

		var (
			requestID *string
			meta      map[string]any
		)
		pending, err := ledger.PendingFor(ctx, projectID)
		if err != nil {
			return err
		}
		if pending != nil {
			locked, err := ledger.GetForUpdate(ctx, pending.ArchivalRequestID)
			if err != nil {
				return err
			}
			if err := ledger.Resolve(ctx, locked, caller.UserID, lifecycle.RequestDenied, req.Justification); err != nil {
				return err
			}
			requestID = &locked.ArchivalRequestID
			meta = map[string]any{"auto_denied_request": locked.ArchivalRequestID}
			autoDenied = locked
		}

		if err := s.applyStatus(ctx, tx, p, lifecycle.EventAdminDelete, to, caller.UserID, strings.TrimSpace(req.Justification), requestID, meta); err != nil {
			return err
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, s.reject(op, callerID, err)
	}

	s.logger.Info("项目已被管理员删除", zap.String("project_id", projectID), zap.String("admin_id", callerID))
	if autoDenied != nil {
		s.notifyResolved(ctx, project, autoDenied)
	}
	return s.projectResponse(ctx, project, caller), nil
}

// ────────────────────── 列表与查询 ──────────────────────

// ListDeactivatedProjects 已停用（Archived）项目列表
// scope=mine 为调用者参与的项目；scope=all 需要导师或管理员；include_deleted 仅管理员
func (s *lifecycleService) ListDeactivatedProjects(ctx context.Context, q *dto.DeactivatedProjectsQuery, callerID string) ([]dto.ProjectResponse, error) {
	const op = "查询已停用项目"
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}

	scope := Scope(q.Scope)
	if scope == "" {
		scope = ScopeMine
		if caller.Roles.IsStaff() {
			scope = ScopeAll
		}
	}

	filter := repository.ProjectListFilter{Statuses: []lifecycle.Status{lifecycle.StatusArchived}}
	switch scope {
	case ScopeMine:
		filter.AuthorID = caller.UserID
	case ScopeAll:
		if !caller.Roles.IsStaff() {
			return nil, s.reject(op, callerID, pkgerrors.Authorization(lifecycle.CodeRoleRequired,
				"查看全部已停用项目需要导师或管理员角色").
				WithMeta("required_roles", []string{string(lifecycle.RoleAdvisor), string(lifecycle.RoleAdmin)}))
		}
	default:
		return nil, s.reject(op, callerID, pkgerrors.Validation(CodeInvalidScope, "scope",
			fmt.Sprintf("不支持的范围 %q（可选 mine / all）", q.Scope)))
	}
	if q.IncludeDeleted {
		if !caller.IsAdmin() {
			return nil, s.reject(op, callerID, pkgerrors.Authorization(lifecycle.CodeRoleRequired,
				"查看已删除项目需要管理员角色").
				WithMeta("required_roles", []string{string(lifecycle.RoleAdmin)}))
		}
		filter.Statuses = append(filter.Statuses, lifecycle.StatusDeleted)
	}

	projects, err := s.repo.Project.List(ctx, filter)
	if err != nil {
		return nil, translate(s.logger, op, err)
	}
	out := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, toProjectResponse(&projects[i], nil, caller))
	}
	return out, nil
}

func (s *lifecycleService) ListMyArchivalRequests(ctx context.Context, callerID string) ([]dto.ArchivalRequestResponse, error) {
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}
	reqs, err := s.ledger.ListByStatus(ctx, "", ScopeMine, "", caller)
	if err != nil {
		return nil, err
	}
	return toArchivalRequestResponses(reqs), nil
}

func (s *lifecycleService) ListArchivalRequests(ctx context.Context, q *dto.ArchivalRequestListQuery, callerID string) ([]dto.ArchivalRequestResponse, error) {
	const op = "查询归档申请列表"
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}

	status := lifecycle.RequestStatus(q.Status)
	if status != "" && !status.Valid() {
		return nil, s.reject(op, callerID, pkgerrors.Validation(CodeInvalidScope, "status",
			fmt.Sprintf("不支持的申请状态 %q", q.Status)))
	}
	scope, err := ParseScope(q.Scope, caller.Roles)
	if err != nil {
		return nil, s.reject(op, callerID, err)
	}
	reqs, err := s.ledger.ListByStatus(ctx, status, scope, q.ProjectID, caller)
	if err != nil {
		return nil, s.reject(op, callerID, err)
	}
	return toArchivalRequestResponses(reqs), nil
}

func (s *lifecycleService) ListPendingArchivalRequests(ctx context.Context, callerID string) ([]dto.ArchivalRequestResponse, error) {
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.Roles.IsStaff() {
		return nil, s.reject("查询待处理申请", callerID, pkgerrors.Authorization(lifecycle.CodeRoleRequired,
			"查看待处理申请需要导师或管理员角色").
			WithMeta("required_roles", []string{string(lifecycle.RoleAdvisor), string(lifecycle.RoleAdmin)}))
	}
	reqs, err := s.ledger.ListPendingForAdvisor(ctx)
	if err != nil {
		return nil, err
	}
	return toArchivalRequestResponses(reqs), nil
}

// GetArchivalRequest 申请详情：申请人、项目作者、导师与管理员可见
func (s *lifecycleService) GetArchivalRequest(ctx context.Context, requestID, callerID string) (*dto.ArchivalRequestResponse, error) {
	caller, err := resolveCaller(ctx, s.roles, callerID)
	if err != nil {
		return nil, err
	}
	r, err := s.ledger.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	p, err := s.loadProject(ctx, r.ProjectID)
	if err != nil {
		return nil, err
	}
	if r.RequesterID != caller.UserID && !caller.Roles.IsStaff() && !p.IsAuthor(caller.UserID) {
		return nil, s.reject("查询归档申请", callerID,
			pkgerrors.Authorization(CodeAccessDenied, "无权查看该归档申请"))
	}
	resp := toArchivalRequestResponse(r, p.Title)
	return &resp, nil
}

// ────────────────────── 通知 ──────────────────────

// emit 提交后发送通知：脱离请求取消信号，失败只记录日志
func (s *lifecycleService) emit(ctx context.Context, kind string, send func(ctx context.Context) error) {
	if err := send(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warn("发送通知失败", zap.String("type", kind), zap.Error(err))
	}
}

func (s *lifecycleService) notifyResolved(ctx context.Context, p *model.Project, r *model.ArchivalRequest) {
	notice := ArchiveResolvedNotice{
		RequestID:    r.ArchivalRequestID,
		ProjectID:    p.ProjectID,
		ProjectTitle: p.Title,
		RequesterID:  r.RequesterID,
		Status:       r.Status,
	}
	if r.ResolverID != nil {
		notice.ResolverID = *r.ResolverID
	}
	if r.ResolutionJustification != nil {
		notice.Justification = *r.ResolutionJustification
	}
	s.emit(ctx, "archive_resolved", func(ctx context.Context) error {
		return s.notifier.ArchiveResolved(ctx, notice)
	})
}
