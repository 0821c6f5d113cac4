package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/model"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/repository"
	pkgerrors "github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/errors"
)

// Scope 归档申请列表范围
type Scope string

const (
	ScopeMine    Scope = "mine"    // 申请人为调用者
	ScopeAll     Scope = "all"     // 全部（导师 / 管理员）
	ScopePending Scope = "pending" // 全部待处理（导师 / 管理员）
	ScopeAdvised Scope = "advised" // 调用者担任指导导师的项目
)

// ParseScope 解析范围，空串按调用者角色取默认值：学生 mine，导师 / 管理员 all
func ParseScope(s string, roles lifecycle.RoleSet) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		if roles.IsStaff() {
			return ScopeAll, nil
		}
		return ScopeMine, nil
	case ScopeMine:
		return ScopeMine, nil
	case ScopeAll:
		return ScopeAll, nil
	case ScopePending:
		return ScopePending, nil
	case ScopeAdvised:
		return ScopeAdvised, nil
	}
	return "", pkgerrors.Validation(CodeInvalidScope, "scope", fmt.Sprintf("不支持的范围 %q（可选 mine / all / pending / advised）", s))
}

// ArchivalLedger 归档申请台账
//
// 只追加：申请创建后只允许一次 pending → approved / denied 的处理，记录永不删除。
// 通过 WithRepo 绑定到事务内的 Repository。
type ArchivalLedger struct {
	repo    repository.ArchivalRequestRepository
	machine *lifecycle.Machine
	logger  *zap.Logger
	now     func() time.Time
}

// NewArchivalLedger 创建台账
func NewArchivalLedger(repo repository.ArchivalRequestRepository, machine *lifecycle.Machine, logger *zap.Logger) *ArchivalLedger {
	return &ArchivalLedger{repo: repo, machine: machine, logger: logger, now: time.Now}
}

// WithRepo 返回绑定到指定 Repository（通常为事务连接）的副本
func (l *ArchivalLedger) WithRepo(repo repository.ArchivalRequestRepository) *ArchivalLedger {
	cp := *l
	cp.repo = repo
	return &cp
}

// Create 创建待处理申请
// 理由不足 RequestMinLength 返回 Validation；已有待处理申请返回 Conflict
func (l *ArchivalLedger) Create(ctx context.Context, projectID, requesterID, justification string) (*model.ArchivalRequest, error) {
	if err := l.machine.ValidateRequestJustification(justification); err != nil {
		return nil, err
	}
	req := &model.ArchivalRequest{
		ProjectID:     projectID,
		RequesterID:   requesterID,
		Justification: strings.TrimSpace(justification),
		Status:        lifecycle.RequestPending,
	}
	req.CreatedBy = &requesterID
	req.UpdatedBy = &requesterID
	if err := l.repo.Create(ctx, req); err != nil {
		return nil, translate(l.logger, "创建归档申请", err)
	}
	return req, nil
}

// Get 按 ID 查询
func (l *ArchivalLedger) Get(ctx context.Context, id string) (*model.ArchivalRequest, error) {
	req, err := l.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, RequestNotFound(id)
		}
		return nil, translate(l.logger, "查询归档申请", err)
	}
	return req, nil
}

// GetForUpdate 加锁读取（事务内）
func (l *ArchivalLedger) GetForUpdate(ctx context.Context, id string) (*model.ArchivalRequest, error) {
	req, err := l.repo.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, RequestNotFound(id)
		}
		return nil, translate(l.logger, "锁定归档申请", err)
	}
	return req, nil
}

// PendingFor 查询项目当前的待处理申请，不存在时返回 nil
func (l *ArchivalLedger) PendingFor(ctx context.Context, projectID string) (*model.ArchivalRequest, error) {
	req, err := l.repo.GetPendingByProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, translate(l.logger, "查询待处理申请", err)
	}
	return req, nil
}

// Resolve 处理申请：pending → approved / denied
//
// 非 pending 申请返回 InvalidState；驳回理由不足 ResolutionMinLength 返回 Validation；
// 批准不记录处理理由。并发处理中落败的一方得到 Conflict。
func (l *ArchivalLedger) Resolve(ctx context.Context, req *model.ArchivalRequest, resolverID string, disposition lifecycle.RequestStatus, justification string) error {
	if req.Status != lifecycle.RequestPending {
		return pkgerrors.InvalidState(lifecycle.CodeRequestResolved,
			fmt.Sprintf("归档申请已处理（%s），不可重复处理", req.Status)).
			WithMeta("request_status", string(req.Status))
	}

	var reason *string
	switch disposition {
	case lifecycle.RequestApproved:
	case lifecycle.RequestDenied:
		if err := l.machine.ValidateResolutionJustification(justification); err != nil {
			return err
		}
		trimmed := strings.TrimSpace(justification)
		reason = &trimmed
	default:
		return pkgerrors.Validation(lifecycle.CodeUnknownEvent, "disposition",
			fmt.Sprintf("不支持的处理结果 %q", disposition))
	}

	if err := l.repo.Resolve(ctx, req, disposition, resolverID, reason, l.now()); err != nil {
		return translate(l.logger, "处理归档申请", err)
	}
	return nil
}

// ListByStatus 按状态与范围查询，projectID 非空时只看该项目
// mine 对所有角色开放；all / pending / advised 仅导师与管理员
// advised 只是视图过滤，处理权限不受项目指定导师限制
func (l *ArchivalLedger) ListByStatus(ctx context.Context, status lifecycle.RequestStatus, scope Scope, projectID string, caller Caller) ([]model.ArchivalRequest, error) {
	filter := repository.ArchivalRequestFilter{Status: status, ProjectID: projectID}
	switch scope {
	case ScopeMine:
		filter.RequesterID = caller.UserID
	case ScopeAll, ScopePending, ScopeAdvised:
		if !caller.Roles.IsStaff() {
			return nil, pkgerrors.Authorization(lifecycle.CodeRoleRequired,
				fmt.Sprintf("范围 %s 需要导师或管理员角色", scope)).
				WithMeta("required_roles", []string{string(lifecycle.RoleAdvisor), string(lifecycle.RoleAdmin)})
		}
		switch scope {
		case ScopePending:
			filter.Status = lifecycle.RequestPending
		case ScopeAdvised:
			filter.AdvisorID = caller.UserID
		}
	default:
		return nil, pkgerrors.Validation(CodeInvalidScope, "scope", fmt.Sprintf("不支持的范围 %q", scope))
	}

	reqs, err := l.repo.List(ctx, filter)
	if err != nil {
		return nil, translate(l.logger, "查询归档申请列表", err)
	}
	return reqs, nil
}

// ListPendingForAdvisor 全部待处理申请
// 不按项目指定导师过滤：任何导师都可处理任何待处理申请
func (l *ArchivalLedger) ListPendingForAdvisor(ctx context.Context) ([]model.ArchivalRequest, error) {
	reqs, err := l.repo.List(ctx, repository.ArchivalRequestFilter{Status: lifecycle.RequestPending})
	if err != nil {
		return nil, translate(l.logger, "查询待处理申请列表", err)
	}
	return reqs, nil
}
