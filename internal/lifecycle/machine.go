package lifecycle

import (
	"fmt"
	"strings"
	"unicode/utf8"

	pkgerrors "github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/errors"
)

// ── 生命周期业务码 ──

const (
	CodeJustificationTooShort = 17001
	CodeNotAuthor             = 17002
	CodeRoleRequired          = 17003
	CodePendingRequestExists  = 17004
	CodeTransitionNotAllowed  = 17005
	CodeProjectDeleted        = 17006
	CodeRequestResolved       = 17007
	CodeUnknownEvent          = 17008
)

// Policy 理由最小长度策略
// 学生发起申请要求更充分的说明（20），审核与管理员处置只需 10
type Policy struct {
	RequestMinLength    int
	ResolutionMinLength int
}

// DefaultPolicy 默认长度策略
func DefaultPolicy() Policy {
	return Policy{RequestMinLength: 20, ResolutionMinLength: 10}
}

type justificationKind int

const (
	justificationNone justificationKind = iota
	justificationRequest
	justificationResolution
)

// rule 迁移表中的一行
type rule struct {
	from          []Status
	to            Status
	authorOnly    bool
	roles         RoleSet
	justification justificationKind
	needsRequest  bool
}

// transitions 迁移表：状态机的唯一事实来源
var transitions = map[Event]rule{
	EventRequestArchive: {
		from:          []Status{StatusActive},
		to:            StatusPendingArchive,
		authorOnly:    true,
		justification: justificationRequest,
	},
	EventApprove: {
		from:         []Status{StatusPendingArchive},
		to:           StatusArchived,
		roles:        NewRoleSet(RoleAdvisor, RoleAdmin),
		needsRequest: true,
	},
	EventDeny: {
		from:          []Status{StatusPendingArchive},
		to:            StatusActive,
		roles:         NewRoleSet(RoleAdvisor, RoleAdmin),
		justification: justificationResolution,
		needsRequest:  true,
	},
	EventAdminDeactivate: {
		from:          []Status{StatusActive, StatusArchived},
		to:            StatusArchived,
		roles:         NewRoleSet(RoleAdmin),
		justification: justificationResolution,
	},
	EventAdminDelete: {
		from:          []Status{StatusActive, StatusArchived, StatusPendingArchive},
		to:            StatusDeleted,
		roles:         NewRoleSet(RoleAdmin),
		justification: justificationResolution,
	},
}

// Attempt 一次迁移尝试的全部输入
type Attempt struct {
	Event         Event
	Current       Status
	Roles         RoleSet
	IsAuthor      bool
	Justification string
	// HasPendingRequest 项目当前是否存在待处理申请（RequestArchive 判重）
	HasPendingRequest bool
	// RequestStatus 被处理申请的当前状态（Approve / Deny）
	RequestStatus RequestStatus
}

// Machine 生命周期状态机
type Machine struct {
	policy Policy
}

// NewMachine 创建状态机
func NewMachine(policy Policy) *Machine {
	if policy.RequestMinLength <= 0 {
		policy.RequestMinLength = DefaultPolicy().RequestMinLength
	}
	if policy.ResolutionMinLength <= 0 {
		policy.ResolutionMinLength = DefaultPolicy().ResolutionMinLength
	}
	return &Machine{policy: policy}
}

// Policy 返回当前长度策略
func (m *Machine) Policy() Policy { return m.policy }

// Check 校验一次迁移尝试，成功时返回目标状态
//
// 判定顺序：终态 → 重复申请 → 身份/角色 → 申请状态 → 源状态 → 理由长度。
// Deleted 项目对任何事件一律返回 InvalidState。
func (m *Machine) Check(a Attempt) (Status, error) {
	r, ok := transitions[a.Event]
	if !ok {
		return "", pkgerrors.Validation(CodeUnknownEvent, "event", fmt.Sprintf("未知的生命周期事件 %q", a.Event))
	}

	if a.Current.Terminal() {
		return "", pkgerrors.InvalidState(CodeProjectDeleted, "项目已删除，不允许任何状态变更").
			WithMeta("status", string(a.Current))
	}

	// 待处理申请对任何调用者都报告为冲突，调用方只能等待审核结果
	if a.Event == EventRequestArchive && (a.HasPendingRequest || a.Current == StatusPendingArchive) {
		return "", pkgerrors.Conflict(CodePendingRequestExists, "该项目已有待处理的归档申请，请等待审核结果")
	}

	if r.authorOnly && !a.IsAuthor {
		return "", pkgerrors.Authorization(CodeNotAuthor, "仅项目作者可以申请归档")
	}
	if r.roles != 0 && !a.Roles.Intersects(r.roles) {
		return "", pkgerrors.Authorization(CodeRoleRequired,
			fmt.Sprintf("该操作需要以下角色之一: %s", r.roles)).
			WithMeta("required_roles", r.roles.Strings())
	}

	if r.needsRequest && a.RequestStatus.Resolved() {
		return "", pkgerrors.InvalidState(CodeRequestResolved,
			fmt.Sprintf("归档申请已处理（%s），不可重复处理", a.RequestStatus)).
			WithMeta("request_status", string(a.RequestStatus))
	}

	if !containsStatus(r.from, a.Current) {
		return "", pkgerrors.InvalidState(CodeTransitionNotAllowed,
			fmt.Sprintf("项目当前状态为 %s，不允许执行 %s", a.Current, a.Event)).
			WithMeta("status", string(a.Current)).
			WithMeta("allowed_from", statusStrings(r.from))
	}

	if err := m.checkJustification(r.justification, a.Justification); err != nil {
		return "", err
	}

	return r.to, nil
}

// ValidateRequestJustification 校验学生申请理由（≥ RequestMinLength）
func (m *Machine) ValidateRequestJustification(text string) error {
	return m.checkJustification(justificationRequest, text)
}

// ValidateResolutionJustification 校验驳回 / 管理员理由（≥ ResolutionMinLength）
func (m *Machine) ValidateResolutionJustification(text string) error {
	return m.checkJustification(justificationResolution, text)
}

func (m *Machine) checkJustification(kind justificationKind, text string) error {
	var min int
	switch kind {
	case justificationRequest:
		min = m.policy.RequestMinLength
	case justificationResolution:
		min = m.policy.ResolutionMinLength
	default:
		return nil
	}
	if JustificationLength(text) < min {
		return pkgerrors.Validation(CodeJustificationTooShort, "justification",
			fmt.Sprintf("理由至少需要 %d 个字符", min)).
			WithMeta("min_length", min).
			WithMeta("actual_length", JustificationLength(text))
	}
	return nil
}

// JustificationLength 去除首尾空白后的字符数（按 Unicode 码点计）
func JustificationLength(text string) int {
	return utf8.RuneCountInString(strings.TrimSpace(text))
}

// AllowedEvents 返回在给定状态与角色下可发起的事件（用于前端按钮展示）
func AllowedEvents(current Status, roles RoleSet, isAuthor bool) []Event {
	var out []Event
	for _, ev := range []Event{EventRequestArchive, EventApprove, EventDeny, EventAdminDeactivate, EventAdminDelete} {
		r := transitions[ev]
		if current.Terminal() || !containsStatus(r.from, current) {
			continue
		}
		if r.authorOnly && !isAuthor {
			continue
		}
		if r.roles != 0 && !roles.Intersects(r.roles) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func containsStatus(list []Status, s Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func statusStrings(list []Status) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, string(s))
	}
	return out
}
