package dto

// ── 生命周期模块请求 ──

// JustificationRequest 携带理由的操作请求（申请归档 / 驳回 / 管理员停用与删除）
// 最小长度随操作不同，由业务层校验并返回具体字段错误
type JustificationRequest struct {
	Justification string `json:"justification" binding:"max=2000"`
}

// ArchivalRequestListQuery 归档申请列表查询参数
type ArchivalRequestListQuery struct {
	Status    string `form:"status"     binding:"omitempty,oneof=pending approved denied"`
	Scope     string `form:"scope"      binding:"omitempty,oneof=mine all pending advised"`
	ProjectID string `form:"project_id" binding:"omitempty,uuid"`
}

// DeactivatedProjectsQuery 已停用项目列表查询参数
type DeactivatedProjectsQuery struct {
	Scope          string `form:"scope"           binding:"omitempty,oneof=mine all"`
	IncludeDeleted bool   `form:"include_deleted"`
}

// ── 生命周期模块响应 ──

// ProjectMemberResponse 项目成员（作者 / 导师）
type ProjectMemberResponse struct {
	UserID   string `json:"user_id"`
	IsLeader bool   `json:"is_leader,omitempty"`
}

// ProjectResponse 项目快照
type ProjectResponse struct {
	ID            string                  `json:"id"`
	Title         string                  `json:"title"`
	Description   string                  `json:"description"`
	Status        string                  `json:"status"`
	Authors       []ProjectMemberResponse `json:"authors"`
	Advisors      []ProjectMemberResponse `json:"advisors"`
	CurrentPhase  *PhaseRefResponse       `json:"current_phase,omitempty"`
	AllowedEvents []string                `json:"allowed_events"`
	Version       int                     `json:"version"`
	CreatedAt     string                  `json:"created_at"`
	UpdatedAt     string                  `json:"updated_at"`
}

// ArchivalRequestResponse 归档申请
type ArchivalRequestResponse struct {
	ID                      string  `json:"id"`
	ProjectID               string  `json:"project_id"`
	ProjectTitle            string  `json:"project_title,omitempty"`
	RequesterID             string  `json:"requester_id"`
	Justification           string  `json:"justification"`
	Status                  string  `json:"status"`
	ResolverID              *string `json:"resolver_id,omitempty"`
	ResolutionJustification *string `json:"resolution_justification,omitempty"`
	CreatedAt               string  `json:"created_at"`
	ResolvedAt              *string `json:"resolved_at,omitempty"`
}

// LifecycleEventResponse 项目生命周期审计记录
type LifecycleEventResponse struct {
	ID                string         `json:"id"`
	ProjectID         string         `json:"project_id"`
	ArchivalRequestID *string        `json:"archival_request_id,omitempty"`
	Event             string         `json:"event"`
	FromStatus        string         `json:"from_status"`
	ToStatus          string         `json:"to_status"`
	ActorID           string         `json:"actor_id"`
	Justification     string         `json:"justification,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	CreatedAt         string         `json:"created_at"`
}
