package service

import (
	"encoding/json"
	"time"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/dto"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/model"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/phase"
)

// ── 模型 → 响应 转换 ──

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func toPhaseRef(p phase.Phase) dto.PhaseRefResponse {
	return dto.PhaseRefResponse{Number: int(p), Name: p.Name(), Label: p.Label()}
}

func toProjectResponse(p *model.Project, current *phase.Phase, caller Caller) dto.ProjectResponse {
	resp := dto.ProjectResponse{
		ID:            p.ProjectID,
		Title:         p.Title,
		Description:   p.Description,
		Status:        string(p.Status),
		Authors:       make([]dto.ProjectMemberResponse, 0, len(p.Authors)),
		Advisors:      make([]dto.ProjectMemberResponse, 0, len(p.Advisors)),
		AllowedEvents: []string{},
		Version:       p.Version,
		CreatedAt:     formatTime(p.CreatedAt),
		UpdatedAt:     formatTime(p.UpdatedAt),
	}
	for _, a := range p.Authors {
		resp.Authors = append(resp.Authors, dto.ProjectMemberResponse{UserID: a.UserID, IsLeader: a.IsLeader})
	}
	for _, a := range p.Advisors {
		resp.Advisors = append(resp.Advisors, dto.ProjectMemberResponse{UserID: a.UserID})
	}
	if current != nil {
		ref := toPhaseRef(*current)
		resp.CurrentPhase = &ref
	}
	for _, ev := range lifecycle.AllowedEvents(p.Status, caller.Roles, p.IsAuthor(caller.UserID)) {
		resp.AllowedEvents = append(resp.AllowedEvents, string(ev))
	}
	return resp
}

func toArchivalRequestResponse(r *model.ArchivalRequest, projectTitle string) dto.ArchivalRequestResponse {
	resp := dto.ArchivalRequestResponse{
		ID:                      r.ArchivalRequestID,
		ProjectID:               r.ProjectID,
		ProjectTitle:            projectTitle,
		RequesterID:             r.RequesterID,
		Justification:           r.Justification,
		Status:                  string(r.Status),
		ResolverID:              r.ResolverID,
		ResolutionJustification: r.ResolutionJustification,
		CreatedAt:               formatTime(r.CreatedAt),
	}
	if resp.ProjectTitle == "" && r.Project != nil {
		resp.ProjectTitle = r.Project.Title
	}
	if r.ResolvedAt != nil {
		s := formatTime(*r.ResolvedAt)
		resp.ResolvedAt = &s
	}
	return resp
}

func toArchivalRequestResponses(reqs []model.ArchivalRequest) []dto.ArchivalRequestResponse {
	out := make([]dto.ArchivalRequestResponse, 0, len(reqs))
	for i := range reqs {
		out = append(out, toArchivalRequestResponse(&reqs[i], ""))
	}
	return out
}

func toLifecycleEventResponse(e *model.LifecycleEvent) dto.LifecycleEventResponse {
	resp := dto.LifecycleEventResponse{
		ID:                e.LifecycleEventID,
		ProjectID:         e.ProjectID,
		ArchivalRequestID: e.ArchivalRequestID,
		Event:             string(e.Event),
		FromStatus:        string(e.FromStatus),
		ToStatus:          string(e.ToStatus),
		ActorID:           e.ActorID,
		Justification:     e.Justification,
		CreatedAt:         formatTime(e.CreatedAt),
	}
	if len(e.Metadata) > 0 {
		var meta map[string]any
		if err := json.Unmarshal(e.Metadata, &meta); err == nil {
			resp.Metadata = meta
		}
	}
	return resp
}
