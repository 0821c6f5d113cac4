package model

import (
	"time"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
)

// ArchivalRequest 归档申请表，对应 archival_requests
// 只追加不删除：处理后仍作为审计记录保留
type ArchivalRequest struct {
	ArchivalRequestID       string                  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"     json:"archival_request_id"`
	ProjectID               string                  `gorm:"type:uuid;not null;index"                           json:"project_id"`
	RequesterID             string                  `gorm:"type:uuid;not null;index"                           json:"requester_id"`
	Justification           string                  `gorm:"type:text;not null"                                 json:"justification"`
	Status                  lifecycle.RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index"  json:"status"`
	ResolverID              *string                 `gorm:"type:uuid"                                          json:"resolver_id,omitempty"`
	ResolutionJustification *string                 `gorm:"type:text"                                          json:"resolution_justification,omitempty"`
	ResolvedAt              *time.Time              `json:"resolved_at,omitempty"`
	VersionedModel

	// 关联
	Project *Project `gorm:"foreignKey:ProjectID;references:ProjectID" json:"project,omitempty"`
}

// TableName 指定表名
func (ArchivalRequest) TableName() string { return "archival_requests" }
