package model

import (
	"time"

	"gorm.io/datatypes"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
)

// LifecycleEvent 项目生命周期审计日志，对应 lifecycle_events
// 每次被接受的状态迁移与业务写入同一事务追加一行，管理员理由在此永久保存
type LifecycleEvent struct {
	LifecycleEventID  string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"lifecycle_event_id"`
	ProjectID         string           `gorm:"type:uuid;not null;index"                       json:"project_id"`
	ArchivalRequestID *string          `gorm:"type:uuid"                                      json:"archival_request_id,omitempty"`
	Event             lifecycle.Event  `gorm:"type:varchar(30);not null"                      json:"event"`
	FromStatus        lifecycle.Status `gorm:"type:varchar(20);not null"                      json:"from_status"`
	ToStatus          lifecycle.Status `gorm:"type:varchar(20);not null"                      json:"to_status"`
	ActorID           string           `gorm:"type:uuid;not null"                             json:"actor_id"`
	Justification     string           `gorm:"type:text"                                      json:"justification,omitempty"`
	Metadata          datatypes.JSON   `gorm:"type:jsonb"                                     json:"metadata,omitempty"`
	CreatedAt         time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (LifecycleEvent) TableName() string { return "lifecycle_events" }
