package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/phase"
)

// Attachment 阶段附件引用（文件本身由外部存储服务保存）
type Attachment struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type,omitempty"`
	Size     int64  `json:"size,omitempty"`
}

// ProjectPhase 项目阶段表，对应 project_phases（每个项目 × 阶段一行）
type ProjectPhase struct {
	ProjectID   string         `gorm:"type:uuid;primaryKey"                          json:"project_id"`
	Phase       phase.Phase    `gorm:"primaryKey;autoIncrement:false"                json:"phase"`
	Status      phase.Status   `gorm:"type:varchar(20);not null;default:'pending'"   json:"status"`
	Description string         `gorm:"type:text"                                     json:"description"`
	Attachments datatypes.JSON `gorm:"type:jsonb;not null;default:'[]'"              json:"attachments"`
	UpdatedAt   time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"updated_at"`
	UpdatedBy   *string        `gorm:"type:uuid"                                     json:"updated_by,omitempty"`
}

// TableName 指定表名
func (ProjectPhase) TableName() string { return "project_phases" }

// AttachmentList 解析附件列表，解析失败视为空
func (p *ProjectPhase) AttachmentList() []Attachment {
	if len(p.Attachments) == 0 {
		return nil
	}
	var list []Attachment
	if err := json.Unmarshal(p.Attachments, &list); err != nil {
		return nil
	}
	return list
}

// SetAttachments 序列化附件列表
func (p *ProjectPhase) SetAttachments(list []Attachment) error {
	if list == nil {
		list = []Attachment{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	p.Attachments = datatypes.JSON(b)
	return nil
}

// Content 转换为阶段推导所需的内容摘要
func (p *ProjectPhase) Content() phase.Content {
	return phase.Content{
		Phase:           p.Phase,
		Description:     p.Description,
		AttachmentCount: len(p.AttachmentList()),
	}
}
