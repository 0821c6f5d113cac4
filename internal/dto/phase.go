package dto

// ── 阶段模块 DTO ──

// AttachmentInput 阶段附件引用（文件已由存储服务上传）
type AttachmentInput struct {
	Name     string `json:"name"      binding:"required,max=255"`
	URL      string `json:"url"       binding:"required,url"`
	MimeType string `json:"mime_type" binding:"omitempty,max=100"`
	Size     int64  `json:"size"      binding:"omitempty,min=0"`
}

// RecordPhaseContentRequest 记录阶段内容（整体覆盖）
type RecordPhaseContentRequest struct {
	Description *string           `json:"description" binding:"omitempty,max=10000"`
	Attachments []AttachmentInput `json:"attachments" binding:"omitempty,max=50,dive"`
}

// SetPhaseStatusRequest 设置阶段状态
type SetPhaseStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed"`
}

// PhaseRefResponse 阶段标识
type PhaseRefResponse struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Label  string `json:"label"`
}

// PhaseResponse 单个阶段详情
type PhaseResponse struct {
	PhaseRefResponse
	Status      string            `json:"status"`
	Description string            `json:"description"`
	Attachments []AttachmentInput `json:"attachments"`
	HasContent  bool              `json:"has_content"`
	UpdatedAt   string            `json:"updated_at,omitempty"`
}

// ProjectPhasesResponse 项目全部阶段
type ProjectPhasesResponse struct {
	ProjectID    string           `json:"project_id"`
	CurrentPhase PhaseRefResponse `json:"current_phase"`
	Phases       []PhaseResponse  `json:"phases"`
}
