package phase

import (
	"strconv"
	"strings"
)

// Phase 项目开发阶段（固定四个，有序）
type Phase int

const (
	Ideation       Phase = 1
	Modeling       Phase = 2
	Prototyping    Phase = 3
	Implementation Phase = 4
)

// All 按顺序返回全部阶段
func All() []Phase {
	return []Phase{Ideation, Modeling, Prototyping, Implementation}
}

// Valid 是否为合法阶段
func (p Phase) Valid() bool { return p >= Ideation && p <= Implementation }

// Name 英文标识
func (p Phase) Name() string {
	switch p {
	case Ideation:
		return "ideation"
	case Modeling:
		return "modeling"
	case Prototyping:
		return "prototyping"
	case Implementation:
		return "implementation"
	}
	return "unknown"
}

// Label 页面展示名（葡语）
func (p Phase) Label() string {
	switch p {
	case Ideation:
		return "Ideação"
	case Modeling:
		return "Modelagem"
	case Prototyping:
		return "Prototipagem"
	case Implementation:
		return "Implementação"
	}
	return ""
}

func (p Phase) String() string { return p.Name() }

var aliases = map[string]Phase{
	"ideation":       Ideation,
	"ideacao":        Ideation,
	"ideação":        Ideation,
	"modeling":       Modeling,
	"modelagem":      Modeling,
	"prototyping":    Prototyping,
	"prototipagem":   Prototyping,
	"prototipacao":   Prototyping,
	"implementation": Implementation,
	"implementacao":  Implementation,
	"implementação":  Implementation,
}

// Parse 解析阶段：支持序号 1..4、英文名与葡语名（大小写不敏感）
func Parse(s string) (Phase, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		p := Phase(n)
		return p, p.Valid()
	}
	p, ok := aliases[s]
	return p, ok
}

// Status 阶段状态（显式设置，与内容是否存在无关）
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// ParseStatus 解析阶段状态
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusInProgress:
		return StatusInProgress, true
	case StatusCompleted:
		return StatusCompleted, true
	}
	return "", false
}

// Content 某阶段已记录的内容
type Content struct {
	Phase           Phase
	Description     string
	AttachmentCount int
}

// HasContent 描述非空或至少一个附件
func (c Content) HasContent() bool {
	return strings.TrimSpace(c.Description) != "" || c.AttachmentCount > 0
}

// Current 推导展示用的"当前阶段"：有内容的最高阶段，全部为空时为 Ideation
// 不校验前置阶段是否完成
func Current(contents []Content) Phase {
	current := Ideation
	for _, c := range contents {
		if c.Phase.Valid() && c.HasContent() && c.Phase > current {
			current = c.Phase
		}
	}
	return current
}
