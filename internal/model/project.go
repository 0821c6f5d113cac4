package model

import (
	"errors"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
)

// ErrLeaderInvariant 作者列表必须非空且恰好一名负责人
var ErrLeaderInvariant = errors.New("项目必须恰好有一名负责人作者")

// Project 项目表，对应 projects
type Project struct {
	ProjectID   string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"    json:"project_id"`
	Title       string           `gorm:"type:varchar(200);not null"                        json:"title"`
	Description string           `gorm:"type:text"                                         json:"description"`
	Status      lifecycle.Status `gorm:"type:varchar(20);not null;default:'active';index"  json:"status"`
	VersionedModel

	// 关联
	Authors  []ProjectAuthor  `gorm:"foreignKey:ProjectID;references:ProjectID" json:"authors,omitempty"`
	Advisors []ProjectAdvisor `gorm:"foreignKey:ProjectID;references:ProjectID" json:"advisors,omitempty"`
}

// TableName 指定表名
func (Project) TableName() string { return "projects" }

// IsAuthor 判断用户是否为项目作者（含负责人）
func (p *Project) IsAuthor(userID string) bool {
	for _, a := range p.Authors {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// IsAdvisor 判断用户是否为项目指定导师
func (p *Project) IsAdvisor(userID string) bool {
	for _, a := range p.Advisors {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// Leader 返回负责人作者
func (p *Project) Leader() (*ProjectAuthor, bool) {
	for i := range p.Authors {
		if p.Authors[i].IsLeader {
			return &p.Authors[i], true
		}
	}
	return nil, false
}

// CheckAuthors 校验作者集合：非空、无重复、恰好一名负责人
func (p *Project) CheckAuthors() error {
	if len(p.Authors) == 0 {
		return ErrLeaderInvariant
	}
	leaders := 0
	seen := make(map[string]bool, len(p.Authors))
	for _, a := range p.Authors {
		if seen[a.UserID] {
			return errors.New("项目作者重复")
		}
		seen[a.UserID] = true
		if a.IsLeader {
			leaders++
		}
	}
	if leaders != 1 {
		return ErrLeaderInvariant
	}
	return nil
}

// ProjectAuthor 项目作者表，对应 project_authors（有序，恰好一名负责人）
type ProjectAuthor struct {
	ProjectID string `gorm:"type:uuid;primaryKey"   json:"project_id"`
	UserID    string `gorm:"type:uuid;primaryKey"   json:"user_id"`
	IsLeader  bool   `gorm:"not null;default:false" json:"is_leader"`
	Position  int    `gorm:"not null;default:0"     json:"position"`
}

// TableName 指定表名
func (ProjectAuthor) TableName() string { return "project_authors" }

// ProjectAdvisor 项目导师表，对应 project_advisors
type ProjectAdvisor struct {
	ProjectID string `gorm:"type:uuid;primaryKey" json:"project_id"`
	UserID    string `gorm:"type:uuid;primaryKey" json:"user_id"`
}

// TableName 指定表名
func (ProjectAdvisor) TableName() string { return "project_advisors" }
