package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/model"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/phase"
)

// PhaseRepository 项目阶段数据访问接口
type PhaseRepository interface {
	ListByProject(ctx context.Context, projectID string) ([]model.ProjectPhase, error)
	Get(ctx context.Context, projectID string, p phase.Phase) (*model.ProjectPhase, error)
	// Upsert 按 (project_id, phase) 插入或覆盖
	Upsert(ctx context.Context, row *model.ProjectPhase) error
}

type phaseRepo struct {
	db *gorm.DB
}

// NewPhaseRepo 创建 PhaseRepository 实例
func NewPhaseRepo(db *gorm.DB) PhaseRepository {
	return &phaseRepo{db: db}
}

func (r *phaseRepo) ListByProject(ctx context.Context, projectID string) ([]model.ProjectPhase, error) {
	var rows []model.ProjectPhase
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("phase ASC").
		Find(&rows).Error
	return rows, err
}

func (r *phaseRepo) Get(ctx context.Context, projectID string, p phase.Phase) (*model.ProjectPhase, error) {
	var row model.ProjectPhase
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND phase = ?", projectID, p).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *phaseRepo) Upsert(ctx context.Context, row *model.ProjectPhase) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}, {Name: "phase"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "description", "attachments", "updated_at", "updated_by"}),
		}).
		Create(row).Error
}
