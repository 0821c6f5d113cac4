package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/model"
)

// LifecycleEventRepository 生命周期审计日志数据访问接口（只追加）
type LifecycleEventRepository interface {
	Create(ctx context.Context, event *model.LifecycleEvent) error
	ListByProject(ctx context.Context, projectID string) ([]model.LifecycleEvent, error)
	ListAll(ctx context.Context) ([]model.LifecycleEvent, error)
}

type lifecycleEventRepo struct {
	db *gorm.DB
}

// NewLifecycleEventRepo 创建 LifecycleEventRepository 实例
func NewLifecycleEventRepo(db *gorm.DB) LifecycleEventRepository {
	return &lifecycleEventRepo{db: db}
}

func (r *lifecycleEventRepo) Create(ctx context.Context, event *model.LifecycleEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *lifecycleEventRepo) ListByProject(ctx context.Context, projectID string) ([]model.LifecycleEvent, error) {
	var events []model.LifecycleEvent
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

func (r *lifecycleEventRepo) ListAll(ctx context.Context) ([]model.LifecycleEvent, error) {
	var events []model.LifecycleEvent
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}
