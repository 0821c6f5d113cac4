package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/lifecycle"
	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/model"
	pkgerrors "github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/pkg/errors"
)

// ProjectListFilter 项目列表过滤条件
type ProjectListFilter struct {
	Statuses []lifecycle.Status
	AuthorID string // 非空时只返回该用户参与的项目
}

// ProjectRepository 项目数据访问接口
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	// GetByIDForUpdate 加行锁读取，必须在事务内调用
	GetByIDForUpdate(ctx context.Context, id string) (*model.Project, error)
	// UpdateStatus 乐观锁更新状态，版本不匹配返回 ErrOptimisticLock
	UpdateStatus(ctx context.Context, project *model.Project, status lifecycle.Status, actorID string) error
	List(ctx context.Context, filter ProjectListFilter) ([]model.Project, error)
}

// projectRepo ProjectRepository 的 GORM 实现
type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepo 创建 ProjectRepository 实例
func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, project *model.Project) error {
	if err := project.CheckAuthors(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Preload("Authors", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Advisors").
		Where("project_id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("project_id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	// 关联不加锁，单独加载
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", id).
		Order("position ASC").
		Find(&project.Authors).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", id).
		Find(&project.Advisors).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) UpdateStatus(ctx context.Context, project *model.Project, status lifecycle.Status, actorID string) error {
	oldVersion := project.Version
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("project_id = ? AND version = ?", project.ProjectID, oldVersion).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_by": actorID,
			"updated_at": now,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	project.Status = status
	project.UpdatedBy = &actorID
	project.UpdatedAt = now
	project.Version = oldVersion + 1
	return nil
}

func (r *projectRepo) List(ctx context.Context, filter ProjectListFilter) ([]model.Project, error) {
	var projects []model.Project
	db := r.db.WithContext(ctx).
		Preload("Authors", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Advisors")
	if len(filter.Statuses) > 0 {
		db = db.Where("status IN ?", filter.Statuses)
	}
	if filter.AuthorID != "" {
		db = db.Where("project_id IN (?)",
			r.db.Model(&model.ProjectAuthor{}).Select("project_id").Where("user_id = ?", filter.AuthorID))
	}
	err := db.Order("updated_at DESC").Find(&projects).Error
	return projects, err
}
