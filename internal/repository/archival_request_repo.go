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

// ArchivalRequestFilter 归档申请列表过滤条件
type ArchivalRequestFilter struct {
	Status      lifecycle.RequestStatus // 为空表示全部
	RequesterID string
	ProjectID   string
	AdvisorID   string // 非空时只返回该导师指导项目的申请
}

// ArchivalRequestRepository 归档申请数据访问接口
type ArchivalRequestRepository interface {
	// Create 新建待处理申请；同一项目已有待处理申请时返回 gorm.ErrDuplicatedKey
	Create(ctx context.Context, req *model.ArchivalRequest) error
	GetByID(ctx context.Context, id string) (*model.ArchivalRequest, error)
	// GetByIDForUpdate 加行锁读取，必须在事务内调用
	GetByIDForUpdate(ctx context.Context, id string) (*model.ArchivalRequest, error)
	GetPendingByProject(ctx context.Context, projectID string) (*model.ArchivalRequest, error)
	// Resolve 仅当申请仍为 pending 且版本一致时写入处理结果，否则返回 ErrOptimisticLock
	Resolve(ctx context.Context, req *model.ArchivalRequest, status lifecycle.RequestStatus, resolverID string, justification *string, at time.Time) error
	List(ctx context.Context, filter ArchivalRequestFilter) ([]model.ArchivalRequest, error)
}

// archivalRequestRepo ArchivalRequestRepository 的 GORM 实现
type archivalRequestRepo struct {
	db *gorm.DB
}

// NewArchivalRequestRepo 创建 ArchivalRequestRepository 实例
func NewArchivalRequestRepo(db *gorm.DB) ArchivalRequestRepository {
	return &archivalRequestRepo{db: db}
}

func (r *archivalRequestRepo) Create(ctx context.Context, req *model.ArchivalRequest) error {
	return r.db.WithContext(ctx).Omit("Project").Create(req).Error
}

func (r *archivalRequestRepo) GetByID(ctx context.Context, id string) (*model.ArchivalRequest, error) {
	var req model.ArchivalRequest
	err := r.db.WithContext(ctx).
		Preload("Project").
		Where("archival_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *archivalRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.ArchivalRequest, error) {
	var req model.ArchivalRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("archival_request_id = ?", id).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *archivalRequestRepo) GetPendingByProject(ctx context.Context, projectID string) (*model.ArchivalRequest, error) {
	var req model.ArchivalRequest
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND status = ?", projectID, lifecycle.RequestPending).
		First(&req).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *archivalRequestRepo) Resolve(ctx context.Context, req *model.ArchivalRequest, status lifecycle.RequestStatus, resolverID string, justification *string, at time.Time) error {
	oldVersion := req.Version
	result := r.db.WithContext(ctx).
		Model(&model.ArchivalRequest{}).
		Where("archival_request_id = ? AND status = ? AND version = ?",
			req.ArchivalRequestID, lifecycle.RequestPending, oldVersion).
		Updates(map[string]interface{}{
			"status":                   status,
			"resolver_id":              resolverID,
			"resolution_justification": justification,
			"resolved_at":              at,
			"updated_by":               resolverID,
			"updated_at":               at,
			"version":                  oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	req.Status = status
	req.ResolverID = &resolverID
	req.ResolutionJustification = justification
	req.ResolvedAt = &at
	req.UpdatedBy = &resolverID
	req.Version = oldVersion + 1
	return nil
}

func (r *archivalRequestRepo) List(ctx context.Context, filter ArchivalRequestFilter) ([]model.ArchivalRequest, error) {
	var reqs []model.ArchivalRequest
	db := r.db.WithContext(ctx).Preload("Project")
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.RequesterID != "" {
		db = db.Where("requester_id = ?", filter.RequesterID)
	}
	if filter.ProjectID != "" {
		db = db.Where("project_id = ?", filter.ProjectID)
	}
	if filter.AdvisorID != "" {
		db = db.Where("project_id IN (?)",
			r.db.Model(&model.ProjectAdvisor{}).Select("project_id").Where("user_id = ?", filter.AdvisorID))
	}
	err := db.Order("created_at DESC").Find(&reqs).Error
	return reqs, err
}
