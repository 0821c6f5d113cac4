package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Project         ProjectRepository
	ArchivalRequest ArchivalRequestRepository
	Phase           PhaseRepository
	LifecycleEvent  LifecycleEventRepository
	UserRole        UserRoleRepository
	Notification    NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:              db,
		Project:         NewProjectRepo(db),
		ArchivalRequest: NewArchivalRequestRepo(db),
		Phase:           NewPhaseRepo(db),
		LifecycleEvent:  NewLifecycleEventRepo(db),
		UserRole:        NewUserRoleRepo(db),
		Notification:    NewNotificationRepo(db),
	}
}

// BeginTx 开启事务
// db 为 nil 时（单元测试注入 mock）返回 nil 事务，调用方需判空
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	if r.db == nil {
		return nil, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return tx, nil
}

// WithTx 返回绑定到事务连接的 Repository 副本
// tx 为 nil 时返回自身，mock 实现保持不变
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}
