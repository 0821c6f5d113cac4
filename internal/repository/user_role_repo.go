package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ElissonNadson/Senai-Vitrine-de-projetos-sub003/internal/model"
)

// UserRoleRepository 用户角色数据访问接口
type UserRoleRepository interface {
	// RolesOf 返回用户持有的全部角色；用户不存在时返回空切片
	RolesOf(ctx context.Context, userID string) ([]string, error)
	ListUserIDsByRole(ctx context.Context, role string) ([]string, error)
	Grant(ctx context.Context, userID, role, actorID string) error
}

type userRoleRepo struct {
	db *gorm.DB
}

// NewUserRoleRepo 创建 UserRoleRepository 实例
func NewUserRoleRepo(db *gorm.DB) UserRoleRepository {
	return &userRoleRepo{db: db}
}

func (r *userRoleRepo) RolesOf(ctx context.Context, userID string) ([]string, error) {
	var roles []string
	err := r.db.WithContext(ctx).
		Model(&model.UserRole{}).
		Where("user_id = ?", userID).
		Pluck("role", &roles).Error
	return roles, err
}

func (r *userRoleRepo) ListUserIDsByRole(ctx context.Context, role string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.UserRole{}).
		Where("role = ?", role).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *userRoleRepo) Grant(ctx context.Context, userID, role, actorID string) error {
	row := &model.UserRole{UserID: userID, Role: role}
	row.CreatedBy = &actorID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
}
