package repository

import (
	"juntos_server/internal/model"

	"gorm.io/gorm"
)

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a RoleRepository backed by gorm.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) FindByUserUuid(userUuid string) ([]model.UserRole, error) {
	var roles []model.UserRole
	if err := r.db.Where("user_uuid = ?", userUuid).Find(&roles).Error; err != nil {
		return nil, wrapDBErrorf(err, "find roles user_uuid=%s", userUuid)
	}
	return roles, nil
}

// Grant inserts a role assignment. Granting a role the identity already
// holds is a no-op, not an error.
func (r *roleRepository) Grant(userUuid, role string) error {
	err := r.db.Create(&model.UserRole{UserUuid: userUuid, Role: role}).Error
	if err != nil && IsDuplicateKey(err) {
		return nil
	}
	return wrapDBErrorf(err, "grant role %s user_uuid=%s", role, userUuid)
}

func (r *roleRepository) Revoke(userUuid, role string) error {
	if err := r.db.Where("user_uuid = ? AND role = ?", userUuid, role).
		Delete(&model.UserRole{}).Error; err != nil {
		return wrapDBErrorf(err, "revoke role %s user_uuid=%s", role, userUuid)
	}
	return nil
}

func (r *roleRepository) HasRole(userUuid, role string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.UserRole{}).
		Where("user_uuid = ? AND role = ?", userUuid, role).
		Count(&count).Error; err != nil {
		return false, wrapDBErrorf(err, "check role %s user_uuid=%s", role, userUuid)
	}
	return count > 0, nil
}
