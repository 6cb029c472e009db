package repository

import (
	"juntos_server/internal/model"

	"gorm.io/gorm"
)

type groupMemberRepository struct {
	db *gorm.DB
}

// NewGroupMemberRepository creates a GroupMemberRepository backed by gorm.
func NewGroupMemberRepository(db *gorm.DB) GroupMemberRepository {
	return &groupMemberRepository{db: db}
}

// FindByGroupID returns the flat membership rows of a group. No order is
// guaranteed; presentation order is the caller's concern.
func (r *groupMemberRepository) FindByGroupID(groupID uint) ([]model.GroupMember, error) {
	var members []model.GroupMember
	if err := r.db.Where("group_id = ?", groupID).Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "find members group_id=%d", groupID)
	}
	return members, nil
}

func (r *groupMemberRepository) FindByUserUuid(userUuid string) ([]model.GroupMember, error) {
	var members []model.GroupMember
	if err := r.db.Where("user_uuid = ?", userUuid).Find(&members).Error; err != nil {
		return nil, wrapDBErrorf(err, "find memberships user_uuid=%s", userUuid)
	}
	return members, nil
}

// Create inserts a membership row. Duplicate (group, identity) pairs come
// back as an error recognized by IsDuplicateKey; the error is returned raw
// so the service layer can distinguish the conflict from a generic failure.
func (r *groupMemberRepository) Create(member *model.GroupMember) error {
	return r.db.Create(member).Error
}

func (r *groupMemberRepository) Delete(groupID uint, userUuid string) error {
	if err := r.db.Where("group_id = ? AND user_uuid = ?", groupID, userUuid).
		Delete(&model.GroupMember{}).Error; err != nil {
		return wrapDBErrorf(err, "delete member group_id=%d user_uuid=%s", groupID, userUuid)
	}
	return nil
}

func (r *groupMemberRepository) CountByGroupAndUser(groupID uint, userUuid string) (int64, error) {
	var count int64
	if err := r.db.Model(&model.GroupMember{}).
		Where("group_id = ? AND user_uuid = ?", groupID, userUuid).
		Count(&count).Error; err != nil {
		return 0, wrapDBErrorf(err, "count membership group_id=%d user_uuid=%s", groupID, userUuid)
	}
	return count, nil
}
