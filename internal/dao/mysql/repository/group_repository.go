package repository

import (
	"juntos_server/internal/model"

	"gorm.io/gorm"
)

type groupRepository struct {
	db *gorm.DB
}

// NewGroupRepository creates a GroupRepository backed by gorm.
func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) FindByID(id uint) (*model.Group, error) {
	var group model.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "find group id=%d", id)
	}
	return &group, nil
}

// FindAllNewestFirst lists all groups, newest creation time first.
func (r *groupRepository) FindAllNewestFirst() ([]model.Group, error) {
	var groups []model.Group
	if err := r.db.Order("created_at DESC").Find(&groups).Error; err != nil {
		return nil, wrapDBError(err, "list groups")
	}
	return groups, nil
}

func (r *groupRepository) FindByIDs(ids []uint) ([]model.Group, error) {
	var groups []model.Group
	if len(ids) == 0 {
		return groups, nil
	}
	if err := r.db.Where("id IN ?", ids).Find(&groups).Error; err != nil {
		return nil, wrapDBError(err, "batch find groups")
	}
	return groups, nil
}

func (r *groupRepository) Create(group *model.Group) error {
	if err := r.db.Create(group).Error; err != nil {
		return wrapDBError(err, "create group")
	}
	return nil
}

func (r *groupRepository) Update(group *model.Group) error {
	if err := r.db.Save(group).Error; err != nil {
		return wrapDBError(err, "update group")
	}
	return nil
}
