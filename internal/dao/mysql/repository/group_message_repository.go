package repository

import (
	"juntos_server/internal/model"

	"gorm.io/gorm"
)

type groupMessageRepository struct {
	db *gorm.DB
}

// NewGroupMessageRepository creates a GroupMessageRepository backed by gorm.
func NewGroupMessageRepository(db *gorm.DB) GroupMessageRepository {
	return &groupMessageRepository{db: db}
}

// FindByGroupIDAsc loads the full history of a group ordered by sent-at
// ascending (id breaks ties so equal timestamps keep insert order).
func (r *groupMessageRepository) FindByGroupIDAsc(groupID uint) ([]model.GroupMessage, error) {
	var messages []model.GroupMessage
	if err := r.db.Where("group_id = ?", groupID).
		Order("data_envio ASC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, wrapDBErrorf(err, "find messages group_id=%d", groupID)
	}
	return messages, nil
}

func (r *groupMessageRepository) Create(message *model.GroupMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		return wrapDBError(err, "create message")
	}
	return nil
}
