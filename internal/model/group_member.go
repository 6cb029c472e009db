package model

import (
	"time"
)

// GroupMember pairs an identity with a group. The composite unique index
// is the backend guarantee behind the join-conflict downgrade: a second
// insert for the same pair fails with a duplicate key error.
type GroupMember struct {
	ID          uint      `gorm:"primarykey"`
	GroupID     uint      `gorm:"column:group_id;not null;uniqueIndex:idx_group_user"`
	UserUuid    string    `gorm:"column:user_uuid;type:char(20);not null;uniqueIndex:idx_group_user;index"`
	Papel       string    `gorm:"column:papel;type:varchar(20);not null;default:membro"`
	DataEntrada time.Time `gorm:"column:data_entrada;autoCreateTime"`
}

func (GroupMember) TableName() string {
	return "group_member"
}
