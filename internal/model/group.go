package model

import (
	"gorm.io/gorm"
)

// Group is a topical support group. Owned by the creating identity; never
// deleted through this application.
type Group struct {
	gorm.Model
	Nome       string `gorm:"column:nome;type:varchar(100);not null"`
	Descricao  string `gorm:"column:descricao;type:varchar(500);not null"`
	OwnerId    string `gorm:"column:owner_id;index;type:char(20);not null"`
	ImagemCapa string `gorm:"column:imagem_capa;type:varchar(255)"`
	MaxMembros int    `gorm:"column:max_membros;default:50"`
}

func (Group) TableName() string {
	return "group_info"
}
