package model

import (
	"time"
)

// GroupMessage is an append-only chat message inside a group.
// No edit or delete surface exists for it.
type GroupMessage struct {
	ID uint `gorm:"primarykey"`

	// Uuid is the snowflake message id exposed to clients and used by the
	// stream dedupe guard.
	Uuid int64 `gorm:"column:uuid;uniqueIndex;type:bigint;not null"`

	GroupID  uint   `gorm:"column:group_id;index;not null"`
	SendId   string `gorm:"column:send_id;index;type:char(20);not null"`
	Conteudo string `gorm:"column:conteudo;type:TEXT;not null"`

	// Tipo tags the message kind, "texto" by default.
	Tipo string `gorm:"column:tipo;type:varchar(20);not null;default:texto"`

	// DataEnvio is the sent-at timestamp; history is ordered by it.
	DataEnvio time.Time `gorm:"column:data_envio;index;autoCreateTime"`

	// CaminhoArquivo is an optional attachment path.
	CaminhoArquivo string `gorm:"column:caminho_arquivo;type:varchar(255)"`
}

func (GroupMessage) TableName() string {
	return "group_message"
}
