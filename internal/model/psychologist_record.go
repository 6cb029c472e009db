package model

import (
	"gorm.io/gorm"
)

// PsychologistRecord is a psychologist's credential entry.
// Created unverified at signup; an administrator either verifies it
// (granting the psychologist role) or deletes it (rejection). Terminal
// either way from this application's perspective.
type PsychologistRecord struct {
	gorm.Model
	UserUuid      string `gorm:"column:user_uuid;index;type:char(20);not null"`
	Crp           string `gorm:"column:crp;type:varchar(20);not null"`
	Especialidade string `gorm:"column:especialidade;type:varchar(100)"`
	Bio           string `gorm:"column:bio;type:varchar(500)"`
	Verificado    bool   `gorm:"column:verificado;not null;default:false"`
}

func (PsychologistRecord) TableName() string {
	return "psychologist_record"
}
