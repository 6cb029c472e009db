// Package model defines the database entities.
package model

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Profile is the authenticated identity record.
// The uuid is the opaque external id referenced by memberships, messages,
// roles and verification records.
type Profile struct {
	gorm.Model

	// Uuid is the identity key. Format: U + timestamp-random string.
	Uuid string `gorm:"column:uuid;uniqueIndex;type:char(20);not null"`

	// Nome is the display name shown next to messages and memberships.
	Nome string `gorm:"column:nome;type:varchar(50);not null"`

	Email string `gorm:"column:email;uniqueIndex;type:varchar(100);not null"`

	// TipoUsuario tags the account kind: "comum" or "psychologist".
	// The admin capability is a role assignment, not an account kind.
	TipoUsuario string `gorm:"column:tipo_usuario;type:varchar(20);not null;default:comum"`

	// Password stores the bcrypt hash, never plaintext.
	Password string `gorm:"column:password;type:varchar(100);not null"`

	// RawPassword receives the plaintext from the signup flow and is
	// hashed into Password by BeforeSave. Never persisted.
	RawPassword string `gorm:"-" json:"-"`
}

func (Profile) TableName() string {
	return "profile"
}

// BeforeSave hashes RawPassword into Password when one was provided.
func (p *Profile) BeforeSave(tx *gorm.DB) (err error) {
	if p.RawPassword != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(p.RawPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		p.Password = string(hash)
		p.RawPassword = ""
	}
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (p *Profile) CheckPassword(plaintext string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(plaintext))
	return err == nil
}
