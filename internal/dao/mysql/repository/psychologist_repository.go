package repository

import (
	"juntos_server/internal/model"

	"gorm.io/gorm"
)

type psychologistRepository struct {
	db *gorm.DB
}

// NewPsychologistRepository creates a PsychologistRepository backed by gorm.
func NewPsychologistRepository(db *gorm.DB) PsychologistRepository {
	return &psychologistRepository{db: db}
}

func (r *psychologistRepository) FindByID(id uint) (*model.PsychologistRecord, error) {
	var record model.PsychologistRecord
	if err := r.db.First(&record, id).Error; err != nil {
		return nil, wrapDBErrorf(err, "find verification record id=%d", id)
	}
	return &record, nil
}

func (r *psychologistRepository) FindPending() ([]model.PsychologistRecord, error) {
	var records []model.PsychologistRecord
	if err := r.db.Where("verificado = ?", false).Find(&records).Error; err != nil {
		return nil, wrapDBError(err, "list pending verification records")
	}
	return records, nil
}

func (r *psychologistRepository) FindVerified() ([]model.PsychologistRecord, error) {
	var records []model.PsychologistRecord
	if err := r.db.Where("verificado = ?", true).Find(&records).Error; err != nil {
		return nil, wrapDBError(err, "list verified records")
	}
	return records, nil
}

func (r *psychologistRepository) Create(record *model.PsychologistRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return wrapDBError(err, "create verification record")
	}
	return nil
}

func (r *psychologistRepository) SetVerified(id uint) error {
	if err := r.db.Model(&model.PsychologistRecord{}).
		Where("id = ?", id).
		Update("verificado", true).Error; err != nil {
		return wrapDBErrorf(err, "verify record id=%d", id)
	}
	return nil
}

// Delete removes the record permanently. Rejection keeps no tombstone.
func (r *psychologistRepository) Delete(id uint) error {
	if err := r.db.Unscoped().Delete(&model.PsychologistRecord{}, id).Error; err != nil {
		return wrapDBErrorf(err, "delete verification record id=%d", id)
	}
	return nil
}
