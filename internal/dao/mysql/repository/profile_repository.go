package repository

import (
	"juntos_server/internal/model"

	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a ProfileRepository backed by gorm.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUuid(uuid string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.First(&profile, "uuid = ?", uuid).Error; err != nil {
		return nil, wrapDBErrorf(err, "find profile uuid=%s", uuid)
	}
	return &profile, nil
}

func (r *profileRepository) FindByEmail(email string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.db.First(&profile, "email = ?", email).Error; err != nil {
		return nil, wrapDBErrorf(err, "find profile email=%s", email)
	}
	return &profile, nil
}

func (r *profileRepository) FindByUuids(uuids []string) ([]model.Profile, error) {
	var profiles []model.Profile
	if len(uuids) == 0 {
		return profiles, nil
	}
	if err := r.db.Where("uuid IN ?", uuids).Find(&profiles).Error; err != nil {
		return nil, wrapDBError(err, "batch find profiles")
	}
	return profiles, nil
}

func (r *profileRepository) Create(profile *model.Profile) error {
	if err := r.db.Create(profile).Error; err != nil {
		return wrapDBError(err, "create profile")
	}
	return nil
}

func (r *profileRepository) Update(profile *model.Profile) error {
	if err := r.db.Save(profile).Error; err != nil {
		return wrapDBError(err, "update profile")
	}
	return nil
}
