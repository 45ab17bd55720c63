package repositories

import (
	"time"

	"github.com/lac-hong-legacy/lecture_api/model"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	BaseRepository
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (ds *ProfileRepository) GetProfile(id string) (*model.Profile, error) {
	var profile model.Profile
	if err := ds.db.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (ds *ProfileRepository) CreateProfile(profile *model.Profile) error {
	return ds.db.Create(profile).Error
}

func (ds *ProfileRepository) UpdateProfile(profile *model.Profile) error {
	profile.UpdatedAt = time.Now()
	return ds.db.Save(profile).Error
}

// ListWards returns the students a guardian may follow.
func (ds *ProfileRepository) ListWards(guardianID string) ([]model.Profile, error) {
	var profiles []model.Profile
	if err := ds.db.Where("guardian_id = ?", guardianID).Order("display_name").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}
