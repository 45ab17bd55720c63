package seeders

import (
	"log"

	"github.com/lac-hong-legacy/lecture_api/model"
	"github.com/lac-hong-legacy/lecture_api/shared"
	"gorm.io/gorm"
)

// ProfileSeeder creates one admin, one parent and the parent's two children.
// The IDs match what `learner token` is given in local development.
type ProfileSeeder struct {
	db *gorm.DB
}

func NewProfileSeeder(db *gorm.DB) *ProfileSeeder {
	return &ProfileSeeder{db: db}
}

func (s *ProfileSeeder) SeedProfiles() error {
	parentID := "parent_demo"

	profiles := []model.Profile{
		{ID: "admin_demo", DisplayName: "Admin", Email: "admin@example.com", Role: shared.RoleAdmin},
		{ID: parentID, DisplayName: "Hoa Nguyen", Email: "hoa@example.com", Role: shared.RoleParent},
		{ID: "student_demo_1", DisplayName: "An Nguyen", Role: shared.RoleStudent, GradeLevel: 4, GuardianID: &parentID},
		{ID: "student_demo_2", DisplayName: "Binh Nguyen", Role: shared.RoleStudent, GradeLevel: 2, GuardianID: &parentID},
	}

	for i := range profiles {
		if err := createIfMissing(s.db, profiles[i].ID, "profile "+profiles[i].DisplayName, &profiles[i]); err != nil {
			return err
		}
	}

	log.Println("Profile seeding completed successfully")
	return nil
}
