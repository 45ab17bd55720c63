package seeders

import (
	"log"

	"github.com/lac-hong-legacy/lecture_api/model"
	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// Migrate creates the tables the seeders write to.
func (s *MainSeeder) Migrate() error {
	return s.db.AutoMigrate(model.Models()...)
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Println("Starting database seeding...")

	if err := s.SeedProfilesOnly(); err != nil {
		log.Printf("Profile seeding failed: %v", err)
		return err
	}

	if err := s.SeedCatalogOnly(); err != nil {
		log.Printf("Catalog seeding failed: %v", err)
		return err
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func (s *MainSeeder) SeedCatalogOnly() error {
	return NewCatalogSeeder(s.db).SeedCatalog()
}

func (s *MainSeeder) SeedProfilesOnly() error {
	return NewProfileSeeder(s.db).SeedProfiles()
}
