package seeders

import (
	"testing"

	"github.com/lac-hong-legacy/lecture_api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestSeedAll_IsRepeatable(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	seeder := NewMainSeeder(db)
	require.NoError(t, seeder.Migrate())
	require.NoError(t, seeder.SeedAll())
	require.NoError(t, seeder.SeedAll())

	var subjects, chapters, lectures, profiles int64
	db.Model(&model.Subject{}).Count(&subjects)
	db.Model(&model.Chapter{}).Count(&chapters)
	db.Model(&model.Lecture{}).Count(&lectures)
	db.Model(&model.Profile{}).Count(&profiles)

	assert.EqualValues(t, 2, subjects)
	assert.EqualValues(t, 3, chapters)
	assert.EqualValues(t, 9, lectures)
	assert.EqualValues(t, 4, profiles)

	var fractions model.Chapter
	require.NoError(t, db.First(&fractions, "id = ?", "chapter_math_fractions").Error)
	assert.True(t, fractions.Test.Enabled)
	assert.Equal(t, 3, fractions.Test.AttemptsAllowed)

	var child model.Profile
	require.NoError(t, db.First(&child, "id = ?", "student_demo_1").Error)
	require.NotNil(t, child.GuardianID)
	assert.Equal(t, "parent_demo", *child.GuardianID)
}
