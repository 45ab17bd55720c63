package main

import (
	"testing"

	"github.com/lac-hong-legacy/lecture_api/seed/seeders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SqliteSeedsInMemory(t *testing.T) {
	db, target, err := open("sqlite", ":memory:")
	require.NoError(t, err)
	assert.Equal(t, ":memory:", target)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	seeder := seeders.NewMainSeeder(db)
	require.NoError(t, seeder.Migrate())
	require.NoError(t, seeder.SeedCatalogOnly())
}

func TestOpen_RejectsBadTargets(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, _, err := open("postgres", "")
	assert.ErrorContains(t, err, "DATABASE_URL")

	_, _, err = open("mysql", "x")
	assert.ErrorContains(t, err, `unknown driver "mysql"`)
}

func TestEnvOr(t *testing.T) {
	t.Setenv("SEED_TEST_VALUE", "")
	assert.Equal(t, "fallback", envOr("SEED_TEST_VALUE", "fallback"))

	t.Setenv("SEED_TEST_VALUE", "set")
	assert.Equal(t, "set", envOr("SEED_TEST_VALUE", "fallback"))
}
