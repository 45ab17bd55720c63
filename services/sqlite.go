package services

import (
	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SqliteService is the single-node alternative to postgres, selected with
// DB_DRIVER=sqlite. Tests open it on ":memory:".
type SqliteService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

// Id returns Service ID
func (ds SqliteService) Id() string {
	return DATABASE_SVC
}

// Db Access to raw SqliteService db
func (ds SqliteService) Db() *gorm.DB {
	return ds.db
}

// Configure the service
func (ds *SqliteService) Configure(ctx *context.Context) error {
	ds.database = getEnv("DB_DATABASE", "lecture_api.db")

	return ds.DefaultService.Configure(ctx)
}

// Start opens the database and migrates any tables that changed since the
// last run.
func (ds *SqliteService) Start() (err error) {
	ds.db, err = gorm.Open(sqlite.Open(ds.database), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return err
	}

	// sqlite serialises writers; a single connection also keeps ":memory:"
	// databases alive across queries.
	sqlDB, err := ds.db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)

	if err = migrate(ds.db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *SqliteService) Shutdown() {
	if ds.db == nil {
		return
	}
	if sqlDB, err := ds.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (ds *SqliteService) HandleError(err error) error {
	return handleDatabaseError(err)
}
