// Package mirror keeps a local copy of every progress report so a report the
// server never acknowledged can be re-sent later.
package mirror

import (
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Entry is the last report made for a lecture.
type Entry struct {
	LectureID   string     `gorm:"primaryKey;type:varchar(36)" json:"lecture_id"`
	Progress    float64    `json:"progress"`
	Position    float64    `json:"position"`
	TimeSpent   int        `json:"time_spent"`
	IsCompleted bool       `json:"is_completed"`
	Timestamp   time.Time  `json:"timestamp"`
	Synced      bool       `gorm:"index" json:"synced"`
	SyncedAt    *time.Time `json:"synced_at,omitempty"`
}

func (Entry) TableName() string {
	return "mirror_entries"
}

type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the mirror database at path. ":memory:" works for
// throwaway stores.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return NewStore(db)
}

func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Put replaces the entry for e.LectureID. The new entry is unsynced.
func (s *Store) Put(e Entry) error {
	e.Timestamp = e.Timestamp.UTC()
	e.Synced = false
	e.SyncedAt = nil
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "lecture_id"}},
		UpdateAll: true,
	}).Create(&e).Error
}

// Get returns the entry for lectureID, or nil when nothing was recorded.
func (s *Store) Get(lectureID string) (*Entry, error) {
	var e Entry
	err := s.db.Where("lecture_id = ?", lectureID).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Pending lists unsynced entries, oldest first.
func (s *Store) Pending() ([]Entry, error) {
	var entries []Entry
	err := s.db.Where("synced = ?", false).Order("timestamp ASC").Find(&entries).Error
	return entries, err
}

func (s *Store) All() ([]Entry, error) {
	var entries []Entry
	err := s.db.Order("timestamp DESC").Find(&entries).Error
	return entries, err
}

// MarkSynced flags the entry as delivered, but only if it still holds the
// report made at reported. A newer Put in the meantime stays pending.
func (s *Store) MarkSynced(lectureID string, reported time.Time) (bool, error) {
	now := time.Now()
	res := s.db.Model(&Entry{}).
		Where("lecture_id = ? AND timestamp = ?", lectureID, reported.UTC()).
		Updates(map[string]interface{}{"synced": true, "synced_at": now})
	return res.RowsAffected > 0, res.Error
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
