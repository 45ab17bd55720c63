package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/lac-hong-legacy/lecture_api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	BaseRepository
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ProgressMerge is one report folded into the stored row. Watch percentage
// and time spent are merged with max; Complete is sticky.
type ProgressMerge struct {
	StudentID       string
	LectureID       string
	ChapterID       string
	WatchPercentage float64
	TimeSpent       int
	Position        *float64
	Complete        bool
	At              time.Time
}

// MergeProgress applies m atomically and returns the resulting row. The
// boolean reports whether this call is the one that completed the lecture.
//
// Every column update is a conditional UPDATE so two concurrent reports for
// the same row can never move a value backwards, on postgres or sqlite.
func (ds *ProgressRepository) MergeProgress(m ProgressMerge) (*model.LectureProgress, bool, error) {
	if m.At.IsZero() {
		m.At = time.Now()
	}

	var result model.LectureProgress
	newlyCompleted := false

	err := ds.db.Transaction(func(tx *gorm.DB) error {
		id, _ := uuid.NewV7()
		row := model.LectureProgress{
			ID:        id.String(),
			StudentID: m.StudentID,
			LectureID: m.LectureID,
			ChapterID: m.ChapterID,
			CreatedAt: m.At,
			UpdatedAt: m.At,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "lecture_id"}},
			DoNothing: true,
		}).Create(&row).Error
		if err != nil {
			return err
		}

		scope := func() *gorm.DB {
			return tx.Model(&model.LectureProgress{}).
				Where("student_id = ? AND lecture_id = ?", m.StudentID, m.LectureID)
		}

		if err := scope().Where("watch_percentage < ?", m.WatchPercentage).
			Updates(map[string]interface{}{"watch_percentage": m.WatchPercentage, "updated_at": m.At}).Error; err != nil {
			return err
		}

		if err := scope().Where("time_spent < ?", m.TimeSpent).
			Updates(map[string]interface{}{"time_spent": m.TimeSpent, "updated_at": m.At}).Error; err != nil {
			return err
		}

		if m.Position != nil {
			if err := scope().Updates(map[string]interface{}{"last_position": *m.Position, "updated_at": m.At}).Error; err != nil {
				return err
			}
		}

		if m.Complete {
			res := scope().Where("is_completed = ?", false).Updates(map[string]interface{}{
				"is_completed":     true,
				"completed_at":     m.At,
				"watch_percentage": 100.0,
				"updated_at":       m.At,
			})
			if res.Error != nil {
				return res.Error
			}
			newlyCompleted = res.RowsAffected > 0
		}

		return tx.Where("student_id = ? AND lecture_id = ?", m.StudentID, m.LectureID).First(&result).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &result, newlyCompleted, nil
}

func (ds *ProgressRepository) GetProgress(studentID, lectureID string) (*model.LectureProgress, error) {
	var progress model.LectureProgress
	if err := ds.db.Where("student_id = ? AND lecture_id = ?", studentID, lectureID).First(&progress).Error; err != nil {
		return nil, err
	}
	return &progress, nil
}

func (ds *ProgressRepository) ListProgressByChapter(studentID, chapterID string) ([]model.LectureProgress, error) {
	var progress []model.LectureProgress
	if err := ds.db.Where("student_id = ? AND chapter_id = ?", studentID, chapterID).Find(&progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

func (ds *ProgressRepository) ListProgressByStudent(studentID string) ([]model.LectureProgress, error) {
	var progress []model.LectureProgress
	if err := ds.db.Where("student_id = ?", studentID).Find(&progress).Error; err != nil {
		return nil, err
	}
	return progress, nil
}

// ==================== CHAPTER TESTS ====================

func (ds *ProgressRepository) CreateTestAttempt(attempt *model.ChapterTestAttempt) error {
	if attempt.ID == "" {
		id, _ := uuid.NewV7()
		attempt.ID = id.String()
	}
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}
	return ds.db.Create(attempt).Error
}

func (ds *ProgressRepository) ListTestAttempts(studentID, chapterID string) ([]model.ChapterTestAttempt, error) {
	var attempts []model.ChapterTestAttempt
	if err := ds.db.Where("student_id = ? AND chapter_id = ?", studentID, chapterID).
		Order("created_at ASC").Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (ds *ProgressRepository) ListPassedChapters(studentID string) (map[string]bool, error) {
	var chapterIDs []string
	if err := ds.db.Model(&model.ChapterTestAttempt{}).
		Where("student_id = ? AND passed = ?", studentID, true).
		Distinct().Pluck("chapter_id", &chapterIDs).Error; err != nil {
		return nil, err
	}
	passed := make(map[string]bool, len(chapterIDs))
	for _, id := range chapterIDs {
		passed[id] = true
	}
	return passed, nil
}
