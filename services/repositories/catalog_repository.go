package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/lac-hong-legacy/lecture_api/model"
	"gorm.io/gorm"
)

// CatalogRepository stores subjects, chapters and lectures.
type CatalogRepository struct {
	BaseRepository
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// ==================== SUBJECTS ====================

func (ds *CatalogRepository) CreateSubject(subject *model.Subject) error {
	if subject.ID == "" {
		id, _ := uuid.NewV7()
		subject.ID = id.String()
	}
	return ds.db.Create(subject).Error
}

func (ds *CatalogRepository) GetSubject(id string) (*model.Subject, error) {
	var subject model.Subject
	if err := ds.db.Where("id = ?", id).First(&subject).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (ds *CatalogRepository) ListSubjects() ([]model.Subject, error) {
	var subjects []model.Subject
	if err := ds.db.Order(byOrder()).Find(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

// ==================== CHAPTERS ====================

func (ds *CatalogRepository) CreateChapter(chapter *model.Chapter) error {
	if chapter.ID == "" {
		id, _ := uuid.NewV7()
		chapter.ID = id.String()
	}
	return ds.db.Omit("Subject", "Lectures").Create(chapter).Error
}

func (ds *CatalogRepository) GetChapter(id string) (*model.Chapter, error) {
	var chapter model.Chapter
	if err := ds.db.Where("id = ?", id).First(&chapter).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (ds *CatalogRepository) ListChapters(subjectID string) ([]model.Chapter, error) {
	var chapters []model.Chapter
	if err := ds.db.Where("subject_id = ?", subjectID).Order(byOrder()).Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

// CountLecturesByChapter returns the number of lectures per chapter id.
func (ds *CatalogRepository) CountLecturesByChapter(chapterIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(chapterIDs))
	if len(chapterIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ChapterID string
		Total     int
	}
	err := ds.db.Model(&model.Lecture{}).
		Select("chapter_id, COUNT(*) AS total").
		Where("chapter_id IN ?", chapterIDs).
		Group("chapter_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ChapterID] = row.Total
	}
	return counts, nil
}

// ==================== LECTURES ====================

func (ds *CatalogRepository) CreateLecture(lecture *model.Lecture) error {
	if lecture.ID == "" {
		id, _ := uuid.NewV7()
		lecture.ID = id.String()
	}
	return ds.db.Create(lecture).Error
}

func (ds *CatalogRepository) GetLecture(id string) (*model.Lecture, error) {
	var lecture model.Lecture
	if err := ds.db.Where("id = ?", id).First(&lecture).Error; err != nil {
		return nil, err
	}
	return &lecture, nil
}

func (ds *CatalogRepository) UpdateLecture(lecture *model.Lecture) error {
	lecture.UpdatedAt = time.Now()
	return ds.db.Save(lecture).Error
}

func (ds *CatalogRepository) ListLectures(chapterID string) ([]model.Lecture, error) {
	var lectures []model.Lecture
	if err := ds.db.Where("chapter_id = ?", chapterID).Order(byOrder()).Find(&lectures).Error; err != nil {
		return nil, err
	}
	return lectures, nil
}

// ListLecturesForChapters loads the lectures of several chapters in one query,
// grouped by chapter id and sorted by order within each group.
func (ds *CatalogRepository) ListLecturesForChapters(chapterIDs []string) (map[string][]model.Lecture, error) {
	grouped := make(map[string][]model.Lecture, len(chapterIDs))
	if len(chapterIDs) == 0 {
		return grouped, nil
	}

	var lectures []model.Lecture
	if err := ds.db.Where("chapter_id IN ?", chapterIDs).Order(byOrder()).Find(&lectures).Error; err != nil {
		return nil, err
	}
	for _, lecture := range lectures {
		grouped[lecture.ChapterID] = append(grouped[lecture.ChapterID], lecture)
	}
	return grouped, nil
}
