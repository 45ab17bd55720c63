package model

import "time"

// Subject groups chapters for the overview, e.g. "Mathematics".
type Subject struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	Order       int       `json:"order" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ChapterTest is the assessment that closes a chapter. It only becomes
// available once every lecture of the chapter is completed.
type ChapterTest struct {
	Enabled           bool   `json:"enabled"`
	Title             string `json:"title"`
	PassingPercentage int    `json:"passing_percentage"`
	AttemptsAllowed   int    `json:"attempts_allowed"` // 0 means unlimited
}

type Chapter struct {
	ID          string      `json:"id" gorm:"primaryKey"`
	SubjectID   string      `json:"subject_id" gorm:"not null;index"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description" gorm:"type:text"`
	Order       int         `json:"order" gorm:"not null;default:0"`
	Test        ChapterTest `json:"test" gorm:"embedded;embeddedPrefix:test_"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`

	Subject  Subject   `json:"-" gorm:"foreignKey:SubjectID"`
	Lectures []Lecture `json:"lectures,omitempty" gorm:"foreignKey:ChapterID"`
}

// Lecture is a single unit of a chapter. Order is the only attribute the
// unlock calculation reads.
type Lecture struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	ChapterID         string    `json:"chapter_id" gorm:"not null;uniqueIndex:idx_chapter_lecture_order"`
	Title             string    `json:"title" gorm:"not null"`
	Order             int       `json:"order" gorm:"not null;uniqueIndex:idx_chapter_lecture_order"`
	EstimatedDuration int       `json:"estimated_duration"` // seconds
	ContentType       string    `json:"content_type" gorm:"not null;default:video"`
	VideoURL          string    `json:"video_url"`
	VideoObject       string    `json:"video_object"`
	Content           string    `json:"content" gorm:"type:text"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
