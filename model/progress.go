package model

import "time"

// LectureProgress is the server-side record of one student's progress on one
// lecture. Watch percentage and time spent only move forward, and
// IsCompleted never reverts once set.
type LectureProgress struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	StudentID       string     `json:"student_id" gorm:"not null;uniqueIndex:idx_student_lecture"`
	LectureID       string     `json:"lecture_id" gorm:"not null;uniqueIndex:idx_student_lecture;index"`
	ChapterID       string     `json:"chapter_id" gorm:"not null;index"`
	WatchPercentage float64    `json:"watch_percentage" gorm:"not null;default:0"`
	TimeSpent       int        `json:"time_spent" gorm:"not null;default:0"` // seconds
	LastPosition    float64    `json:"last_position" gorm:"not null;default:0"`
	IsCompleted     bool       `json:"is_completed" gorm:"not null;default:false"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ChapterTestAttempt struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	StudentID string    `json:"student_id" gorm:"not null;index:idx_attempt_student_chapter"`
	ChapterID string    `json:"chapter_id" gorm:"not null;index:idx_attempt_student_chapter"`
	Score     int       `json:"score" gorm:"not null"`
	Passed    bool      `json:"passed" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
