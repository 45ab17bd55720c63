package services

import (
	"errors"

	"github.com/lac-hong-legacy/lecture_api/model"
	"github.com/lac-hong-legacy/lecture_api/progression"
	"github.com/lac-hong-legacy/lecture_api/services/repositories"
	"github.com/lac-hong-legacy/lecture_api/shared"
	"gorm.io/gorm"
)

var (
	errNotYourRecord = errors.New("actor does not own the record")
	errNotGuardian   = errors.New("actor is not the guardian of the student")
	errStudentsOnly  = errors.New("actor is not a student")
)

// checkReadAccess lets the student, an admin, or the student's guardian read
// records that belong to studentID.
func checkReadAccess(profiles *repositories.ProfileRepository, actor shared.Actor, studentID string) error {
	if actor.ID == studentID || actor.IsAdmin() {
		return nil
	}
	if actor.Role != shared.RoleParent {
		return shared.NewForbiddenError(errNotYourRecord, "Access denied")
	}

	student, err := profiles.GetProfile(studentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewForbiddenError(errNotGuardian, "Access denied")
	}
	if err != nil {
		return handleDatabaseError(err)
	}
	if student.GuardianID == nil || *student.GuardianID != actor.ID {
		return shared.NewForbiddenError(errNotGuardian, "Access denied")
	}
	return nil
}

// checkWriteAccess only lets students write progress, and only their own:
// writes are always keyed by the actor's id.
func checkWriteAccess(actor shared.Actor) error {
	if actor.ID == "" || actor.Role != shared.RoleStudent {
		return shared.NewForbiddenError(errStudentsOnly, "Only students can record progress")
	}
	return nil
}

// lectureAccessible reports whether lecture is completed or current for
// studentID within its chapter. Errors are raw database errors.
func lectureAccessible(catalog *repositories.CatalogRepository, progress *repositories.ProgressRepository, studentID string, lecture *model.Lecture) (bool, error) {
	rows, err := catalog.ListLectures(lecture.ChapterID)
	if err != nil {
		return false, err
	}
	records, err := progress.ListProgressByChapter(studentID, lecture.ChapterID)
	if err != nil {
		return false, err
	}

	lectures := toProgressionLectures(rows)
	completed := completedSet(records)
	for i, l := range lectures {
		if l.ID == lecture.ID {
			return progression.Status(i, lectures, completed).Accessible(), nil
		}
	}
	return false, nil
}
