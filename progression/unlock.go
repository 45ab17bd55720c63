// Package progression derives which lectures of a chapter a student may
// open. Everything here is pure: the inputs are the ordered lecture list and
// the set of lecture IDs the student has completed.
package progression

import "sort"

type LectureStatus string

const (
	StatusCompleted LectureStatus = "completed"
	StatusCurrent   LectureStatus = "current"
	StatusUpcoming  LectureStatus = "upcoming"
)

func (s LectureStatus) Label() string {
	switch s {
	case StatusCompleted:
		return "Completed"
	case StatusCurrent:
		return "Current"
	default:
		return "Locked"
	}
}

// Accessible reports whether a lecture in this status may be opened.
func (s LectureStatus) Accessible() bool {
	return s == StatusCompleted || s == StatusCurrent
}

type Lecture struct {
	ID    string
	Order int
}

type CompletedSet map[string]struct{}

func NewCompletedSet(ids ...string) CompletedSet {
	set := make(CompletedSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has is safe on a nil set.
func (s CompletedSet) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s[id]
	return ok
}

// Order returns a copy sorted by (Order, ID).
func Order(lectures []Lecture) []Lecture {
	sorted := make([]Lecture, len(lectures))
	copy(sorted, lectures)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// FirstIncomplete returns the index of the first lecture not in completed,
// or len(lectures) when every lecture is completed.
func FirstIncomplete(lectures []Lecture, completed CompletedSet) int {
	for i, l := range lectures {
		if !completed.Has(l.ID) {
			return i
		}
	}
	return len(lectures)
}

// Status derives the status of the lecture at index. Lectures before the
// first incomplete one are completed, that one is current, and everything
// after it is upcoming, including lectures completed out of order.
func Status(index int, lectures []Lecture, completed CompletedSet) LectureStatus {
	if index < 0 || index >= len(lectures) {
		return StatusUpcoming
	}

	first := FirstIncomplete(lectures, completed)
	switch {
	case index < first:
		return StatusCompleted
	case index == first:
		return StatusCurrent
	default:
		return StatusUpcoming
	}
}

func Statuses(lectures []Lecture, completed CompletedSet) []LectureStatus {
	statuses := make([]LectureStatus, len(lectures))
	first := FirstIncomplete(lectures, completed)
	for i := range lectures {
		switch {
		case i < first:
			statuses[i] = StatusCompleted
		case i == first:
			statuses[i] = StatusCurrent
		default:
			statuses[i] = StatusUpcoming
		}
	}
	return statuses
}

// CurrentIndex returns -1 when every lecture is completed or the list is empty.
func CurrentIndex(lectures []Lecture, completed CompletedSet) int {
	first := FirstIncomplete(lectures, completed)
	if first >= len(lectures) {
		return -1
	}
	return first
}

// ChapterTestAvailable is true iff completed contains every lecture ID. A
// chapter without lectures has no test to take.
func ChapterTestAvailable(lectures []Lecture, completed CompletedSet) bool {
	if len(lectures) == 0 {
		return false
	}
	return FirstIncomplete(lectures, completed) == len(lectures)
}
