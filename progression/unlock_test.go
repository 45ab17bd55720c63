package progression

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lectures(ids ...string) []Lecture {
	out := make([]Lecture, len(ids))
	for i, id := range ids {
		out[i] = Lecture{ID: id, Order: i + 1}
	}
	return out
}

func TestStatus_Table(t *testing.T) {
	abc := lectures("A", "B", "C")

	tests := []struct {
		name      string
		completed CompletedSet
		want      []LectureStatus
	}{
		{"nil set", nil, []LectureStatus{StatusCurrent, StatusUpcoming, StatusUpcoming}},
		{"empty set", NewCompletedSet(), []LectureStatus{StatusCurrent, StatusUpcoming, StatusUpcoming}},
		{"first done", NewCompletedSet("A"), []LectureStatus{StatusCompleted, StatusCurrent, StatusUpcoming}},
		{"out of order", NewCompletedSet("A", "C"), []LectureStatus{StatusCompleted, StatusCurrent, StatusUpcoming}},
		{"only last", NewCompletedSet("C"), []LectureStatus{StatusCurrent, StatusUpcoming, StatusUpcoming}},
		{"all done", NewCompletedSet("A", "B", "C"), []LectureStatus{StatusCompleted, StatusCompleted, StatusCompleted}},
		{"unknown ids ignored", NewCompletedSet("X", "A"), []LectureStatus{StatusCompleted, StatusCurrent, StatusUpcoming}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := range abc {
				assert.Equal(t, tt.want[i], Status(i, abc, tt.completed), "index %d", i)
			}
			assert.Equal(t, tt.want, Statuses(abc, tt.completed))
		})
	}
}

func TestStatus_OutOfRangeIsUpcoming(t *testing.T) {
	abc := lectures("A", "B", "C")
	assert.Equal(t, StatusUpcoming, Status(-1, abc, nil))
	assert.Equal(t, StatusUpcoming, Status(3, abc, NewCompletedSet("A", "B", "C")))
	assert.Equal(t, StatusUpcoming, Status(0, nil, nil))
}

func TestStatus_AtMostOneCurrent(t *testing.T) {
	ids := []string{"A", "B", "C", "D", "E"}

	// every rotation of the list against every subset of completions
	for shift := 0; shift < len(ids); shift++ {
		rotated := append(append([]string{}, ids[shift:]...), ids[:shift]...)
		list := lectures(rotated...)

		for mask := 0; mask < 1<<len(ids); mask++ {
			set := NewCompletedSet()
			for bit, id := range ids {
				if mask&(1<<bit) != 0 {
					set[id] = struct{}{}
				}
			}

			current := 0
			for _, s := range Statuses(list, set) {
				if s == StatusCurrent {
					current++
				}
			}
			require.LessOrEqual(t, current, 1, fmt.Sprintf("order %v completed mask %b", rotated, mask))

			if len(set) == len(ids) {
				assert.Equal(t, 0, current)
				assert.True(t, ChapterTestAvailable(list, set))
			} else {
				assert.Equal(t, 1, current)
				assert.False(t, ChapterTestAvailable(list, set))
			}
		}
	}
}

func TestChapterTestAvailable(t *testing.T) {
	abc := lectures("A", "B", "C")

	assert.False(t, ChapterTestAvailable(abc, nil))
	assert.False(t, ChapterTestAvailable(abc, NewCompletedSet("A", "B")))
	assert.True(t, ChapterTestAvailable(abc, NewCompletedSet("C", "B", "A", "extra")))
	assert.False(t, ChapterTestAvailable(nil, NewCompletedSet("A")))
}

func TestCurrentIndex(t *testing.T) {
	abc := lectures("A", "B", "C")

	assert.Equal(t, 0, CurrentIndex(abc, nil))
	assert.Equal(t, 2, CurrentIndex(abc, NewCompletedSet("A", "B")))
	assert.Equal(t, -1, CurrentIndex(abc, NewCompletedSet("A", "B", "C")))
	assert.Equal(t, -1, CurrentIndex(nil, nil))
}

func TestOrder_SortsByOrderThenID(t *testing.T) {
	in := []Lecture{{ID: "c", Order: 2}, {ID: "b", Order: 1}, {ID: "a", Order: 2}}

	out := Order(in)

	assert.Equal(t, []Lecture{{ID: "b", Order: 1}, {ID: "a", Order: 2}, {ID: "c", Order: 2}}, out)
	assert.Equal(t, "c", in[0].ID, "input must not be mutated")
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Completed", StatusCompleted.Label())
	assert.Equal(t, "Current", StatusCurrent.Label())
	assert.Equal(t, "Locked", StatusUpcoming.Label())
	assert.True(t, StatusCurrent.Accessible())
	assert.False(t, StatusUpcoming.Accessible())
}

func TestSummarize(t *testing.T) {
	abcd := lectures("A", "B", "C", "D")

	s := Summarize(abcd, NewCompletedSet("A", "C"))
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 50.0, s.Percent)
	assert.Equal(t, "B", s.CurrentLectureID)
	assert.False(t, s.TestAvailable)

	done := Summarize(abcd, NewCompletedSet("A", "B", "C", "D"))
	assert.Equal(t, 100.0, done.Percent)
	assert.Empty(t, done.CurrentLectureID)
	assert.True(t, done.TestAvailable)

	empty := Summarize(nil, nil)
	assert.Equal(t, 0.0, empty.Percent)
	assert.False(t, empty.TestAvailable)

	third := Summarize(lectures("A", "B", "C"), NewCompletedSet("A"))
	assert.Equal(t, 33.33, third.Percent)
}
