package progression

import "math"

type Summary struct {
	Total            int     `json:"total"`
	Completed        int     `json:"completed"`
	Percent          float64 `json:"percent"`
	CurrentLectureID string  `json:"current_lecture_id,omitempty"`
	TestAvailable    bool    `json:"test_available"`
}

// Summarize counts actual completions, so a lecture completed out of order
// still counts toward Percent even though its status stays upcoming.
func Summarize(lectures []Lecture, completed CompletedSet) Summary {
	summary := Summary{Total: len(lectures)}
	for _, l := range lectures {
		if completed.Has(l.ID) {
			summary.Completed++
		}
	}
	if summary.Total > 0 {
		summary.Percent = math.Round(float64(summary.Completed)/float64(summary.Total)*10000) / 100
	}
	if idx := CurrentIndex(lectures, completed); idx >= 0 {
		summary.CurrentLectureID = lectures[idx].ID
	}
	summary.TestAvailable = ChapterTestAvailable(lectures, completed)
	return summary
}
