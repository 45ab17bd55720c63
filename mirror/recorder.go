package mirror

import (
	"context"
	"sync"
	"time"

	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/playback"
	"github.com/lac-hong-legacy/lecture_api/shared"
	log "github.com/sirupsen/logrus"
)

const defaultSendTimeout = 10 * time.Second

// Recorder is the playback sink for one lecture. Each update is written to
// the mirror first and then sent to the server.
type Recorder struct {
	*Syncer

	lectureID   string
	threshold   float64
	sendTimeout time.Duration
	onComplete  func(*dto.CompleteLectureResponse)

	mu        sync.Mutex
	completed bool
}

type RecorderOption func(*Recorder)

// WithThreshold sets the watch percentage at which the lecture is reported
// complete instead of merely updated.
func WithThreshold(pct float64) RecorderOption {
	return func(r *Recorder) { r.threshold = pct }
}

func WithSendTimeout(d time.Duration) RecorderOption {
	return func(r *Recorder) { r.sendTimeout = d }
}

// OnComplete is called after the server accepts a completion.
func OnComplete(fn func(*dto.CompleteLectureResponse)) RecorderOption {
	return func(r *Recorder) { r.onComplete = fn }
}

// WithCompleted starts the recorder with the lecture already completed, so
// every report re-sends completion.
func WithCompleted(completed bool) RecorderOption {
	return func(r *Recorder) { r.completed = completed }
}

func NewRecorder(store *Store, writer ProgressWriter, lectureID string, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		Syncer:      NewSyncer(store, writer),
		lectureID:   lectureID,
		threshold:   shared.DefaultCompletionThreshold,
		sendTimeout: defaultSendTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	// a completed mirror entry keeps the lecture completed
	if entry, err := store.Get(lectureID); err == nil && entry != nil && entry.IsCompleted {
		r.completed = true
	}
	return r
}

// Sink adapts the recorder to playback.New.
func (r *Recorder) Sink() playback.Sink {
	return r.Record
}

// Record mirrors u and sends it. Errors are logged only.
func (r *Recorder) Record(u playback.Update) {
	r.mu.Lock()
	if u.Ended || u.Percent >= r.threshold {
		r.completed = true
	}
	completed := r.completed
	r.mu.Unlock()

	at := u.At
	if at.IsZero() {
		at = time.Now()
	}
	entry := Entry{
		LectureID:   r.lectureID,
		Progress:    u.Percent,
		Position:    u.Position,
		TimeSpent:   u.TimeSpent,
		IsCompleted: completed,
		Timestamp:   at,
	}

	if err := r.store.Put(entry); err != nil {
		log.WithFields(log.Fields{"lecture_id": r.lectureID, "error": err.Error()}).Warn("Failed to mirror progress")
	}

	ctx, cancel := sendTimeout(context.Background(), r.sendTimeout)
	defer cancel()

	resp, err := r.send(ctx, entry)
	if err != nil {
		log.WithFields(log.Fields{
			"lecture_id": r.lectureID,
			"progress":   u.Percent,
			"completed":  completed,
			"error":      err.Error(),
		}).Warn("Failed to report progress, kept in mirror")
		return
	}

	if _, err := r.store.MarkSynced(r.lectureID, at); err != nil {
		log.WithFields(log.Fields{"lecture_id": r.lectureID, "error": err.Error()}).Warn("Failed to mark mirror entry synced")
	}
	if resp != nil && r.onComplete != nil {
		r.onComplete(resp)
	}
}

func (r *Recorder) Completed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}
