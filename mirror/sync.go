package mirror

import (
	"context"
	"time"

	"github.com/lac-hong-legacy/lecture_api/dto"
	log "github.com/sirupsen/logrus"
)

// ProgressWriter is the server side of a report. *client.Client satisfies it.
type ProgressWriter interface {
	UpdateProgress(ctx context.Context, lectureID string, req dto.UpdateProgressRequest) (*dto.ProgressUpdateResponse, error)
	CompleteLecture(ctx context.Context, lectureID string, req dto.CompleteLectureRequest) (*dto.CompleteLectureResponse, error)
}

type SyncResult struct {
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

// Syncer re-sends mirrored entries. Failures are logged and counted, never
// returned.
type Syncer struct {
	store  *Store
	writer ProgressWriter
}

func NewSyncer(store *Store, writer ProgressWriter) *Syncer {
	return &Syncer{store: store, writer: writer}
}

// Sync re-issues the mirrored report for lectureID: complete when the entry
// is completed, a progress update otherwise. It reports whether the server
// accepted it; a lecture with no entry counts as synced.
func (s *Syncer) Sync(ctx context.Context, lectureID string) bool {
	entry, err := s.store.Get(lectureID)
	if err != nil {
		log.WithFields(log.Fields{"lecture_id": lectureID, "error": err.Error()}).Warn("Failed to read mirror entry")
		return false
	}
	if entry == nil {
		return true
	}
	return s.deliver(ctx, *entry)
}

// SyncPending re-issues every entry the server has not acknowledged.
func (s *Syncer) SyncPending(ctx context.Context) SyncResult {
	var result SyncResult

	entries, err := s.store.Pending()
	if err != nil {
		log.WithError(err).Warn("Failed to list pending mirror entries")
		return result
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			result.Failed++
			continue
		}
		if s.deliver(ctx, entry) {
			result.Synced++
		} else {
			result.Failed++
		}
	}
	return result
}

func (s *Syncer) deliver(ctx context.Context, entry Entry) bool {
	if _, err := s.send(ctx, entry); err != nil {
		log.WithFields(log.Fields{
			"lecture_id": entry.LectureID,
			"completed":  entry.IsCompleted,
			"error":      err.Error(),
		}).Warn("Failed to sync progress")
		return false
	}

	if _, err := s.store.MarkSynced(entry.LectureID, entry.Timestamp); err != nil {
		log.WithFields(log.Fields{"lecture_id": entry.LectureID, "error": err.Error()}).Warn("Failed to mark mirror entry synced")
	}
	return true
}

// send returns the completion response when the entry completed the lecture.
func (s *Syncer) send(ctx context.Context, entry Entry) (*dto.CompleteLectureResponse, error) {
	if entry.IsCompleted {
		return s.writer.CompleteLecture(ctx, entry.LectureID, dto.CompleteLectureRequest{TimeSpent: entry.TimeSpent})
	}
	_, err := s.writer.UpdateProgress(ctx, entry.LectureID, dto.UpdateProgressRequest{
		Progress:  entry.Progress,
		TimeSpent: entry.TimeSpent,
		Position:  entry.Position,
	})
	return nil, err
}

func sendTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
