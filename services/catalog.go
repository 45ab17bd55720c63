package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/model"
	"github.com/lac-hong-legacy/lecture_api/services/repositories"
	"github.com/lac-hong-legacy/lecture_api/shared"
	log "github.com/sirupsen/logrus"
)

const CATALOG_SVC = "catalog_svc"

const videoURLExpiry = 2 * time.Hour

var (
	errNoObjectStorage = errors.New("object storage is not configured")
	errNotAVideo       = errors.New("content type is not a video")
)

// ObjectStorage holds uploaded lecture videos. MinIOService implements it.
type ObjectStorage interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (*minio.UploadInfo, error)
	GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	DeleteFile(ctx context.Context, objectName string) error
}

// CatalogService manages subjects, chapters and lectures.
type CatalogService struct {
	appContext.DefaultService

	db           DatabaseProvider
	repo         *repositories.CatalogRepository
	progressRepo *repositories.ProgressRepository
	storage      ObjectStorage
}

func (svc CatalogService) Id() string {
	return CATALOG_SVC
}

// NewCatalogService builds the service on db. storage may be nil, in which
// case video uploads answer 503.
func NewCatalogService(db DatabaseProvider, storage ObjectStorage) *CatalogService {
	svc := &CatalogService{storage: storage}
	svc.bind(db)
	return svc
}

func (svc *CatalogService) Start() error {
	svc.bind(svc.Service(DATABASE_SVC).(DatabaseProvider))
	if minioSvc, ok := svc.Service(MINIO_SVC).(*MinIOService); ok {
		svc.storage = minioSvc
	}
	return nil
}

func (svc *CatalogService) bind(db DatabaseProvider) {
	svc.db = db
	svc.repo = repositories.NewCatalogRepository(db.Db())
	svc.progressRepo = repositories.NewProgressRepository(db.Db())
}

// ==================== SUBJECTS ====================

func (svc *CatalogService) CreateSubject(req dto.CreateSubjectRequest) (*dto.SubjectResponse, error) {
	subject := &model.Subject{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Order:       req.Order,
	}
	if err := svc.repo.CreateSubject(subject); err != nil {
		return nil, svc.db.HandleError(err)
	}
	resp := toSubjectResponse(*subject)
	return &resp, nil
}

func (svc *CatalogService) ListSubjects() ([]dto.SubjectResponse, error) {
	subjects, err := svc.repo.ListSubjects()
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	resp := make([]dto.SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		resp = append(resp, toSubjectResponse(s))
	}
	return resp, nil
}

// ==================== CHAPTERS ====================

func (svc *CatalogService) CreateChapter(req dto.CreateChapterRequest) (*dto.ChapterResponse, error) {
	if _, err := svc.repo.GetSubject(req.SubjectID); err != nil {
		return nil, svc.db.HandleError(err)
	}

	chapter := &model.Chapter{
		SubjectID:   req.SubjectID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Order:       req.Order,
	}
	if req.Test != nil {
		chapter.Test = model.ChapterTest{
			Enabled:           true,
			Title:             req.Test.Title,
			PassingPercentage: req.Test.PassingPercentage,
			AttemptsAllowed:   req.Test.AttemptsAllowed,
		}
	}

	if err := svc.repo.CreateChapter(chapter); err != nil {
		return nil, svc.db.HandleError(err)
	}
	resp := toChapterResponse(*chapter, 0)
	return &resp, nil
}

func (svc *CatalogService) GetChapter(chapterID string) (*dto.ChapterResponse, error) {
	chapter, err := svc.repo.GetChapter(chapterID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	counts, err := svc.repo.CountLecturesByChapter([]string{chapter.ID})
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	resp := toChapterResponse(*chapter, counts[chapter.ID])
	return &resp, nil
}

func (svc *CatalogService) ListChapters(subjectID string) ([]dto.ChapterResponse, error) {
	chapters, err := svc.repo.ListChapters(subjectID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	ids := make([]string, 0, len(chapters))
	for _, c := range chapters {
		ids = append(ids, c.ID)
	}
	counts, err := svc.repo.CountLecturesByChapter(ids)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	resp := make([]dto.ChapterResponse, 0, len(chapters))
	for _, c := range chapters {
		resp = append(resp, toChapterResponse(c, counts[c.ID]))
	}
	return resp, nil
}

// ==================== LECTURES ====================

func (svc *CatalogService) CreateLecture(ctx context.Context, req dto.CreateLectureRequest) (*dto.LectureResponse, error) {
	if _, err := svc.repo.GetChapter(req.ChapterID); err != nil {
		return nil, svc.db.HandleError(err)
	}

	lecture := &model.Lecture{
		ChapterID:         req.ChapterID,
		Title:             strings.TrimSpace(req.Title),
		Order:             req.Order,
		EstimatedDuration: req.EstimatedDuration,
		ContentType:       req.ContentType,
		VideoURL:          req.VideoURL,
		Content:           req.Content,
	}
	if err := svc.repo.CreateLecture(lecture); err != nil {
		return nil, svc.db.HandleError(err)
	}

	resp := svc.toLectureResponse(ctx, *lecture)
	return &resp, nil
}

// GetLecture returns the lecture. Students only get lectures they have
// unlocked.
func (svc *CatalogService) GetLecture(ctx context.Context, actor shared.Actor, lectureID string) (*dto.LectureResponse, error) {
	lecture, err := svc.repo.GetLecture(lectureID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}
	if actor.Role == shared.RoleStudent {
		accessible, err := lectureAccessible(svc.repo, svc.progressRepo, actor.ID, lecture)
		if err != nil {
			return nil, svc.db.HandleError(err)
		}
		if !accessible {
			return nil, shared.NewForbiddenError(errLectureLocked, "Lecture is locked")
		}
	}
	resp := svc.toLectureResponse(ctx, *lecture)
	return &resp, nil
}

// UploadLectureVideo stores the file in object storage and points the
// lecture at it, replacing any previous upload.
func (svc *CatalogService) UploadLectureVideo(ctx context.Context, lectureID, filename string, reader io.Reader, size int64, contentType string) (*dto.MediaUploadResponse, error) {
	if svc.storage == nil {
		return nil, shared.NewAppError(http.StatusServiceUnavailable, errNoObjectStorage, "Video storage unavailable")
	}
	if !strings.HasPrefix(contentType, "video/") {
		return nil, shared.NewBadRequestError(errNotAVideo, "Only video files can be uploaded")
	}

	lecture, err := svc.repo.GetLecture(lectureID)
	if err != nil {
		return nil, svc.db.HandleError(err)
	}

	id, _ := uuid.NewV7()
	objectName := path.Join("lectures", lecture.ID, id.String()+strings.ToLower(path.Ext(filename)))

	info, err := svc.storage.UploadFile(ctx, objectName, reader, size, contentType)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to upload video")
	}

	previous := lecture.VideoObject
	lecture.VideoObject = objectName
	lecture.ContentType = shared.ContentTypeVideo
	if err := svc.repo.UpdateLecture(lecture); err != nil {
		if delErr := svc.storage.DeleteFile(ctx, objectName); delErr != nil {
			log.WithFields(log.Fields{"lecture_id": lecture.ID, "object": objectName}).
				WithError(delErr).Warn("Failed to delete orphaned lecture video")
		}
		return nil, svc.db.HandleError(err)
	}

	if previous != "" {
		if err := svc.storage.DeleteFile(ctx, previous); err != nil {
			log.WithFields(log.Fields{"lecture_id": lecture.ID, "object": previous}).
				WithError(err).Warn("Failed to delete replaced lecture video")
		}
	}

	url, err := svc.storage.GetFileURL(ctx, objectName, videoURLExpiry)
	if err != nil {
		log.WithFields(log.Fields{"lecture_id": lecture.ID, "object": objectName}).
			WithError(err).Warn("Failed to presign uploaded lecture video")
	}
	return &dto.MediaUploadResponse{
		LectureID:   lecture.ID,
		ObjectName:  objectName,
		Size:        info.Size,
		ContentType: contentType,
		URL:         url,
	}, nil
}

func (svc *CatalogService) toLectureResponse(ctx context.Context, l model.Lecture) dto.LectureResponse {
	resp := toLectureResponse(l)
	if l.VideoObject != "" && svc.storage != nil {
		url, err := svc.storage.GetFileURL(ctx, l.VideoObject, videoURLExpiry)
		if err != nil {
			log.WithField("lecture_id", l.ID).WithError(err).Warn("Failed to presign lecture video")
		} else {
			resp.VideoURL = url
		}
	}
	return resp
}

// ==================== MAPPERS ====================

func toSubjectResponse(s model.Subject) dto.SubjectResponse {
	return dto.SubjectResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Order:       s.Order,
	}
}

func toChapterResponse(c model.Chapter, lectureCount int) dto.ChapterResponse {
	resp := dto.ChapterResponse{
		ID:           c.ID,
		SubjectID:    c.SubjectID,
		Title:        c.Title,
		Description:  c.Description,
		Order:        c.Order,
		LectureCount: lectureCount,
	}
	if c.Test.Enabled {
		resp.Test = &dto.ChapterTestDescriptor{
			Title:             c.Test.Title,
			PassingPercentage: c.Test.PassingPercentage,
			AttemptsAllowed:   c.Test.AttemptsAllowed,
		}
	}
	return resp
}

func toLectureResponse(l model.Lecture) dto.LectureResponse {
	return dto.LectureResponse{
		ID:                l.ID,
		ChapterID:         l.ChapterID,
		Title:             l.Title,
		Order:             l.Order,
		EstimatedDuration: l.EstimatedDuration,
		ContentType:       l.ContentType,
		VideoURL:          l.VideoURL,
		Content:           l.Content,
	}
}
