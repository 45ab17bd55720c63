package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	log "github.com/sirupsen/logrus"

	"github.com/lac-hong-legacy/lecture_api/docs"
	"github.com/lac-hong-legacy/lecture_api/middleware"
	"github.com/lac-hong-legacy/lecture_api/services/handlers"
	"github.com/lac-hong-legacy/lecture_api/shared"
)

type HttpService struct {
	context.DefaultService

	authSvc      *AuthMiddleware
	rateLimitSvc *RateLimitService
	catalogSvc   *CatalogService
	progressSvc  *ProgressService
	profileSvc   *ProfileService

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func NewHttpService(auth *AuthMiddleware, rateLimit *RateLimitService, catalog *CatalogService, progress *ProgressService, profile *ProfileService) *HttpService {
	svc := &HttpService{
		authSvc:      auth,
		rateLimitSvc: rateLimit,
		catalogSvc:   catalog,
		progressSvc:  progress,
		profileSvc:   profile,
	}
	svc.app = svc.newApp()
	return svc
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	svc.authSvc = svc.Service(AUTH_MIDDLEWARE_SVC).(*AuthMiddleware)
	svc.rateLimitSvc = svc.Service(RATE_LIMIT_SVC).(*RateLimitService)
	svc.catalogSvc = svc.Service(CATALOG_SVC).(*CatalogService)
	svc.progressSvc = svc.Service(PROGRESS_SVC).(*ProgressService)
	svc.profileSvc = svc.Service(PROFILE_SVC).(*ProfileService)

	svc.app = svc.newApp()

	log.WithField("port", svc.port).Info("HTTP server listening")
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// App exposes the router, mainly for app.Test in tests.
func (svc *HttpService) App() *fiber.App {
	return svc.app
}

func (svc *HttpService) newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               SERVICE_NAME,
		DisableStartupMessage: os.Getenv("LOG_LEVEL") != "TRACE",
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		BodyLimit:             512 * 1024 * 1024,
		ErrorHandler:          svc.HandleError,
	})
	docs.SwaggerInfo.BasePath = ""

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(MonitoringMiddleware())
	app.Use(middleware.RequestLogger())
	app.Use(svc.rateLimitSvc.IPRateLimit())

	//Validation endpoints
	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	svc.registerRoutes(v1)

	app.Use(func(c *fiber.Ctx) error {
		return shared.NewNotFoundError(nil, "Page not found")
	})

	return app
}

func (svc *HttpService) registerRoutes(v1 fiber.Router) {
	auth := svc.authSvc.RequiredAuth()
	adminOnly := svc.authSvc.RequireRole(shared.RoleAdmin)
	limit := svc.rateLimitSvc.UserBasedRateLimit

	catalogHandler := handlers.NewCatalogHandler(svc.catalogSvc)
	progressHandler := handlers.NewProgressHandler(svc.progressSvc)
	profileHandler := handlers.NewProfileHandler(svc.profileSvc)

	// ==================== PROFILES ====================
	profiles := v1.Group("/profiles", auth)
	profiles.Get("/:userId", profileHandler.GetProfile)
	profiles.Patch("/:userId", limit(EndpointProfileUpdate), profileHandler.UpdateProfile)
	profiles.Get("/:userId/students", profileHandler.ListStudents)

	// ==================== CATALOG ====================
	subjects := v1.Group("/subjects", auth)
	subjects.Get("/", catalogHandler.ListSubjects)
	subjects.Post("/", adminOnly, catalogHandler.CreateSubject)

	chapters := v1.Group("/chapters", auth)
	chapters.Get("/", catalogHandler.ListChapters)
	chapters.Post("/", adminOnly, catalogHandler.CreateChapter)
	chapters.Get("/:chapterId", catalogHandler.GetChapter)
	chapters.Get("/:chapterId/test", progressHandler.GetChapterTest)
	chapters.Post("/:chapterId/test/attempts", limit(EndpointTestAttempt), progressHandler.SubmitTestAttempt)

	// ==================== LECTURES ====================
	lectures := v1.Group("/lectures", auth)
	lectures.Get("/byChapter/:chapterId", progressHandler.GetChapterLectures)
	lectures.Post("/", adminOnly, catalogHandler.CreateLecture)
	lectures.Get("/:id", catalogHandler.GetLecture)
	lectures.Post("/:id/video", adminOnly, catalogHandler.UploadLectureVideo)
	lectures.Get("/:id/progress", progressHandler.GetLectureProgress)
	lectures.Post("/:id/progress", limit(EndpointProgressUpdate), progressHandler.UpdateProgress)
	lectures.Post("/:id/complete", limit(EndpointLectureDone), progressHandler.CompleteLecture)

	// ==================== STUDENT PROGRESS ====================
	v1.Get("/student-progress/:studentId/overview", auth, progressHandler.GetOverview)

	// ==================== ADMIN ====================
	admin := v1.Group("/admin", auth, adminOnly)
	admin.Get("/rate-limits", svc.rateLimitSvc.GetRateLimitStats())
	admin.Delete("/rate-limits/:identifier/:endpointType", svc.rateLimitSvc.RemoveRateLimit())
	admin.Patch("/rate-limits/:endpointType", svc.rateLimitSvc.UpdateConfig())
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

// HandleError renders errors returned by handlers.
func (svc *HttpService) HandleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		if appErr.StatusCode >= fiber.StatusInternalServerError {
			log.WithFields(log.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Error("Request failed")
		}
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.WithFields(log.Fields{
		"path":  c.Path(),
		"error": err.Error(),
	}).Error("Unhandled error")
	return shared.ResponseInternalError(c, nil)
}
