package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lac-hong-legacy/lecture_api/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	MONITORING_SVC          = "monitoring_svc"
	SERVICE_NAME            = "lecture_api"
	DEFAULT_PROMETHEUS_PORT = 2112
)

// HTTP Metrics
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	httpRequestsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_active",
			Help: "Number of active concurrent HTTP requests",
		},
		[]string{"endpoint", "method"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Progress Metrics
var (
	progressUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "progress_updates_total",
			Help: "Progress reports received, by merge outcome",
		},
		[]string{"outcome"},
	)

	lectureCompletionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lecture_completions_total",
			Help: "Lectures marked completed for the first time",
		},
	)

	chapterTestAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chapter_test_attempts_total",
			Help: "Chapter test attempts, by result",
		},
		[]string{"passed"},
	)

	overviewCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "overview_cache_total",
			Help: "Overview cache lookups, by result",
		},
		[]string{"result"},
	)
)

type MonitoringService struct {
	context.DefaultService

	port     int
	register *prometheus.Registry
	server   *fiber.App
}

func (svc MonitoringService) Id() string {
	return MONITORING_SVC
}

func (svc *MonitoringService) Configure(ctx *context.Context) error {
	port, err := strconv.Atoi(os.Getenv("PROMETHEUS_PORT"))
	if err != nil {
		port = DEFAULT_PROMETHEUS_PORT
	}
	svc.port = port

	return svc.DefaultService.Configure(ctx)
}

func (svc *MonitoringService) Start() error {
	reg := prometheus.NewRegistry()

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	reg.MustRegister(
		httpRequestsTotal,
		httpRequestsActive,
		httpRequestDurationSeconds,
		progressUpdatesTotal,
		lectureCompletionsTotal,
		chapterTestAttemptsTotal,
		overviewCacheTotal,
	)

	svc.register = reg

	svc.server = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		},
	})
	svc.server.Use(recover.New())

	svc.server.Get("/metrics", svc.metricsHandler)
	svc.server.Get("/health", svc.healthHandler)

	go func() {
		if err := svc.server.Listen(fmt.Sprintf(":%v", svc.port)); err != nil {
			log.Error().Err(err).Msg("Prometheus metrics server stopped")
		}
	}()

	log.Info().Int("port", svc.port).Msg("Prometheus metrics server started")
	return nil
}

func (svc *MonitoringService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *MonitoringService) metricsHandler(c *fiber.Ctx) error {
	handler := promhttp.HandlerFor(svc.register, promhttp.HandlerOpts{})
	return adaptor.HTTPHandler(handler)(c)
}

func (svc *MonitoringService) healthHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "healthy",
		"service":   SERVICE_NAME,
		"timestamp": time.Now().Unix(),
	})
}

// The record helpers are safe on a nil receiver so domain services can run
// without monitoring in tests.

func (svc *MonitoringService) RecordProgressUpdate(clamped bool) {
	if svc == nil {
		return
	}
	outcome := "applied"
	if clamped {
		outcome = "clamped"
	}
	progressUpdatesTotal.WithLabelValues(outcome).Inc()
}

func (svc *MonitoringService) RecordCompletion() {
	if svc == nil {
		return
	}
	lectureCompletionsTotal.Inc()
}

func (svc *MonitoringService) RecordTestAttempt(passed bool) {
	if svc == nil {
		return
	}
	chapterTestAttemptsTotal.WithLabelValues(strconv.FormatBool(passed)).Inc()
}

func (svc *MonitoringService) RecordOverviewCache(hit bool) {
	if svc == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	overviewCacheTotal.WithLabelValues(result).Inc()
}

// MonitoringMiddleware creates a Fiber middleware for monitoring HTTP requests
func MonitoringMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		endpoint := c.Route().Path
		method := c.Method()

		httpRequestsActive.WithLabelValues(endpoint, method).Inc()
		defer httpRequestsActive.WithLabelValues(endpoint, method).Dec()

		err := c.Next()

		// the route is only resolved after c.Next
		if route := c.Route().Path; route != "" {
			endpoint = route
		}
		code := c.Response().StatusCode()
		if err != nil {
			code = shared.ErrorStatus(err)
		}
		status := strconv.Itoa(code)
		httpRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
		httpRequestDurationSeconds.WithLabelValues(endpoint, method, status).Observe(time.Since(start).Seconds())

		return err
	}
}
