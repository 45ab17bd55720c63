package services

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/lac-hong-legacy/lecture_api/dto"
	"github.com/lac-hong-legacy/lecture_api/model"
	"github.com/lac-hong-legacy/lecture_api/services/repositories"
	"github.com/lac-hong-legacy/lecture_api/shared"
	log "github.com/sirupsen/logrus"
)

const (
	EndpointProgressUpdate = "progress_update"
	EndpointLectureDone    = "lecture_complete"
	EndpointTestAttempt    = "test_attempt"
	EndpointProfileUpdate  = "profile_update"
	EndpointAPIGeneral     = "api_general"
)

type RateLimitService struct {
	context.DefaultService

	configs map[string]*RateLimitConfig
	mutex   sync.RWMutex

	// serialises the read-modify-write of a window within this process
	windowMu sync.Mutex

	repo   *repositories.RateLimitRepository
	now    func() time.Time
	closed chan struct{}
}

// RateLimitConfig represents rate limiting configuration
type RateLimitConfig struct {
	EndpointType string        `json:"endpoint_type"`
	MaxRequests  int           `json:"max_requests"`
	WindowSize   time.Duration `json:"window_size"`
	BlockTime    time.Duration `json:"block_time"`
	Description  string        `json:"description"`
	IsActive     bool          `json:"is_active"`
}

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func NewRateLimitService(repo *repositories.RateLimitRepository, now func() time.Time) *RateLimitService {
	if now == nil {
		now = time.Now
	}
	svc := &RateLimitService{repo: repo, now: now}
	svc.initDefaultConfigs()
	return svc
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.configs = make(map[string]*RateLimitConfig)
	svc.now = time.Now
	svc.closed = make(chan struct{})
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	db := svc.Service(DATABASE_SVC).(DatabaseProvider)
	svc.repo = repositories.NewRateLimitRepository(db.Db())
	svc.initDefaultConfigs()

	go svc.startCleanupJob()

	return nil
}

func (svc *RateLimitService) Shutdown() {
	if svc.closed != nil {
		close(svc.closed)
	}
}

// ==================== CONFIGURATION MANAGEMENT ====================

func (svc *RateLimitService) initDefaultConfigs() {
	svc.mutex.Lock()
	defer svc.mutex.Unlock()

	svc.configs = map[string]*RateLimitConfig{
		EndpointProgressUpdate: {
			EndpointType: EndpointProgressUpdate,
			MaxRequests:  120,
			WindowSize:   time.Minute,
			BlockTime:    time.Minute,
			Description:  "Progress reports per student",
			IsActive:     true,
		},
		EndpointLectureDone: {
			EndpointType: EndpointLectureDone,
			MaxRequests:  30,
			WindowSize:   time.Hour,
			BlockTime:    30 * time.Minute,
			Description:  "Lecture completions per student",
			IsActive:     true,
		},
		EndpointTestAttempt: {
			EndpointType: EndpointTestAttempt,
			MaxRequests:  10,
			WindowSize:   time.Hour,
			BlockTime:    time.Hour,
			Description:  "Chapter test submissions per student",
			IsActive:     true,
		},
		EndpointProfileUpdate: {
			EndpointType: EndpointProfileUpdate,
			MaxRequests:  10,
			WindowSize:   time.Hour,
			BlockTime:    30 * time.Minute,
			Description:  "Profile update rate limit",
			IsActive:     true,
		},
		EndpointAPIGeneral: {
			EndpointType: EndpointAPIGeneral,
			MaxRequests:  1000,
			WindowSize:   time.Hour,
			BlockTime:    time.Hour,
			Description:  "General API rate limit per IP",
			IsActive:     true,
		},
	}
}

func (svc *RateLimitService) getConfig(endpointType string) (RateLimitConfig, bool) {
	svc.mutex.RLock()
	defer svc.mutex.RUnlock()
	config, exists := svc.configs[endpointType]
	if !exists {
		return RateLimitConfig{}, false
	}
	return *config, true
}

// ==================== CORE RATE LIMITING LOGIC ====================

func (svc *RateLimitService) IsAllowed(identifier, endpointType string) (bool, *dto.RateLimitInfo, error) {
	config, exists := svc.getConfig(endpointType)
	if !exists || !config.IsActive {
		return true, &dto.RateLimitInfo{
			Allowed:   true,
			Limit:     -1,
			Remaining: -1,
		}, nil
	}

	svc.windowMu.Lock()
	defer svc.windowMu.Unlock()

	now := svc.now()

	rateLimit, err := svc.repo.GetRateLimit(identifier, endpointType)
	if err != nil {
		return false, nil, err
	}

	if rateLimit != nil && rateLimit.BlockedUntil != nil && now.Before(*rateLimit.BlockedUntil) {
		return false, &dto.RateLimitInfo{
			Allowed:      false,
			Limit:        config.MaxRequests,
			Remaining:    0,
			ResetTime:    rateLimit.BlockedUntil,
			BlockedUntil: rateLimit.BlockedUntil,
		}, nil
	}

	// no window yet, or the previous one has expired
	if rateLimit == nil || !now.Before(rateLimit.WindowStart.Add(config.WindowSize)) {
		if rateLimit == nil {
			rateLimit = &model.RateLimit{
				Identifier:   identifier,
				EndpointType: endpointType,
				CreatedAt:    now,
			}
		}
		rateLimit.RequestCount = 1
		rateLimit.WindowStart = now
		rateLimit.BlockedUntil = nil
		rateLimit.UpdatedAt = now

		if err := svc.repo.SaveRateLimit(rateLimit); err != nil {
			return false, nil, err
		}

		resetTime := now.Add(config.WindowSize)
		return true, &dto.RateLimitInfo{
			Allowed:   true,
			Limit:     config.MaxRequests,
			Remaining: config.MaxRequests - 1,
			ResetTime: &resetTime,
		}, nil
	}

	if rateLimit.RequestCount >= config.MaxRequests {
		blockedUntil := now.Add(config.BlockTime)
		rateLimit.BlockedUntil = &blockedUntil
		rateLimit.UpdatedAt = now

		if err := svc.repo.SaveRateLimit(rateLimit); err != nil {
			return false, nil, err
		}

		return false, &dto.RateLimitInfo{
			Allowed:      false,
			Limit:        config.MaxRequests,
			Remaining:    0,
			ResetTime:    &blockedUntil,
			BlockedUntil: &blockedUntil,
		}, nil
	}

	rateLimit.RequestCount++
	rateLimit.UpdatedAt = now

	if err := svc.repo.SaveRateLimit(rateLimit); err != nil {
		return false, nil, err
	}

	resetTime := rateLimit.WindowStart.Add(config.WindowSize)
	return true, &dto.RateLimitInfo{
		Allowed:   true,
		Limit:     config.MaxRequests,
		Remaining: config.MaxRequests - rateLimit.RequestCount,
		ResetTime: &resetTime,
	}, nil
}

// ==================== MIDDLEWARE FUNCTIONS ====================

// IPRateLimit applies general rate limiting by IP address
func (svc *RateLimitService) IPRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return svc.check(c, getClientIP(c), EndpointAPIGeneral)
	}
}

// UserBasedRateLimit applies rate limiting based on the authenticated
// student, falling back to the client IP.
func (svc *RateLimitService) UserBasedRateLimit(endpointType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier, _ := c.Locals(shared.UserID).(string)
		if identifier == "" {
			identifier = getClientIP(c)
		}
		return svc.check(c, identifier, endpointType)
	}
}

func (svc *RateLimitService) check(c *fiber.Ctx, identifier, endpointType string) error {
	allowed, info, err := svc.IsAllowed(identifier, endpointType)
	if err != nil {
		// do not block users because the limiter itself failed
		log.WithFields(log.Fields{
			"endpoint_type": endpointType,
			"identifier":    identifier,
			"error":         err.Error(),
		}).Warn("Rate limit check failed")
		return c.Next()
	}

	svc.addRateLimitHeaders(c, info)

	if !allowed {
		return svc.handleRateLimitExceeded(c, endpointType, info)
	}

	return c.Next()
}

// ==================== HELPER FUNCTIONS ====================

func (svc *RateLimitService) addRateLimitHeaders(c *fiber.Ctx, info *dto.RateLimitInfo) {
	if info == nil {
		return
	}

	if info.Limit >= 0 {
		c.Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
	}

	if info.Remaining >= 0 {
		c.Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	}

	if info.ResetTime != nil {
		c.Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}

	if info.BlockedUntil != nil {
		retryAfter := int(info.BlockedUntil.Sub(svc.now()).Seconds())
		if retryAfter > 0 {
			c.Set("Retry-After", strconv.Itoa(retryAfter))
		}
	}
}

func (svc *RateLimitService) handleRateLimitExceeded(c *fiber.Ctx, endpointType string, info *dto.RateLimitInfo) error {
	message := getRateLimitMessage(endpointType)

	response := map[string]interface{}{
		"error":   "Rate limit exceeded",
		"message": message,
	}

	if info.BlockedUntil != nil {
		response["blocked_until"] = info.BlockedUntil.Unix()
		response["retry_after"] = int(info.BlockedUntil.Sub(svc.now()).Seconds())
	}

	return shared.ResponseJSON(c, http.StatusTooManyRequests, message, response)
}

func getRateLimitMessage(endpointType string) string {
	messages := map[string]string{
		EndpointProgressUpdate: "Too many progress reports. Please slow down.",
		EndpointLectureDone:    "Too many lecture completions. Please take a break.",
		EndpointTestAttempt:    "Too many test submissions. Please try again later.",
		EndpointProfileUpdate:  "Too many profile updates. Please try again later.",
		EndpointAPIGeneral:     "Too many requests. Please slow down.",
	}

	if message, exists := messages[endpointType]; exists {
		return message
	}

	return "Too many requests. Please try again later."
}

// ==================== UTILITY FUNCTIONS ====================

func getClientIP(c *fiber.Ctx) string {
	if forwarded := c.Get("X-Forwarded-For"); forwarded != "" {
		ip := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if ip != "" {
			return ip
		}
	}

	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	ip, _, err := net.SplitHostPort(c.Context().RemoteAddr().String())
	if err != nil {
		return c.Context().RemoteAddr().String()
	}

	return ip
}

// ==================== ADMIN FUNCTIONS ====================

// GetRateLimitStats godoc
// @Summary Rate limit statistics
// @Tags admin
// @Produce json
// @Security Bearer
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/rate-limits [get]
func (svc *RateLimitService) GetRateLimitStats() fiber.Handler {
	return func(c *fiber.Ctx) error {
		svc.mutex.RLock()
		configs := make(map[string]RateLimitConfig, len(svc.configs))
		for k, v := range svc.configs {
			configs[k] = *v
		}
		svc.mutex.RUnlock()

		now := svc.now()
		totalRecords, blockedRecords, err := svc.repo.Stats(now)
		if err != nil {
			return shared.ResponseInternalError(c, err)
		}

		stats := map[string]interface{}{
			"configs":         configs,
			"total_records":   totalRecords,
			"blocked_records": blockedRecords,
			"timestamp":       now,
		}

		return shared.ResponseJSON(c, http.StatusOK, "Rate limit statistics", stats)
	}
}

// RemoveRateLimit godoc
// @Summary Clear a rate limit window
// @Tags admin
// @Produce json
// @Security Bearer
// @Param identifier path string true "Student id or IP"
// @Param endpointType path string true "Endpoint type"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/rate-limits/{identifier}/{endpointType} [delete]
func (svc *RateLimitService) RemoveRateLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := c.Params("identifier")
		endpointType := c.Params("endpointType")

		if identifier == "" || endpointType == "" {
			return shared.ResponseJSON(c, http.StatusBadRequest, "Missing identifier or endpoint type", nil)
		}

		if err := svc.repo.DeleteRateLimit(identifier, endpointType); err != nil {
			return shared.ResponseInternalError(c, err)
		}

		message := fmt.Sprintf("Rate limit removed for %s/%s", identifier, endpointType)
		return shared.ResponseJSON(c, http.StatusOK, message, nil)
	}
}

// UpdateConfig godoc
// @Summary Update a rate limit configuration
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param endpointType path string true "Endpoint type"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/rate-limits/{endpointType} [patch]
func (svc *RateLimitService) UpdateConfig() fiber.Handler {
	return func(c *fiber.Ctx) error {
		endpointType := c.Params("endpointType")

		var req struct {
			MaxRequests int    `json:"max_requests"`
			WindowSize  string `json:"window_size"` // e.g. "1m", "1h"
			BlockTime   string `json:"block_time"`
			IsActive    *bool  `json:"is_active"`
		}

		if err := c.BodyParser(&req); err != nil {
			return shared.ResponseJSON(c, http.StatusBadRequest, "Invalid request body", err.Error())
		}

		svc.mutex.Lock()
		defer svc.mutex.Unlock()

		config, exists := svc.configs[endpointType]
		if !exists {
			return shared.ResponseJSON(c, http.StatusNotFound, "Endpoint type not found", nil)
		}

		if req.MaxRequests > 0 {
			config.MaxRequests = req.MaxRequests
		}

		if req.WindowSize != "" {
			if duration, err := time.ParseDuration(req.WindowSize); err == nil {
				config.WindowSize = duration
			}
		}

		if req.BlockTime != "" {
			if duration, err := time.ParseDuration(req.BlockTime); err == nil {
				config.BlockTime = duration
			}
		}

		if req.IsActive != nil {
			config.IsActive = *req.IsActive
		}

		return shared.ResponseJSON(c, http.StatusOK, "Configuration updated successfully", *config)
	}
}

// ==================== BACKGROUND JOBS ====================

func (svc *RateLimitService) CleanupOldRecords() error {
	removed, err := svc.repo.CleanupOldRecords(svc.now().Add(-24 * time.Hour))
	if err != nil {
		return err
	}
	log.WithField("removed", removed).Debug("Rate limit cleanup completed")
	return nil
}

func (svc *RateLimitService) startCleanupJob() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := svc.CleanupOldRecords(); err != nil {
				log.Printf("Rate limit cleanup error: %v", err)
			}
		case <-svc.closed:
			return
		}
	}
}
