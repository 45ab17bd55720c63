package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lac-hong-legacy/lecture_api/model"
	"github.com/lac-hong-legacy/lecture_api/shared"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DATABASE_SVC is registered by either the postgres or the sqlite service,
// depending on DB_DRIVER.
const DATABASE_SVC = "database_svc"

type DatabaseProvider interface {
	Db() *gorm.DB
	HandleError(err error) error
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(model.Models()...)
}

// handleDatabaseError maps gorm and driver errors to an AppError carrying
// the HTTP status the handlers should answer with.
func handleDatabaseError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := shared.GetAppError(err); ok {
		return err
	}

	var statusCode int
	var errorType string

	msg := err.Error()
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	case errors.Is(err, gorm.ErrInvalidTransaction):
		statusCode = http.StatusInternalServerError
		errorType = "TRANSACTION_ERROR"
	case strings.Contains(msg, "duplicate key value violates unique constraint"),
		strings.Contains(msg, "UNIQUE constraint failed"):
		statusCode = http.StatusConflict
		errorType = "UNIQUE_CONSTRAINT"
	case strings.Contains(msg, "connection refused"):
		statusCode = http.StatusServiceUnavailable
		errorType = "DATABASE_CONNECTION_ERROR"
	default:
		statusCode = http.StatusInternalServerError
		errorType = "INTERNAL_ERROR"
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       msg,
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
		return shared.NewAppError(statusCode, err, "Database error")
	}
	logEntry.Warn("Database operation failed")

	switch statusCode {
	case http.StatusNotFound:
		return shared.NewNotFoundError(err, "Record not found")
	case http.StatusConflict:
		return shared.NewConflictError(err, "Record already exists")
	default:
		return shared.NewAppError(statusCode, err, errorType)
	}
}
