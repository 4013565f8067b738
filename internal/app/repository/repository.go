package repository

import (
	"errors"

	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/internal/app/model"
	"github.com/AhmadBassamAlsayed/fodz-ma-sub002/pkg/logger"
	"gorm.io/gorm"
)

// logFindError logs a failed lookup. Missing rows are expected and stay at debug.
func logFindError(msg string, err error, fields map[string]interface{}) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Debug(msg+": not found", fields)
		return
	}
	logger.Error(msg, err, fields)
}

// withStatuses narrows query to the given statuses; none means any status.
func withStatuses(query *gorm.DB, column string, statuses []model.Status) *gorm.DB {
	if len(statuses) == 0 {
		return query
	}
	return query.Where(column+" IN ?", statuses)
}
