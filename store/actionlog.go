package store

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jwchoi684/rg-manager/models"
)

// AppendLog records an audit entry. Fire-and-forget: a failing write is
// logged and swallowed so it can never affect the operation that caused it.
func AppendLog(db *gorm.DB, username, action, target, details string) {
	rec := models.ActionLog{
		Username: username,
		Action:   action,
		Target:   target,
		Details:  details,
	}
	if err := db.Create(&rec).Error; err != nil {
		zap.L().Warn("action log write failed",
			zap.String("action", action),
			zap.String("username", username),
			zap.Error(err))
	}
}

func ListLogs(db *gorm.DB, limit int) ([]models.ActionLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 200
	}
	var rows []models.ActionLog
	err := db.Order("id DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
