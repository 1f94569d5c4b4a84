// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the append-only
// MessageLog table.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/assistec/go-whats-backend/internal/domain"
)

// CreateMessageLog appends a log row for one processed inbound message.
// response is nil when no reply was sent or the transport send failed.
// Replayed webhook deliveries produce independent rows; there is no
// deduplication key.
func CreateMessageLog(ctx context.Context, db *gorm.DB, userPhone, message string, response *string) (*domain.MessageLog, error) {
	rec := &domain.MessageLog{
		ID:        uuid.NewString(),
		UserPhone: userPhone,
		Message:   message,
		Response:  response,
		Timestamp: time.Now().UTC(),
	}
	return rec, db.WithContext(ctx).Create(rec).Error
}

// CountMessageLogs uses a raw COUNT so a missing table surfaces as an error.
func CountMessageLogs(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Raw("SELECT COUNT(*) FROM logs_mensagens").Scan(&total).Error
	return total, err
}

// ListMessageLogsPage returns a page of log rows, newest first.
func ListMessageLogsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.MessageLog, error) {
	var out []domain.MessageLog
	err := db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// MessageLogStats returns the timestamp of the most recent log row (nil when
// the table is empty) and the number of rows within the given window ending
// now. Used by the webhook status endpoint.
func MessageLogStats(ctx context.Context, db *gorm.DB, window time.Duration) (last *time.Time, count int64, err error) {
	var rec domain.MessageLog
	res := db.WithContext(ctx).Order("timestamp DESC, id DESC").Limit(1).Find(&rec)
	if res.Error != nil {
		return nil, 0, res.Error
	}
	if res.RowsAffected > 0 {
		t := rec.Timestamp
		last = &t
	}

	since := time.Now().UTC().Add(-window)
	err = db.WithContext(ctx).Model(&domain.MessageLog{}).
		Where("timestamp >= ?", since).
		Count(&count).Error
	return last, count, err
}
