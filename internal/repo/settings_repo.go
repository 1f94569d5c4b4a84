// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the singleton
// Settings record.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/assistec/go-whats-backend/internal/domain"
)

// ErrNotFound indicates that the requested row does not exist.
var ErrNotFound = errors.New("not found")

// GetSettings fetches the singleton settings row. Returns ErrNotFound when
// the row has never been created.
func GetSettings(ctx context.Context, db *gorm.DB) (*domain.Settings, error) {
	var s domain.Settings
	err := db.WithContext(ctx).Order("id ASC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpsertSettings writes the singleton settings row, creating it on first use.
// Only the administrative surface calls this; the pipeline never mutates
// settings.
func UpsertSettings(ctx context.Context, db *gorm.DB, s *domain.Settings) error {
	var existing domain.Settings
	err := db.WithContext(ctx).Order("id ASC").First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return db.WithContext(ctx).Create(s).Error
	case err != nil:
		return err
	}
	s.ID = existing.ID
	return db.WithContext(ctx).Save(s).Error
}
