// Package services – StatusService
//
// This file implements the webhook status read model used by the admin
// surface: when the last message was processed, how many arrived in the past
// 24 hours, and whether the messaging instance is currently connected.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/assistec/go-whats-backend/internal/domain"
	"github.com/assistec/go-whats-backend/internal/repo"
	"github.com/assistec/go-whats-backend/internal/whatsapp"
)

// statusWindow is the lookback for the message counter.
const statusWindow = 24 * time.Hour

// InstanceProber reports the messaging-platform connection state.
type InstanceProber interface {
	InstanceStatus(ctx context.Context) whatsapp.InstanceState
}

// ProberFactory builds an InstanceProber from the settings row.
type ProberFactory func(s *domain.Settings) InstanceProber

// WebhookStatus is the admin-facing health snapshot.
type WebhookStatus struct {
	Status       string                 `json:"status"` // active|error
	Instance     whatsapp.InstanceState `json:"instance"`
	LastMessage  *time.Time             `json:"last_message,omitempty"`
	MessageCount int64                  `json:"message_count_24h"`
}

// StatusService aggregates log statistics and instance state.
type StatusService struct {
	DB        *gorm.DB
	NewProber ProberFactory
}

// WebhookStatus returns the current snapshot. A stats failure degrades the
// status to "error" instead of failing the request; an unreadable settings
// row reports the instance as errored.
func (s *StatusService) WebhookStatus(ctx context.Context) WebhookStatus {
	out := WebhookStatus{Status: "active", Instance: whatsapp.StateError}

	last, count, err := repo.MessageLogStats(ctx, s.DB, statusWindow)
	if err != nil {
		out.Status = "error"
	} else {
		out.LastMessage = last
		out.MessageCount = count
	}

	if settings, err := repo.GetSettings(ctx, s.DB); err == nil {
		out.Instance = s.NewProber(settings).InstanceStatus(ctx)
	}
	return out
}
