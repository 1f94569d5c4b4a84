package services

import (
	"context"
	"testing"
	"time"

	"github.com/assistec/go-whats-backend/internal/domain"
	"github.com/assistec/go-whats-backend/internal/whatsapp"
)

type fakeProber struct {
	state whatsapp.InstanceState
}

func (f fakeProber) InstanceStatus(ctx context.Context) whatsapp.InstanceState { return f.state }

func TestWebhookStatus_Healthy(t *testing.T) {
	db := newPipelineDB(t)
	enableSettings(t, db)
	if err := db.Create(&domain.MessageLog{
		ID: "a", UserPhone: "551", Message: "m",
		Timestamp: time.Now().UTC().Add(-time.Hour),
	}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := &StatusService{
		DB:        db,
		NewProber: func(*domain.Settings) InstanceProber { return fakeProber{whatsapp.StateConnected} },
	}

	got := svc.WebhookStatus(context.Background())
	if got.Status != "active" {
		t.Fatalf("status = %q", got.Status)
	}
	if got.Instance != whatsapp.StateConnected {
		t.Fatalf("instance = %q", got.Instance)
	}
	if got.LastMessage == nil || got.MessageCount != 1 {
		t.Fatalf("stats missing: %+v", got)
	}
}

func TestWebhookStatus_NoSettingsReportsInstanceError(t *testing.T) {
	db := newPipelineDB(t)

	svc := &StatusService{
		DB:        db,
		NewProber: func(*domain.Settings) InstanceProber { return fakeProber{whatsapp.StateConnected} },
	}

	got := svc.WebhookStatus(context.Background())
	if got.Status != "active" {
		t.Fatalf("status = %q; stats are still readable", got.Status)
	}
	if got.Instance != whatsapp.StateError {
		t.Fatalf("instance = %q; want error without settings", got.Instance)
	}
}
