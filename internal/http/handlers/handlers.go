package handlers

import (
	"gorm.io/gorm"

	"github.com/assistec/go-whats-backend/internal/ai"
	"github.com/assistec/go-whats-backend/internal/domain"
	"github.com/assistec/go-whats-backend/internal/services"
)

// AIClientFactory builds an AI client from the settings row; used by the
// connection-test endpoint.
type AIClientFactory func(s *domain.Settings) *ai.Client

// Handlers bundles the dependencies shared by all endpoint implementations.
// The DB handle is used directly for the thin admin CRUD; the pipeline and
// status services own all multi-step logic.
type Handlers struct {
	db       *gorm.DB
	pipeline *services.PipelineService
	status   *services.StatusService
	newAI    AIClientFactory
}

// New constructs the handler set.
func New(db *gorm.DB, pipeline *services.PipelineService, status *services.StatusService, newAI AIClientFactory) *Handlers {
	return &Handlers{db: db, pipeline: pipeline, status: status, newAI: newAI}
}
