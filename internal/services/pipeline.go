// Package services – PipelineService
//
// This file implements the message-intent-routing pipeline: the single
// orchestrator behind both the HTTP webhook handler and any in-process
// caller. For every inbound message it checks eligibility, loads the
// singleton settings row, classifies the message, routes to either the
// catalog/product path or the conversational path, sends the reply over the
// transport, and appends exactly one log row.
//
// Failure policy (availability over observability): every external failure
// is handled at its local boundary and converted to a safe fallback.
// Missing/disabled settings drop the message silently, an unavailable
// analyzer routes to the conversational path, a responder or catalog failure
// yields the fixed error/not-found template, and a failed send records a NULL
// response. Nothing propagates to crash the invocation; operators see
// failures only in the structured server logs and the outcome counter.
//
// Deliveries are processed at-least-once: a replayed webhook is reprocessed
// and re-logged as a new row. There is no idempotency key on purpose.
package services

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/assistec/go-whats-backend/internal/ai"
	"github.com/assistec/go-whats-backend/internal/catalog"
	"github.com/assistec/go-whats-backend/internal/domain"
	"github.com/assistec/go-whats-backend/internal/repo"
	"github.com/assistec/go-whats-backend/internal/whatsapp"
)

// Outcome labels the terminal state of one pipeline invocation.
type Outcome string

const (
	OutcomeIneligible Outcome = "ineligible"  // self-sent, group, or empty text
	OutcomeNoSettings Outcome = "no_settings" // settings row missing or unreadable
	OutcomeDisabled   Outcome = "ai_disabled" // master switch off
	OutcomeReplied    Outcome = "replied"     // reply sent and logged
	OutcomeSendFailed Outcome = "send_failed" // reply generated, transport send failed
)

// pipelineMessages counts invocations by terminal outcome.
var pipelineMessages = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "pipeline_messages_total",
		Help: "Total number of webhook messages processed, by outcome.",
	},
	[]string{"outcome"},
)

func init() {
	prometheus.MustRegister(pipelineMessages)
}

// Analyzer classifies a message for product intent.
type Analyzer interface {
	AnalyzeMessage(ctx context.Context, message string) (ai.IntentAnalysis, error)
}

// Responder generates a free-form conversational reply.
type Responder interface {
	GenerateReply(ctx context.Context, message string, rc ai.ReplyContext) (string, error)
}

// Transport delivers outbound messages and presence updates.
type Transport interface {
	SendText(ctx context.Context, number, text string) error
	SendTyping(ctx context.Context, number string) error
}

// AIFactory builds the analyzer/responder pair from the settings row.
// Credentials live in settings, so clients are constructed per invocation.
type AIFactory func(s *domain.Settings) (Analyzer, Responder)

// TransportFactory builds the messaging transport from the settings row.
type TransportFactory func(s *domain.Settings) Transport

// Result reports what one invocation did. Reply is empty unless a reply was
// generated (sent or not).
type Result struct {
	Outcome Outcome
	Reply   string
}

// PipelineService wires the pipeline's dependencies. All components receive
// the Settings value from here; none fetches configuration on its own.
type PipelineService struct {
	DB           *gorm.DB
	NewAI        AIFactory
	NewTransport TransportFactory

	// IntentThreshold gates the product path (confidence must exceed it).
	IntentThreshold float64
	// ContextThreshold gates the "no products found" hint on the
	// conversational path.
	ContextThreshold float64
}

// Process runs the full pipeline for one inbound message. It never returns
// an error for upstream failures, only for programmer-level misuse (nil
// dependencies).
func (s *PipelineService) Process(ctx context.Context, msg whatsapp.WebhookMessage) Result {
	tr := otel.Tracer("services/PipelineService")
	ctx, span := tr.Start(ctx, "Process",
		trace.WithAttributes(attribute.String("remote_jid", msg.Key.RemoteJID)),
	)
	defer span.End()

	if !whatsapp.IsEligible(msg) {
		return s.done(span, Result{Outcome: OutcomeIneligible})
	}

	settings, err := repo.GetSettings(ctx, s.DB)
	if err != nil {
		log.Error().Err(err).Msg("pipeline: settings unavailable, dropping message")
		return s.done(span, Result{Outcome: OutcomeNoSettings})
	}
	if !settings.AIEnabled {
		log.Debug().Msg("pipeline: ai disabled, ignoring message")
		return s.done(span, Result{Outcome: OutcomeDisabled})
	}

	analyzer, responder := s.NewAI(settings)
	transport := s.NewTransport(settings)

	text := whatsapp.ExtractMessageText(msg)
	number := whatsapp.ExtractUserNumber(msg)
	userName := msg.PushName
	if userName == "" {
		userName = "Cliente"
	}

	log.Info().
		Str("user", number).
		Str("push_name", userName).
		Msg("pipeline: processing message")

	// Best effort. Transport failures here do not abort the invocation.
	if err := transport.SendTyping(ctx, number); err != nil {
		log.Warn().Err(err).Str("user", number).Msg("pipeline: typing indicator failed")
	}

	reply := s.buildReply(ctx, settings, analyzer, responder, text, userName)

	sendErr := transport.SendText(ctx, number, reply)
	if sendErr != nil {
		log.Error().Err(sendErr).Str("user", number).Msg("pipeline: send failed")
	}

	// The log row always records the inbound text; the outbound text only
	// when the send succeeded.
	var logged *string
	if sendErr == nil {
		logged = &reply
	}
	if _, err := repo.CreateMessageLog(ctx, s.DB, number, text, logged); err != nil {
		log.Error().Err(err).Str("user", number).Msg("pipeline: log insert failed")
	}

	if sendErr != nil {
		return s.done(span, Result{Outcome: OutcomeSendFailed, Reply: reply})
	}
	return s.done(span, Result{Outcome: OutcomeReplied, Reply: reply})
}

// buildReply runs the analyze → branch → format sequence and always returns
// a sendable reply string.
func (s *PipelineService) buildReply(ctx context.Context, settings *domain.Settings, analyzer Analyzer, responder Responder, text, userName string) string {
	analysis, err := analyzer.AnalyzeMessage(ctx, text)
	analyzerDown := err != nil
	if analyzerDown {
		// Deliberate fallback, distinguishable in logs from a genuine
		// low-confidence classification.
		log.Warn().Err(err).Msg("pipeline: analyzer unavailable, using conversational path")
	} else {
		log.Debug().
			Bool("product_intent", analysis.HasProductIntent).
			Float64("confidence", analysis.Confidence).
			Str("model", analysis.ExtractedModel).
			Str("part", analysis.ExtractedPart).
			Msg("pipeline: intent analysis")
	}

	if !analyzerDown && analysis.HasProductIntent && analysis.Confidence > s.IntentThreshold {
		model := catalog.NormalizeSearchTerm(catalog.NormalizeModel(analysis.ExtractedModel))
		part := catalog.NormalizeSearchTerm(catalog.NormalizePartType(analysis.ExtractedPart))

		products, err := repo.SearchProducts(ctx, s.DB, model, part)
		if err != nil {
			// Query failure reads as "nothing in stock"; server log only.
			log.Error().Err(err).Msg("pipeline: catalog search failed")
			products = nil
		}
		if len(products) > 0 {
			return FormatProductResponse(products[0])
		}
		return FormatNotFoundResponse(settings.AIName)
	}

	rc := ai.ReplyContext{
		UserName:        userName,
		AIName:          settings.AIName,
		NoProductsFound: !analyzerDown && analysis.HasProductIntent && analysis.Confidence > s.ContextThreshold,
	}
	reply, err := responder.GenerateReply(ctx, text, rc)
	if err != nil {
		log.Error().Err(err).Msg("pipeline: reply generation failed")
		return FormatErrorResponse(settings.AIName)
	}
	return reply
}

func (s *PipelineService) done(span trace.Span, r Result) Result {
	span.SetAttributes(attribute.String("outcome", string(r.Outcome)))
	pipelineMessages.WithLabelValues(string(r.Outcome)).Inc()
	return r
}
