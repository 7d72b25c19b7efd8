// Package service orchestrates lead capture, qualification, AI
// generation and enrichment.
package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/events"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/domain"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/extractor"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/repository"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/scoring"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/recommend"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/ai/openai"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/apperr"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
)

// AIClient is the completion surface the service needs for lead
// generation and enrichment.
type AIClient interface {
	ChatCompletion(ctx context.Context, messages []openai.Message) (string, error)
}

// Store is the persistence surface used by the service.
type Store interface {
	Upsert(ctx context.Context, lead domain.Lead) (repository.Lead, error)
	List(ctx context.Context, limit int) ([]repository.Lead, error)
	SetQualification(ctx context.Context, id uuid.UUID, qualified bool, score int) error
	SaveGenerated(ctx context.Context, prospects []domain.GeneratedLead) ([]repository.GeneratedLead, error)
}

type Service struct {
	store     Store
	scorer    *scoring.Service
	ai        AIClient
	recs      *recommend.Service
	bus       events.Bus
	log       *logger.Logger
}

func New(store Store, scorer *scoring.Service, ai AIClient, recs *recommend.Service, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		scorer: scorer,
		ai:     ai,
		recs:   recs,
		bus:    bus,
		log:    log,
	}
}

// Criteria returns the active qualification criteria.
func (s *Service) Criteria() domain.QualificationCriteria {
	return domain.DefaultCriteria()
}

// Qualify scores a lead without persisting anything. A nil criteria
// falls back to the defaults.
func (s *Service) Qualify(lead domain.Lead, criteria *domain.QualificationCriteria) scoring.Result {
	effective := domain.DefaultCriteria()
	if criteria != nil {
		effective = *criteria
	}
	return s.scorer.Qualify(lead, effective)
}

// CreateAndQualify persists the lead and records its qualification
// outcome, publishing the capture and qualification events.
func (s *Service) CreateAndQualify(ctx context.Context, lead domain.Lead) (repository.Lead, scoring.Result, error) {
	if lead.Email == "" {
		return repository.Lead{}, scoring.Result{}, apperr.Validation("email is required")
	}

	stored, err := s.store.Upsert(ctx, lead)
	if err != nil {
		return repository.Lead{}, scoring.Result{}, fmt.Errorf("upsert lead: %w", err)
	}

	result := s.scorer.Qualify(stored.Domain(), domain.DefaultCriteria())
	if err := s.store.SetQualification(ctx, stored.ID, result.Qualified, result.Score); err != nil {
		return repository.Lead{}, scoring.Result{}, fmt.Errorf("record qualification: %w", err)
	}

	s.bus.Publish(ctx, events.LeadCaptured{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    stored.ID,
		Email:     stored.Email,
		FirstName: stored.FirstName,
		LastName:  stored.LastName,
		Company:   stored.Company,
		Source:    stored.Source,
		Message:   stored.Message,
	})
	if result.Qualified {
		s.bus.Publish(ctx, events.LeadQualified{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    stored.ID,
			Email:     stored.Email,
			Score:     result.Score,
			Summary:   fmt.Sprintf("qualified with score %d", result.Score),
		})
	}

	return stored, result, nil
}

// Conversion is the outcome of turning a chat message into a lead.
type Conversion struct {
	Extracted     bool              `json:"lead_extracted"`
	Reason        string            `json:"reason,omitempty"`
	Lead          *repository.Lead  `json:"lead,omitempty"`
	Qualification *scoring.Result   `json:"qualification,omitempty"`
	Fields        *extractor.Fields `json:"extracted_fields,omitempty"`
}

// ConvertChatMessage extracts contact details from a chat message and
// persists them as a lead. Without an email there is nothing to key
// the lead on, so the conversion reports why it was skipped.
func (s *Service) ConvertChatMessage(ctx context.Context, source, message string) (Conversion, error) {
	fields := extractor.Extract(message)
	if fields.Email == "" {
		return Conversion{
			Extracted: false,
			Reason:    "no email address found in the message",
		}, nil
	}

	lead := fields.Lead(source, message)
	stored, result, err := s.CreateAndQualify(ctx, lead)
	if err != nil {
		return Conversion{}, err
	}

	return Conversion{
		Extracted:     true,
		Lead:          &stored,
		Qualification: &result,
		Fields:        &fields,
	}, nil
}

// List returns recently captured leads, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]repository.Lead, error) {
	return s.store.List(ctx, limit)
}
