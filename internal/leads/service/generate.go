package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/domain"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/scoring"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/ai/openai"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/apperr"
)

const generationSystemPrompt = `You are a B2B prospecting assistant. Suggest real-looking prospect companies matching the requested profile.
Respond with a JSON array only, no prose. Each element must have these keys:
company_name, website, industry, company_size (one of: small, medium, large, enterprise), contact_role, location, description, relevance_score (0.0-1.0).`

// Generate asks the AI for prospect companies matching the request and
// persists the ones clearing the relevance floor.
func (s *Service) Generate(ctx context.Context, req domain.GenerationRequest) ([]domain.GeneratedLead, error) {
	req.Normalize()

	prompt := fmt.Sprintf("Suggest %d prospect companies in the %q industry", req.Count, req.Industry)
	if req.CompanySize != "" {
		prompt += fmt.Sprintf(", around %s size", req.CompanySize)
	}
	if req.Location != "" {
		prompt += fmt.Sprintf(", located in or near %s", req.Location)
	}
	prompt += "."

	raw, err := s.ai.ChatCompletion(ctx, []openai.Message{
		{Role: openai.RoleSystem, Content: generationSystemPrompt},
		{Role: openai.RoleUser, Content: prompt},
	})
	if err != nil {
		s.log.AIProviderError("openai", "lead generation", err)
		return nil, apperr.Unavailable("lead generation is temporarily unavailable")
	}

	prospects, err := parseGeneratedLeads(raw)
	if err != nil {
		s.log.Error("unparseable lead generation response", "error", err)
		return nil, apperr.Unavailable("lead generation returned an unexpected response")
	}

	kept := prospects[:0]
	for _, prospect := range prospects {
		if prospect.CompanyName == "" {
			continue
		}
		if prospect.RelevanceScore < req.MinRelevanceScore {
			continue
		}
		kept = append(kept, prospect)
	}

	if len(kept) > 0 && s.store != nil {
		if _, err := s.store.SaveGenerated(ctx, kept); err != nil {
			// Generation results are still useful without persistence.
			s.log.Error("failed to store generated leads", "error", err)
		}
	}

	return kept, nil
}

// QualifiedProspect pairs a generated company with its qualification.
type QualifiedProspect struct {
	GeneratedLead domain.GeneratedLead `json:"generated_lead"`
	Qualification scoring.Result       `json:"qualification"`
	Qualified     bool                 `json:"qualified"`
}

// GenerateAndQualify generates prospects and scores each one as if it
// were an inbound lead.
func (s *Service) GenerateAndQualify(ctx context.Context, req domain.GenerationRequest) ([]QualifiedProspect, error) {
	prospects, err := s.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	qualified := make([]QualifiedProspect, 0, len(prospects))
	for _, prospect := range prospects {
		lead := domain.Lead{
			Email:       prospect.ContactEmail(),
			Company:     prospect.CompanyName,
			Industry:    prospect.Industry,
			CompanySize: domain.EmployeeCountForBucket(prospect.CompanySize),
			JobTitle:    prospect.ContactRole,
			Website:     prospect.Website,
			Source:      "ai_generated",
		}
		result := s.scorer.Qualify(lead, domain.DefaultCriteria())
		qualified = append(qualified, QualifiedProspect{
			GeneratedLead: prospect,
			Qualification: result,
			Qualified:     result.Qualified,
		})
	}

	return qualified, nil
}

// parseGeneratedLeads tolerates models that wrap JSON in code fences
// or lead-in prose.
func parseGeneratedLeads(raw string) ([]domain.GeneratedLead, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if start := strings.IndexByte(cleaned, '['); start > 0 {
		cleaned = cleaned[start:]
	}
	if end := strings.LastIndexByte(cleaned, ']'); end >= 0 && end < len(cleaned)-1 {
		cleaned = cleaned[:end+1]
	}

	var prospects []domain.GeneratedLead
	if err := json.Unmarshal([]byte(cleaned), &prospects); err != nil {
		return nil, fmt.Errorf("decode generated leads: %w", err)
	}
	return prospects, nil
}
