package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/domain"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/recommend"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/ai/openai"
)

const enrichmentSystemPrompt = `You are a B2B research assistant. Given a sales lead, infer likely firmographics and talking points.
Respond with a JSON object only, with keys: likely_pain_points (array of strings), suggested_approach (string), estimated_deal_size (string), additional_context (string).`

// Enrichment combines AI insights with the caller's resolved location
// and nearby product recommendations.
type Enrichment struct {
	Lead                  domain.Lead       `json:"lead"`
	Insights              map[string]any    `json:"insights,omitempty"`
	NearbyRecommendations recommend.Payload `json:"nearby_recommendations"`
}

// Enrich augments a lead with AI-inferred insights and location-based
// recommendations. Insight failures degrade to location data only.
func (s *Service) Enrich(ctx context.Context, lead domain.Lead, clientIP string) Enrichment {
	enrichment := Enrichment{
		Lead:                  lead,
		NearbyRecommendations: s.recs.Nearby(ctx, clientIP, recommend.RecommendationRadiusKm),
	}

	raw, err := s.ai.ChatCompletion(ctx, []openai.Message{
		{Role: openai.RoleSystem, Content: enrichmentSystemPrompt},
		{Role: openai.RoleUser, Content: describeLead(lead)},
	})
	if err != nil {
		s.log.AIProviderError("openai", "lead enrichment", err)
		return enrichment
	}

	insights, err := parseInsights(raw)
	if err != nil {
		s.log.Error("unparseable enrichment response", "error", err)
		return enrichment
	}

	enrichment.Insights = insights
	return enrichment
}

func describeLead(lead domain.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lead: %s", lead.Email)
	if name := lead.FullName(); name != "" {
		fmt.Fprintf(&b, ", name %s", name)
	}
	if lead.Company != "" {
		fmt.Fprintf(&b, ", company %s", lead.Company)
	}
	if lead.Industry != "" {
		fmt.Fprintf(&b, ", industry %s", lead.Industry)
	}
	if lead.CompanySize > 0 {
		fmt.Fprintf(&b, ", company size %d", lead.CompanySize)
	}
	if lead.JobTitle != "" {
		fmt.Fprintf(&b, ", title %s", lead.JobTitle)
	}
	if lead.Message != "" {
		fmt.Fprintf(&b, ". Their message: %q", lead.Message)
	}
	return b.String()
}

func parseInsights(raw string) (map[string]any, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if start := strings.IndexByte(cleaned, '{'); start > 0 {
		cleaned = cleaned[start:]
	}
	if end := strings.LastIndexByte(cleaned, '}'); end >= 0 && end < len(cleaned)-1 {
		cleaned = cleaned[:end+1]
	}

	var insights map[string]any
	if err := json.Unmarshal([]byte(cleaned), &insights); err != nil {
		return nil, fmt.Errorf("decode enrichment: %w", err)
	}
	return insights, nil
}
