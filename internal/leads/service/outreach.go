package service

import (
	"context"
	"strings"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/domain"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/ai/openai"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/apperr"
)

const outreachSystemPrompt = `You are a B2B sales copywriter. Write personalized outreach for the lead described by the user.
Keep it under 150 words, reference the lead's company and industry when known, and end with a clear call to action.
Respond with the message text only, no preamble.`

// CampaignCold is the default outreach campaign.
const CampaignCold = "cold_email"

var campaignInstructions = map[string]string{
	CampaignCold:       "Write a cold introduction email.",
	"follow_up":        "Write a follow-up email referencing an earlier conversation.",
	"linkedin_message": "Write a short LinkedIn connection message.",
}

// Outreach is AI-written contact copy for one lead.
type Outreach struct {
	CampaignType string `json:"campaign_type"`
	Content      string `json:"content"`
}

// PersonalizedOutreach drafts campaign copy for the lead. An empty
// campaign type defaults to a cold email.
func (s *Service) PersonalizedOutreach(ctx context.Context, lead domain.Lead, campaignType string) (Outreach, error) {
	if campaignType == "" {
		campaignType = CampaignCold
	}
	instruction, ok := campaignInstructions[campaignType]
	if !ok {
		return Outreach{}, apperr.Validation("unknown campaign type: " + campaignType)
	}

	raw, err := s.ai.ChatCompletion(ctx, []openai.Message{
		{Role: openai.RoleSystem, Content: outreachSystemPrompt},
		{Role: openai.RoleUser, Content: instruction + "\n\n" + describeLead(lead)},
	})
	if err != nil {
		s.log.AIProviderError("openai", "personalized outreach", err)
		return Outreach{}, apperr.Unavailable("outreach generation is temporarily unavailable")
	}

	content := strings.TrimSpace(raw)
	if content == "" {
		return Outreach{}, apperr.Unavailable("outreach generation returned an empty response")
	}

	return Outreach{CampaignType: campaignType, Content: content}, nil
}
