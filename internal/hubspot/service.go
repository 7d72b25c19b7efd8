package hubspot

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/chat"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/events"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/domain"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/apperr"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
)

// chatNamePattern pulls a "First Last" introduction out of a chat
// message for new contacts.
var chatNamePattern = regexp.MustCompile(`(?:my name is|I am|I'm) ([A-Z][a-z]+ [A-Z][a-z]+)`)

// ChatResponder lets HubSpot webhooks flow back into the chatbot.
type ChatResponder interface {
	Respond(ctx context.Context, req chat.Request, platform string) string
}

// ChatHistory is the slice of chat persistence the service reads when
// merging conversation history.
type ChatHistory interface {
	EmailHistory(ctx context.Context, email string) ([]chat.Log, error)
}

// Service syncs chat and lead activity into HubSpot and handles
// inbound webhooks.
type Service struct {
	client    *Client
	responder ChatResponder
	history   ChatHistory
	log       *logger.Logger
}

func NewService(client *Client, responder ChatResponder, history ChatHistory, log *logger.Logger) *Service {
	return &Service{
		client:    client,
		responder: responder,
		history:   history,
		log:       log,
	}
}

// Enabled reports whether CRM sync is configured.
func (s *Service) Enabled() bool {
	return s.client.Enabled()
}

// SyncContactFromChat creates or updates the contact for a chat
// participant, marking them as a lead.
func (s *Service) SyncContactFromChat(ctx context.Context, email, message string) error {
	if !s.Enabled() {
		return nil
	}

	contact, err := s.client.FindContactByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find contact: %w", err)
	}

	properties := map[string]string{
		"email":          email,
		"lifecyclestage": "lead",
	}

	if contact == nil {
		if match := chatNamePattern.FindStringSubmatch(message); match != nil {
			parts := strings.Fields(match[1])
			properties["firstname"] = parts[0]
			properties["lastname"] = strings.Join(parts[1:], " ")
		}
		_, err = s.client.CreateContact(ctx, properties)
	} else {
		_, err = s.client.UpdateContact(ctx, contact.ID, properties)
	}
	s.log.CRMSync("contact sync", email, err)
	return err
}

// SyncContactFromLead pushes a captured lead's details to the CRM.
func (s *Service) SyncContactFromLead(ctx context.Context, event events.LeadCaptured) error {
	if !s.Enabled() {
		return nil
	}

	properties := map[string]string{
		"email":             event.Email,
		"lifecyclestage":    "lead",
		"last_contact_date": domain.FormatCRMDate(time.Now()),
	}
	if event.FirstName != "" {
		properties["firstname"] = event.FirstName
	}
	if event.LastName != "" {
		properties["lastname"] = event.LastName
	}
	if event.Company != "" {
		properties["company"] = event.Company
	}
	if event.Source != "" {
		properties["lead_source"] = event.Source
	}

	contact, err := s.client.FindContactByEmail(ctx, event.Email)
	if err != nil {
		return fmt.Errorf("find contact: %w", err)
	}
	if contact == nil {
		contact, err = s.client.CreateContact(ctx, properties)
	} else {
		contact, err = s.client.UpdateContact(ctx, contact.ID, properties)
	}
	s.log.CRMSync("lead sync", event.Email, err)
	if err != nil || contact == nil {
		return err
	}

	followUp := domain.FormatCRMDateTime(time.Now().AddDate(0, 0, 1))
	note := fmt.Sprintf("New lead captured from %s. Follow up by %s.", event.Source, followUp)
	if noteErr := s.client.CreateNote(ctx, contact.ID, note); noteErr != nil {
		s.log.CRMSync("lead follow-up note", event.Email, noteErr)
	}
	return nil
}

// LogActivity attaches an activity note to the contact. Missing
// contacts are skipped, not treated as errors.
func (s *Service) LogActivity(ctx context.Context, email, activityType string, details map[string]any) error {
	if !s.Enabled() {
		return nil
	}

	contact, err := s.client.FindContactByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find contact: %w", err)
	}
	if contact == nil {
		s.log.Warn("activity not logged, contact missing", "email", email, "activity", activityType)
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Activity: %s\n", activityType)
	if len(details) > 0 {
		b.WriteString("Details:\n")
		keys := make([]string, 0, len(details))
		for key := range details {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(&b, "- %s: %v\n", key, details[key])
		}
	}

	err = s.client.CreateNote(ctx, contact.ID, b.String())
	s.log.CRMSync("activity note", email, err)
	return err
}

// WebhookPayload is the inbound webhook body from HubSpot.
type WebhookPayload struct {
	ObjectType          string              `json:"objectType"`
	ObjectID            any                 `json:"objectId"`
	SubscriptionType    string              `json:"subscriptionType"`
	PropertyName        string              `json:"propertyName"`
	PropertyValue       any                 `json:"propertyValue"`
	AssociatedObjectIDs map[string][]string `json:"associatedObjectIds"`
}

// WebhookResult describes how a webhook was handled.
type WebhookResult struct {
	ContactID string `json:"contact_id"`
	Email     string `json:"email,omitempty"`
	Reply     string `json:"ai_reply,omitempty"`
}

// ProcessWebhook resolves the contact behind the webhook and routes a
// synthesized message through the chatbot.
func (s *Service) ProcessWebhook(ctx context.Context, payload WebhookPayload) (WebhookResult, error) {
	if !s.Enabled() {
		return WebhookResult{}, apperr.Unavailable("hubspot integration is not configured")
	}

	contactID := s.contactIDFromPayload(payload)
	if contactID == "" {
		return WebhookResult{}, apperr.Validation("no contact information found in webhook")
	}

	contact, err := s.client.GetContact(ctx, contactID)
	if err != nil {
		return WebhookResult{}, fmt.Errorf("get contact %s: %w", contactID, err)
	}

	email := contact.Properties["email"]
	if email == "" {
		return WebhookResult{ContactID: contactID}, apperr.Validation("contact has no email address")
	}

	name := strings.TrimSpace(contact.Properties["firstname"] + " " + contact.Properties["lastname"])
	message := s.webhookMessage(payload.SubscriptionType, name, email)

	reply := s.responder.Respond(ctx, chat.Request{
		Email:   email,
		UserID:  "hubspot_" + contactID,
		Message: message,
	}, chat.PlatformHubSpot)

	return WebhookResult{ContactID: contactID, Email: email, Reply: reply}, nil
}

// ConfigureWebhook subscribes contact property changes to the target.
func (s *Service) ConfigureWebhook(ctx context.Context, targetURL string) error {
	if !s.Enabled() {
		return apperr.Unavailable("hubspot integration is not configured")
	}
	if targetURL == "" {
		return apperr.Validation("webhook target URL is required")
	}
	return s.client.ConfigureWebhook(ctx, targetURL)
}

// ConversationEntry is one merged history item from either system.
type ConversationEntry struct {
	Source      string `json:"source"`
	Type        string `json:"type"`
	Content     string `json:"content,omitempty"`
	UserMessage string `json:"user_message,omitempty"`
	BotReply    string `json:"bot_reply,omitempty"`
	Timestamp   string `json:"timestamp"`
	System      string `json:"system"`
}

// ConversationHistory merges CRM notes with local chat logs for a
// contact, newest first.
func (s *Service) ConversationHistory(ctx context.Context, email string) ([]ConversationEntry, error) {
	entries := make([]ConversationEntry, 0)

	if s.Enabled() {
		contact, err := s.client.FindContactByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("find contact: %w", err)
		}
		if contact != nil {
			notes, err := s.client.ListContactNotes(ctx, contact.ID)
			if err != nil {
				s.log.Error("failed to list contact notes", "email", email, "error", err)
			}
			for _, note := range notes {
				entries = append(entries, ConversationEntry{
					Source:    "hubspot",
					Type:      "note",
					Content:   note.Properties["hs_note_body"],
					Timestamp: note.Properties["hs_createdate"],
					System:    "HubSpot",
				})
			}
		}
	}

	logs, err := s.history.EmailHistory(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("chat history: %w", err)
	}
	for _, log := range logs {
		entries = append(entries, ConversationEntry{
			Source:      "chatbot",
			Type:        "message",
			UserMessage: log.UserMessage,
			BotReply:    log.ChatbotReply,
			Timestamp:   log.CreatedAt.Format(time.RFC3339),
			System:      "Chatbot",
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries, nil
}

func (s *Service) contactIDFromPayload(payload WebhookPayload) string {
	if strings.EqualFold(payload.ObjectType, "contact") && payload.ObjectID != nil {
		return formatObjectID(payload.ObjectID)
	}
	if contacts := payload.AssociatedObjectIDs["contact"]; len(contacts) > 0 {
		return contacts[0]
	}
	return ""
}

// formatObjectID renders the webhook objectId as HubSpot's API expects
// it. Numeric IDs arrive as float64 from encoding/json and must not be
// rendered in exponent notation.
func formatObjectID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func (s *Service) webhookMessage(subscriptionType, name, email string) string {
	eventType := strings.ToLower(subscriptionType)
	switch {
	case strings.Contains(eventType, "form_submission"):
		return fmt.Sprintf("HubSpot form submission from %s (%s)", name, email)
	case strings.Contains(eventType, "property_change"):
		return fmt.Sprintf("HubSpot contact property update for %s (%s)", name, email)
	case strings.Contains(eventType, "email_event"):
		return fmt.Sprintf("HubSpot email interaction with %s (%s)", name, email)
	default:
		return fmt.Sprintf("HubSpot activity detected for %s (%s)", name, email)
	}
}
