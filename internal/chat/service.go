// Package chat provides the conversational bounded context: AI-backed
// chat with persisted history, browser-extension support, file
// analysis and location-aware replies.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/events"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/recommend"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/ai/anthropic"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/ai/openai"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/apperr"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/sanitize"
)

const historyLimit = 10

// Platform labels for stored exchanges.
const (
	PlatformWeb       = "web"
	PlatformExtension = "extension"
	PlatformHubSpot   = "hubspot"
)

// AIClient is the completion surface the chat service talks to.
type AIClient interface {
	Model() string
	ChatCompletion(ctx context.Context, messages []openai.Message) (string, error)
}

// FileAnalyzer handles document and image uploads.
type FileAnalyzer interface {
	AnalyzeFile(ctx context.Context, req anthropic.FileRequest) (string, error)
}

// Store is the persistence surface used by the service.
type Store interface {
	StoreExchange(ctx context.Context, params StoreExchangeParams) (Log, error)
	ConversationHistory(ctx context.Context, email string, limit int) ([]Log, error)
	UserHistory(ctx context.Context, userID string, limit int) ([]Log, error)
}

// Request is one inbound chat message.
type Request struct {
	Email       string
	UserID      string
	Message     string
	ScrapedData map[string]any
}

type Service struct {
	store    Store
	ai       AIClient
	analyzer FileAnalyzer
	recs     *recommend.Service
	bus      events.Bus
	log      *logger.Logger
}

func NewService(store Store, ai AIClient, analyzer FileAnalyzer, recs *recommend.Service, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		ai:       ai,
		analyzer: analyzer,
		recs:     recs,
		bus:      bus,
		log:      log,
	}
}

// Respond generates a reply for the message, persisting the exchange.
// Provider failures degrade to a canned reply rather than an error so
// the conversation never hard-fails.
func (s *Service) Respond(ctx context.Context, req Request, platform string) string {
	start := time.Now()
	reply := s.complete(ctx, req)
	s.persist(ctx, req, reply, platform, time.Since(start))
	return reply
}

// RespondWithRecommendations appends nearby product options to the
// reply based on the caller's resolved location.
func (s *Service) RespondWithRecommendations(ctx context.Context, req Request, clientIP string) (string, recommend.UserLocation) {
	start := time.Now()
	reply := s.complete(ctx, req)

	payload := s.recs.Nearby(ctx, clientIP, recommend.RecommendationRadiusKm)
	location := payload.UserLocation

	var b strings.Builder
	b.WriteString(reply)
	fmt.Fprintf(&b, "\n\nBased on your location in %s (near %s), here are some product options nearby:\n\n",
		location.City, location.Area)
	for i, rec := range payload.Recommendations {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "%d. %s (%s)\n", i+1, rec.Name, rec.Type)
		fmt.Fprintf(&b, "   Distance: %s\n", rec.Distance)
		fmt.Fprintf(&b, "   Address: %s\n", rec.Address)
		fmt.Fprintf(&b, "   Est. travel time: %s\n\n", rec.EstimatedTravelTime)
	}
	combined := b.String()

	s.persist(ctx, req, combined, PlatformWeb, time.Since(start))
	return combined, location
}

// FileUploadRequest is an uploaded file with its accompanying message.
type FileUploadRequest struct {
	Email     string
	UserID    string
	Message   string
	FileName  string
	Extension string
	Content   []byte
}

// AnalyzeFileUpload runs the file through the analyzer and stores the
// exchange under a file-upload marker.
func (s *Service) AnalyzeFileUpload(ctx context.Context, req FileUploadRequest) (string, error) {
	if s.analyzer == nil {
		return "", apperr.Unavailable("file analysis is not configured")
	}
	if !anthropic.Supported(req.Extension) {
		supported := make([]string, 0, len(anthropic.SupportedExtensions))
		for ext := range anthropic.SupportedExtensions {
			supported = append(supported, ext)
		}
		return "", apperr.Validation("unsupported file format").WithDetails(supported)
	}

	start := time.Now()
	system := leadGenSystemPrompt + fmt.Sprintf("\nYou are also analyzing a %s file. After analysis, return to lead collection.", strings.ToLower(req.Extension))

	reply, err := s.analyzer.AnalyzeFile(ctx, anthropic.FileRequest{
		FileName:  req.FileName,
		Extension: req.Extension,
		Content:   req.Content,
		Prompt:    req.Message,
		System:    system,
	})
	if err != nil {
		s.log.AIProviderError("anthropic", "file analysis", err)
		reply = fileAnalysisFailed
	} else if reply == "" {
		reply = fileAnalysisNoResult
	}

	stored := Request{
		Email:   req.Email,
		UserID:  req.UserID,
		Message: fmt.Sprintf("[File Upload: %s] %s", req.FileName, req.Message),
	}
	s.persist(ctx, stored, reply, PlatformWeb, time.Since(start))
	return reply, nil
}

// History returns a user's stored exchanges, newest first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]Log, error) {
	return s.store.UserHistory(ctx, userID, limit)
}

// complete assembles the model context and requests a reply.
func (s *Service) complete(ctx context.Context, req Request) string {
	messages := []openai.Message{{Role: openai.RoleSystem, Content: leadGenSystemPrompt}}

	if req.ScrapedData != nil {
		scraped, err := json.Marshal(req.ScrapedData)
		if err == nil {
			messages = append(messages,
				openai.Message{Role: openai.RoleSystem, Content: scrapedDataSystemPrompt},
				openai.Message{Role: openai.RoleSystem, Content: "Scraped website details: " + string(scraped)},
			)
		}
	}

	history, err := s.store.ConversationHistory(ctx, req.Email, historyLimit)
	if err != nil {
		s.log.DatabaseError("conversation history", err)
	}
	for _, exchange := range history {
		messages = append(messages,
			openai.Message{Role: openai.RoleUser, Content: exchange.UserMessage},
			openai.Message{Role: openai.RoleAssistant, Content: exchange.ChatbotReply},
		)
	}

	messages = append(messages, openai.Message{Role: openai.RoleUser, Content: req.Message})

	reply, err := s.ai.ChatCompletion(ctx, messages)
	if err != nil {
		s.log.AIProviderError("openai", "chat completion", err)
		return degradedReply
	}
	if reply == "" {
		return unparseableReply
	}
	return reply
}

func (s *Service) persist(ctx context.Context, req Request, reply, platform string, elapsed time.Duration) {
	userID := req.UserID
	if userID == "" {
		userID = "anonymous"
	}
	message := sanitize.Text(req.Message)

	log, err := s.store.StoreExchange(ctx, StoreExchangeParams{
		Email:        req.Email,
		UserID:       userID,
		UserMessage:  message,
		ChatbotReply: reply,
		ResponseTime: elapsed.Seconds(),
		Platform:     platform,
		ScrapedData:  req.ScrapedData,
	})
	if err != nil {
		s.log.DatabaseError("store chat exchange", err)
		return
	}

	s.log.ChatExchange(userID, s.ai.Model(), len(message), len(reply), float64(elapsed.Milliseconds()))

	s.bus.Publish(ctx, events.ChatMessageStored{
		BaseEvent: events.NewBaseEvent(),
		LogID:     log.ID,
		Email:     req.Email,
		UserID:    userID,
		Message:   message,
		Reply:     reply,
		Platform:  platform,
	})
}
