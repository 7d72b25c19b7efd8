package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/events"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/geo"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/recommend"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/ai/anthropic"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/ai/openai"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
)

type fakeStore struct {
	history []Log
	stored  []StoreExchangeParams
}

func (f *fakeStore) StoreExchange(_ context.Context, params StoreExchangeParams) (Log, error) {
	f.stored = append(f.stored, params)
	return Log{ID: uuid.New(), Email: params.Email, UserID: params.UserID}, nil
}

func (f *fakeStore) ConversationHistory(_ context.Context, _ string, limit int) ([]Log, error) {
	if len(f.history) > limit {
		return f.history[len(f.history)-limit:], nil
	}
	return f.history, nil
}

func (f *fakeStore) UserHistory(_ context.Context, _ string, _ int) ([]Log, error) {
	return f.history, nil
}

type fakeAI struct {
	reply    string
	err      error
	received []openai.Message
}

func (f *fakeAI) Model() string { return "gpt-4-turbo" }

func (f *fakeAI) ChatCompletion(_ context.Context, messages []openai.Message) (string, error) {
	f.received = messages
	return f.reply, f.err
}

type fakeAnalyzer struct {
	reply string
	err   error
}

func (f fakeAnalyzer) AnalyzeFile(_ context.Context, _ anthropic.FileRequest) (string, error) {
	return f.reply, f.err
}

type recordingBus struct {
	published []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *recordingBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

type geoConfigStub struct{}

func (geoConfigStub) GetIPInfoToken() string   { return "" }
func (geoConfigStub) GetIPInfoBaseURL() string { return "https://ipinfo.invalid" }
func (geoConfigStub) GetGeoProbeIP() string    { return "103.48.198.141" }

func newTestService(store Store, ai AIClient, analyzer FileAnalyzer, bus events.Bus) *Service {
	log := logger.New("test")
	catalog := geo.NewCatalog()
	resolver := geo.NewResolver(catalog, geoConfigStub{}, log)
	recs := recommend.NewService(resolver, catalog, geoConfigStub{}, log)
	return NewService(store, ai, analyzer, recs, bus, log)
}

func TestRespondReplaysHistoryOldestFirst(t *testing.T) {
	store := &fakeStore{history: []Log{
		{UserMessage: "hello", ChatbotReply: "hi there"},
		{UserMessage: "I need pricing", ChatbotReply: "happy to help"},
	}}
	ai := &fakeAI{reply: "Sure, what's your email?"}
	bus := &recordingBus{}
	svc := newTestService(store, ai, nil, bus)

	reply := svc.Respond(context.Background(), Request{
		Email:   "user@test.io",
		Message: "tell me more",
	}, PlatformWeb)
	if reply != "Sure, what's your email?" {
		t.Fatalf("reply = %q", reply)
	}

	// system prompt, two history pairs, current message
	if len(ai.received) != 6 {
		t.Fatalf("model context has %d messages, want 6", len(ai.received))
	}
	if ai.received[0].Role != openai.RoleSystem {
		t.Fatalf("first message role = %q", ai.received[0].Role)
	}
	if ai.received[1].Content != "hello" || ai.received[2].Content != "hi there" {
		t.Fatal("history not replayed in order")
	}
	if last := ai.received[len(ai.received)-1]; last.Role != openai.RoleUser || last.Content != "tell me more" {
		t.Fatalf("current message misplaced: %+v", last)
	}
}

func TestRespondDegradesOnProviderError(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeAI{err: errors.New("upstream down")}, nil, &recordingBus{})

	reply := svc.Respond(context.Background(), Request{Email: "a@b.co", Message: "hi"}, PlatformWeb)
	if reply != degradedReply {
		t.Fatalf("reply = %q, want degraded reply", reply)
	}
	if len(store.stored) != 1 {
		t.Fatal("degraded exchange not persisted")
	}
}

func TestRespondStoresSanitizedMessageAndPublishes(t *testing.T) {
	store := &fakeStore{}
	bus := &recordingBus{}
	svc := newTestService(store, &fakeAI{reply: "ok"}, nil, bus)

	svc.Respond(context.Background(), Request{
		Email:   "a@b.co",
		Message: "<script>alert(1)</script>hello",
	}, PlatformExtension)

	if len(store.stored) != 1 {
		t.Fatal("exchange not persisted")
	}
	if store.stored[0].UserMessage != "alert(1)hello" {
		t.Fatalf("stored message = %q, markup not stripped", store.stored[0].UserMessage)
	}
	if store.stored[0].UserID != "anonymous" {
		t.Fatalf("user id = %q, want anonymous default", store.stored[0].UserID)
	}
	if store.stored[0].Platform != PlatformExtension {
		t.Fatalf("platform = %q", store.stored[0].Platform)
	}

	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	event, ok := bus.published[0].(events.ChatMessageStored)
	if !ok {
		t.Fatalf("event is %T", bus.published[0])
	}
	if event.Email != "a@b.co" || event.Platform != PlatformExtension {
		t.Fatalf("event = %+v", event)
	}
}

func TestRespondWithRecommendationsAppendsTopThree(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeAI{reply: "Here you go."}, nil, &recordingBus{})

	reply, location := svc.RespondWithRecommendations(context.Background(),
		Request{Email: "a@b.co", Message: "what's nearby?"}, "127.0.0.1")

	if !strings.HasPrefix(reply, "Here you go.") {
		t.Fatalf("reply does not start with AI answer: %q", reply)
	}
	if !strings.Contains(reply, "Based on your location in Chennai") {
		t.Fatalf("reply missing location intro: %q", reply)
	}
	if strings.Contains(reply, "4. ") {
		t.Fatal("more than three recommendations included")
	}
	if location.City != "Chennai" {
		t.Fatalf("city = %q", location.City)
	}
}

func TestAnalyzeFileUploadRejectsUnsupportedFormat(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeAI{}, fakeAnalyzer{reply: "summary"}, &recordingBus{})

	_, err := svc.AnalyzeFileUpload(context.Background(), FileUploadRequest{
		Email:     "a@b.co",
		FileName:  "notes.txt",
		Extension: "txt",
	})
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestAnalyzeFileUploadStoresMarkedExchange(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, &fakeAI{}, fakeAnalyzer{reply: "an invoice for $400"}, &recordingBus{})

	reply, err := svc.AnalyzeFileUpload(context.Background(), FileUploadRequest{
		Email:     "a@b.co",
		FileName:  "invoice.pdf",
		Extension: "pdf",
		Message:   "what is this?",
	})
	if err != nil {
		t.Fatalf("AnalyzeFileUpload: %v", err)
	}
	if reply != "an invoice for $400" {
		t.Fatalf("reply = %q", reply)
	}
	if len(store.stored) != 1 {
		t.Fatal("exchange not persisted")
	}
	if !strings.HasPrefix(store.stored[0].UserMessage, "[File Upload: invoice.pdf]") {
		t.Fatalf("stored message missing marker: %q", store.stored[0].UserMessage)
	}
}

func TestAnalyzeFileUploadDegradesOnProviderError(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeAI{}, fakeAnalyzer{err: errors.New("api down")}, &recordingBus{})

	reply, err := svc.AnalyzeFileUpload(context.Background(), FileUploadRequest{
		Email:     "a@b.co",
		FileName:  "photo.png",
		Extension: "png",
	})
	if err != nil {
		t.Fatalf("AnalyzeFileUpload: %v", err)
	}
	if reply != fileAnalysisFailed {
		t.Fatalf("reply = %q, want fallback", reply)
	}
}
