package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/events"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/geo"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/domain"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/repository"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/scoring"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/recommend"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/ai/openai"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
)

type fakeStore struct {
	leads     map[string]repository.Lead
	generated []domain.GeneratedLead
}

func newFakeStore() *fakeStore {
	return &fakeStore{leads: map[string]repository.Lead{}}
}

func (f *fakeStore) Upsert(_ context.Context, lead domain.Lead) (repository.Lead, error) {
	row, ok := f.leads[lead.Email]
	if !ok {
		row = repository.Lead{ID: uuid.New(), Email: lead.Email}
	}
	if lead.FirstName != "" {
		row.FirstName = lead.FirstName
	}
	if lead.LastName != "" {
		row.LastName = lead.LastName
	}
	if lead.Company != "" {
		row.Company = lead.Company
	}
	if lead.CompanySize > 0 {
		row.CompanySize = lead.CompanySize
	}
	if lead.Industry != "" {
		row.Industry = lead.Industry
	}
	if lead.JobTitle != "" {
		row.JobTitle = lead.JobTitle
	}
	if lead.Phone != "" {
		row.Phone = lead.Phone
	}
	if lead.Budget > 0 {
		row.Budget = lead.Budget
	}
	if lead.BuyingTimeframe != "" {
		row.BuyingTimeframe = lead.BuyingTimeframe
	}
	if lead.Website != "" {
		row.Website = lead.Website
	}
	if lead.Source != "" {
		row.Source = lead.Source
	}
	if lead.Message != "" {
		row.Message = lead.Message
	}
	f.leads[lead.Email] = row
	return row, nil
}

func (f *fakeStore) List(_ context.Context, _ int) ([]repository.Lead, error) {
	items := make([]repository.Lead, 0, len(f.leads))
	for _, row := range f.leads {
		items = append(items, row)
	}
	return items, nil
}

func (f *fakeStore) SetQualification(_ context.Context, id uuid.UUID, qualified bool, score int) error {
	for email, row := range f.leads {
		if row.ID == id {
			row.Qualified = &qualified
			row.Score = &score
			f.leads[email] = row
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeStore) SaveGenerated(_ context.Context, prospects []domain.GeneratedLead) ([]repository.GeneratedLead, error) {
	f.generated = append(f.generated, prospects...)
	return nil, nil
}

type fakeAI struct {
	reply string
	err   error
}

func (f fakeAI) ChatCompletion(_ context.Context, _ []openai.Message) (string, error) {
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

func newTestService(store Store, ai AIClient, bus events.Bus) *Service {
	log := logger.New("test")
	catalog := geo.NewCatalog()
	resolver := geo.NewResolver(catalog, geoConfigStub{}, log)
	recs := recommend.NewService(resolver, catalog, geoConfigStub{}, log)
	return New(store, scoring.NewService(log), ai, recs, bus, log)
}

func TestConvertChatMessageExtractsAndStores(t *testing.T) {
	store := newFakeStore()
	bus := &recordingBus{}
	svc := newTestService(store, fakeAI{}, bus)

	conversion, err := svc.ConvertChatMessage(context.Background(), "chatbot",
		"Hi, my name is John Doe, email john@doe.com")
	if err != nil {
		t.Fatalf("ConvertChatMessage: %v", err)
	}
	if !conversion.Extracted {
		t.Fatalf("not extracted: %+v", conversion)
	}
	if conversion.Lead.Email != "john@doe.com" {
		t.Fatalf("email = %q", conversion.Lead.Email)
	}
	if conversion.Fields.FirstName != "John" || conversion.Fields.LastName != "Doe" {
		t.Fatalf("name = %q %q", conversion.Fields.FirstName, conversion.Fields.LastName)
	}
	if len(bus.published) == 0 {
		t.Fatal("no capture event published")
	}
	if _, ok := bus.published[0].(events.LeadCaptured); !ok {
		t.Fatalf("first event is %T, want LeadCaptured", bus.published[0])
	}
}

func TestConvertChatMessageWithoutEmailSkips(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, fakeAI{}, &recordingBus{})

	conversion, err := svc.ConvertChatMessage(context.Background(), "chatbot", "no contact info here")
	if err != nil {
		t.Fatalf("ConvertChatMessage: %v", err)
	}
	if conversion.Extracted {
		t.Fatal("extracted without an email")
	}
	if conversion.Reason == "" {
		t.Fatal("missing skip reason")
	}
	if len(store.leads) != 0 {
		t.Fatalf("stored %d leads, want 0", len(store.leads))
	}
}

func TestCreateAndQualifyPublishesQualifiedEvent(t *testing.T) {
	store := newFakeStore()
	bus := &recordingBus{}
	svc := newTestService(store, fakeAI{}, bus)

	lead := domain.Lead{
		Email:           "cto@acme.io",
		Company:         "Acme",
		CompanySize:     250,
		Industry:        "technology",
		JobTitle:        "CTO",
		Budget:          50000,
		BuyingTimeframe: "this quarter",
	}
	_, result, err := svc.CreateAndQualify(context.Background(), lead)
	if err != nil {
		t.Fatalf("CreateAndQualify: %v", err)
	}
	if !result.Qualified {
		t.Fatalf("lead not qualified: %+v", result)
	}

	var sawQualified bool
	for _, event := range bus.published {
		if _, ok := event.(events.LeadQualified); ok {
			sawQualified = true
		}
	}
	if !sawQualified {
		t.Fatal("no LeadQualified event published")
	}
}

func TestGenerateParsesFencedJSON(t *testing.T) {
	store := newFakeStore()
	ai := fakeAI{reply: "```json\n[" +
		`{"company_name":"Meridian Retail","website":"https://meridianretail.in","industry":"retail","company_size":"medium","contact_role":"COO","location":"Chennai","relevance_score":0.9},` +
		`{"company_name":"Lowscore Ltd","industry":"retail","relevance_score":0.2}` +
		"]\n```"}
	svc := newTestService(store, ai, &recordingBus{})

	prospects, err := svc.Generate(context.Background(), domain.GenerationRequest{Industry: "retail"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(prospects) != 1 {
		t.Fatalf("kept %d prospects, want 1 above relevance floor", len(prospects))
	}
	if prospects[0].CompanyName != "Meridian Retail" {
		t.Fatalf("company = %q", prospects[0].CompanyName)
	}
	if len(store.generated) != 1 {
		t.Fatalf("stored %d generated leads, want 1", len(store.generated))
	}
}

func TestGenerateAndQualifyDerivesContactEmail(t *testing.T) {
	store := newFakeStore()
	ai := fakeAI{reply: `[{"company_name":"Meridian Retail","website":"https://www.meridianretail.in/about","industry":"retail","company_size":"large","contact_role":"CTO","relevance_score":0.95}]`}
	svc := newTestService(store, ai, &recordingBus{})

	prospects, err := svc.GenerateAndQualify(context.Background(), domain.GenerationRequest{Industry: "retail"})
	if err != nil {
		t.Fatalf("GenerateAndQualify: %v", err)
	}
	if len(prospects) != 1 {
		t.Fatalf("got %d prospects", len(prospects))
	}
	if !prospects[0].Qualified {
		t.Fatalf("prospect not qualified: %+v", prospects[0].Qualification)
	}
}

func TestGenerateSurfacesProviderOutage(t *testing.T) {
	svc := newTestService(newFakeStore(), fakeAI{err: context.DeadlineExceeded}, &recordingBus{})

	if _, err := svc.Generate(context.Background(), domain.GenerationRequest{Industry: "retail"}); err == nil {
		t.Fatal("expected error when the AI provider is down")
	}
}

func TestPersonalizedOutreachDefaultsToColdEmail(t *testing.T) {
	svc := newTestService(newFakeStore(), fakeAI{reply: "  Hi Ada, noticed Lovelace Ltd is growing.  "}, &recordingBus{})

	outreach, err := svc.PersonalizedOutreach(context.Background(), domain.Lead{Email: "ada@lovelace.co"}, "")
	if err != nil {
		t.Fatalf("PersonalizedOutreach: %v", err)
	}
	if outreach.CampaignType != CampaignCold {
		t.Fatalf("campaign = %q, want %q", outreach.CampaignType, CampaignCold)
	}
	if outreach.Content != "Hi Ada, noticed Lovelace Ltd is growing." {
		t.Fatalf("content not trimmed: %q", outreach.Content)
	}
}

func TestPersonalizedOutreachRejectsUnknownCampaign(t *testing.T) {
	svc := newTestService(newFakeStore(), fakeAI{reply: "hello"}, &recordingBus{})

	if _, err := svc.PersonalizedOutreach(context.Background(), domain.Lead{Email: "a@b.co"}, "carrier_pigeon"); err == nil {
		t.Fatal("expected validation error for unknown campaign type")
	}
}

func TestEnrichDegradesWithoutAI(t *testing.T) {
	svc := newTestService(newFakeStore(), fakeAI{err: context.DeadlineExceeded}, &recordingBus{})

	enrichment := svc.Enrich(context.Background(), domain.Lead{Email: "a@b.co"}, "127.0.0.1")
	if enrichment.Insights != nil {
		t.Fatalf("insights = %v, want none on provider failure", enrichment.Insights)
	}
	if enrichment.NearbyRecommendations.UserLocation.City != "Chennai" {
		t.Fatal("location enrichment missing despite AI outage")
	}
}
