package hubspot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

type hubspotConfigStub struct {
	token   string
	baseURL string
}

func (s hubspotConfigStub) GetHubSpotAccessToken() string      { return s.token }
func (s hubspotConfigStub) GetHubSpotBaseURL() string          { return s.baseURL }
func (s hubspotConfigStub) GetHubSpotWebhookTargetURL() string { return "" }
func (s hubspotConfigStub) IsHubSpotEnabled() bool             { return s.token != "" }

func TestFindContactByEmailFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/crm/v3/objects/contacts/search" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("authorization = %q", got)
		}

		var payload struct {
			FilterGroups []struct {
				Filters []struct {
					PropertyName string `json:"propertyName"`
					Operator     string `json:"operator"`
					Value        string `json:"value"`
				} `json:"filters"`
			} `json:"filterGroups"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode search payload: %v", err)
		}
		filter := payload.FilterGroups[0].Filters[0]
		if filter.PropertyName != "email" || filter.Operator != "EQ" || filter.Value != "a@b.co" {
			t.Fatalf("unexpected filter %+v", filter)
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"total": 1,
			"results": []map[string]any{{
				"id":         "1001",
				"properties": map[string]string{"email": "a@b.co", "firstname": "Ada"},
			}},
		})
	}))
	defer server.Close()

	client := NewClient(hubspotConfigStub{token: "tok", baseURL: server.URL})
	contact, err := client.FindContactByEmail(context.Background(), "a@b.co")
	if err != nil {
		t.Fatalf("FindContactByEmail: %v", err)
	}
	if contact == nil || contact.ID != "1001" {
		t.Fatalf("contact = %+v", contact)
	}
}

func TestFindContactByEmailMissingReturnsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"total": 0, "results": []any{}})
	}))
	defer server.Close()

	client := NewClient(hubspotConfigStub{token: "tok", baseURL: server.URL})
	contact, err := client.FindContactByEmail(context.Background(), "ghost@b.co")
	if err != nil {
		t.Fatalf("FindContactByEmail: %v", err)
	}
	if contact != nil {
		t.Fatalf("contact = %+v, want nil", contact)
	}
}

func TestCreateNoteAssociatesContact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/crm/v3/objects/notes" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}

		var payload struct {
			Properties struct {
				Body      string `json:"hs_note_body"`
				Timestamp int64  `json:"hs_timestamp"`
			} `json:"properties"`
			Associations []struct {
				To struct {
					ID string `json:"id"`
				} `json:"to"`
				Types []struct {
					Category string `json:"category"`
					TypeID   int    `json:"typeId"`
				} `json:"types"`
			} `json:"associations"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("decode note payload: %v", err)
		}
		if payload.Properties.Body == "" || payload.Properties.Timestamp == 0 {
			t.Fatalf("incomplete note properties %+v", payload.Properties)
		}
		assoc := payload.Associations[0]
		if assoc.To.ID != "1001" || assoc.Types[0].TypeID != 1 || assoc.Types[0].Category != "HUBSPOT_DEFINED" {
			t.Fatalf("unexpected association %+v", assoc)
		}

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "n1"})
	}))
	defer server.Close()

	client := NewClient(hubspotConfigStub{token: "tok", baseURL: server.URL})
	if err := client.CreateNote(context.Background(), "1001", "Activity: chat_message"); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
}

func TestClientSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer server.Close()

	client := NewClient(hubspotConfigStub{token: "bad", baseURL: server.URL})
	if _, err := client.GetContact(context.Background(), "1001"); err == nil {
		t.Fatal("expected error for 401 response")
	}
}
