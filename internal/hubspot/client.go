// Package hubspot integrates the chatbot with the HubSpot CRM: contact
// sync, activity notes, webhooks and merged conversation history.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/config"
)

// Contact is a HubSpot CRM contact.
type Contact struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// ContactPage is one page of contacts with the cursor for the next.
type ContactPage struct {
	Results []Contact `json:"results"`
	After   string    `json:"after,omitempty"`
}

// Note is a CRM note attached to a contact.
type Note struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// Client is a minimal typed client for the HubSpot v3 CRM API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(cfg config.HubSpotConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.GetHubSpotBaseURL(),
		token:      cfg.GetHubSpotAccessToken(),
	}
}

// Enabled reports whether an access token is configured.
func (c *Client) Enabled() bool {
	return c.token != ""
}

// FindContactByEmail searches contacts by exact email. Returns nil
// when no contact matches.
func (c *Client) FindContactByEmail(ctx context.Context, email string) (*Contact, error) {
	payload := map[string]any{
		"filterGroups": []map[string]any{{
			"filters": []map[string]any{{
				"propertyName": "email",
				"operator":     "EQ",
				"value":        email,
			}},
		}},
	}

	var result struct {
		Total   int       `json:"total"`
		Results []Contact `json:"results"`
	}
	if err := c.do(ctx, http.MethodPost, "/crm/v3/objects/contacts/search", payload, &result); err != nil {
		return nil, err
	}
	if result.Total == 0 || len(result.Results) == 0 {
		return nil, nil
	}
	return &result.Results[0], nil
}

// GetContact retrieves a contact by ID.
func (c *Client) GetContact(ctx context.Context, id string) (*Contact, error) {
	var contact Contact
	if err := c.do(ctx, http.MethodGet, "/crm/v3/objects/contacts/"+url.PathEscape(id), nil, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// ListContacts returns a page of contacts. after is the pagination
// cursor from a previous page, empty for the first.
func (c *Client) ListContacts(ctx context.Context, after string, limit int) (ContactPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	path := "/crm/v3/objects/contacts?limit=" + strconv.Itoa(limit)
	if after != "" {
		path += "&after=" + url.QueryEscape(after)
	}

	var result struct {
		Results []Contact `json:"results"`
		Paging  struct {
			Next struct {
				After string `json:"after"`
			} `json:"next"`
		} `json:"paging"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return ContactPage{}, err
	}
	return ContactPage{Results: result.Results, After: result.Paging.Next.After}, nil
}

// CreateContact creates a contact with the given properties.
func (c *Client) CreateContact(ctx context.Context, properties map[string]string) (*Contact, error) {
	var contact Contact
	if err := c.do(ctx, http.MethodPost, "/crm/v3/objects/contacts", map[string]any{"properties": properties}, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// UpdateContact patches an existing contact's properties.
func (c *Client) UpdateContact(ctx context.Context, id string, properties map[string]string) (*Contact, error) {
	var contact Contact
	path := "/crm/v3/objects/contacts/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPatch, path, map[string]any{"properties": properties}, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// CreateNote attaches a note to a contact.
func (c *Client) CreateNote(ctx context.Context, contactID, body string) error {
	payload := map[string]any{
		"properties": map[string]any{
			"hs_note_body": body,
			"hs_timestamp": time.Now().UnixMilli(),
		},
		"associations": []map[string]any{{
			"to": map[string]any{"id": contactID},
			"types": []map[string]any{{
				"category": "HUBSPOT_DEFINED",
				"typeId":   1,
			}},
		}},
	}
	return c.do(ctx, http.MethodPost, "/crm/v3/objects/notes", payload, nil)
}

// ListContactNotes returns the notes associated with a contact.
func (c *Client) ListContactNotes(ctx context.Context, contactID string) ([]Note, error) {
	var associations struct {
		Results []struct {
			ID string `json:"id"`
		} `json:"results"`
	}
	path := "/crm/v3/objects/contacts/" + url.PathEscape(contactID) + "/associations/notes"
	if err := c.do(ctx, http.MethodGet, path, nil, &associations); err != nil {
		return nil, err
	}

	notes := make([]Note, 0, len(associations.Results))
	for _, assoc := range associations.Results {
		var note Note
		if err := c.do(ctx, http.MethodGet, "/crm/v3/objects/notes/"+url.PathEscape(assoc.ID), nil, &note); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, nil
}

// ConfigureWebhook subscribes HubSpot contact property changes to the
// given target URL.
func (c *Client) ConfigureWebhook(ctx context.Context, targetURL string) error {
	payload := map[string]any{
		"eventType":    "contact.propertyChange",
		"propertyName": "*",
		"active":       true,
		"webhookUrl":   targetURL,
	}
	return c.do(ctx, http.MethodPost, "/webhooks/v3/app/subscriptions", payload, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("hubspot: encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("hubspot: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hubspot: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("hubspot: %s %s: status %d: %s", method, path, resp.StatusCode, detail)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("hubspot: decode response: %w", err)
	}
	return nil
}
