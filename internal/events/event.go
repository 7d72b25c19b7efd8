// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Chat Domain Events
// =============================================================================

// ChatMessageStored is published after a chat exchange has been persisted.
// The CRM module uses it to upsert the contact and log the conversation.
type ChatMessageStored struct {
	BaseEvent
	LogID    uuid.UUID `json:"logId"`
	Email    string    `json:"email"`
	UserID   string    `json:"userId"`
	Message  string    `json:"message"`
	Reply    string    `json:"reply"`
	Platform string    `json:"platform"` // "web", "extension", "hubspot"
}

func (e ChatMessageStored) EventName() string { return "chat.message.stored" }

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadCaptured is published when contact details extracted from a chat
// message are persisted as a lead.
type LeadCaptured struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	Company   string    `json:"company,omitempty"`
	Source    string    `json:"source"`
	Message   string    `json:"message,omitempty"`
}

func (e LeadCaptured) EventName() string { return "leads.lead.captured" }

// LeadQualified is published when a lead passes qualification.
// Only qualified leads are pushed to the CRM.
type LeadQualified struct {
	BaseEvent
	LeadID  uuid.UUID `json:"leadId"`
	Email   string    `json:"email"`
	Score   int       `json:"score"`
	Summary string    `json:"summary,omitempty"`
}

func (e LeadQualified) EventName() string { return "leads.lead.qualified" }
