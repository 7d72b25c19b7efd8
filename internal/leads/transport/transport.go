// Package transport defines the request and response shapes for the
// leads HTTP API.
package transport

import (
	"time"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/domain"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/repository"
)

type LeadRequest struct {
	Email           string  `json:"email" validate:"required,email"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Company         string  `json:"company"`
	CompanySize     int     `json:"company_size" validate:"gte=0"`
	Industry        string  `json:"industry"`
	JobTitle        string  `json:"job_title"`
	Phone           string  `json:"phone"`
	Budget          float64 `json:"budget" validate:"gte=0"`
	BuyingTimeframe string  `json:"buying_timeframe"`
	Website         string  `json:"website"`
	Source          string  `json:"source"`
	Message         string  `json:"message"`
	Location        string  `json:"location"`
}

func (r LeadRequest) Domain() domain.Lead {
	return domain.Lead{
		Email:           r.Email,
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		Company:         r.Company,
		CompanySize:     r.CompanySize,
		Industry:        r.Industry,
		JobTitle:        r.JobTitle,
		Phone:           r.Phone,
		Budget:          r.Budget,
		BuyingTimeframe: r.BuyingTimeframe,
		Website:         r.Website,
		Source:          r.Source,
		Message:         r.Message,
		Location:        r.Location,
	}
}

// QualifyRequest optionally overrides the default criteria.
type QualifyRequest struct {
	Lead     LeadRequest                   `json:"lead" validate:"required"`
	Criteria *domain.QualificationCriteria `json:"criteria,omitempty"`
}

// OutreachRequest asks for AI-written campaign copy for a lead.
type OutreachRequest struct {
	Lead         LeadRequest `json:"lead" validate:"required"`
	CampaignType string      `json:"campaign_type"`
}

type ChatbotToLeadRequest struct {
	Message string `json:"message" validate:"required"`
	Source  string `json:"source"`
}

type EnrichRequest struct {
	Lead LeadRequest `json:"lead" validate:"required"`
}

type LeadResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	Company         string    `json:"company,omitempty"`
	CompanySize     int       `json:"company_size,omitempty"`
	Industry        string    `json:"industry,omitempty"`
	JobTitle        string    `json:"job_title,omitempty"`
	Phone           string    `json:"phone,omitempty"`
	Budget          float64   `json:"budget,omitempty"`
	BuyingTimeframe string    `json:"buying_timeframe,omitempty"`
	Website         string    `json:"website,omitempty"`
	Source          string    `json:"source,omitempty"`
	Location        string    `json:"location,omitempty"`
	Qualified       *bool     `json:"qualified,omitempty"`
	Score           *int      `json:"score,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewLeadResponse(row repository.Lead) LeadResponse {
	return LeadResponse{
		ID:              row.ID.String(),
		Email:           row.Email,
		FirstName:       row.FirstName,
		LastName:        row.LastName,
		Company:         row.Company,
		CompanySize:     row.CompanySize,
		Industry:        row.Industry,
		JobTitle:        row.JobTitle,
		Phone:           row.Phone,
		Budget:          row.Budget,
		BuyingTimeframe: row.BuyingTimeframe,
		Website:         row.Website,
		Source:          row.Source,
		Location:        row.Location,
		Qualified:       row.Qualified,
		Score:           row.Score,
		CreatedAt:       row.CreatedAt,
	}
}
