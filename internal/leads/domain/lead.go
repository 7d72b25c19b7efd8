// Package domain holds the lead model and qualification criteria.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lead is a sales prospect captured from chat, forms or generation.
// Email is the identity key; everything else is best-effort.
type Lead struct {
	ID              uuid.UUID  `json:"id,omitempty"`
	Email           string     `json:"email" validate:"required,email"`
	FirstName       string     `json:"first_name,omitempty"`
	LastName        string     `json:"last_name,omitempty"`
	Company         string     `json:"company,omitempty"`
	CompanySize     int        `json:"company_size,omitempty"`
	Industry        string     `json:"industry,omitempty"`
	JobTitle        string     `json:"job_title,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	Budget          float64    `json:"budget,omitempty"`
	BuyingTimeframe string     `json:"buying_timeframe,omitempty"`
	Website         string     `json:"website,omitempty"`
	Source          string     `json:"source,omitempty"`
	Message         string     `json:"message,omitempty"`
	Location        string     `json:"location,omitempty"`
	CreatedAt       time.Time  `json:"created_at,omitempty"`
	LastContactDate *time.Time `json:"last_contact_date,omitempty"`
}

// FullName joins the first and last name, dropping empty parts.
func (l Lead) FullName() string {
	switch {
	case l.FirstName != "" && l.LastName != "":
		return l.FirstName + " " + l.LastName
	case l.FirstName != "":
		return l.FirstName
	default:
		return l.LastName
	}
}

// QualificationCriteria configures the lead qualifier. Zero-valued
// criteria are not evaluated; RequiredFields are hard gates.
type QualificationCriteria struct {
	MinCompanySize      int      `json:"min_company_size,omitempty"`
	TargetIndustries    []string `json:"target_industries,omitempty"`
	BudgetThreshold     float64  `json:"budget_threshold,omitempty"`
	DecisionMakerTitles []string `json:"decision_maker_titles,omitempty"`
	BuyingTimeframes    []string `json:"buying_timeframe,omitempty"`
	RequiredFields      []string `json:"required_fields,omitempty"`
}

// DefaultCriteria returns the qualification profile used when a request
// does not supply one.
func DefaultCriteria() QualificationCriteria {
	return QualificationCriteria{
		MinCompanySize:      10,
		TargetIndustries:    []string{"technology", "software", "saas", "finance", "healthcare", "retail"},
		BudgetThreshold:     1000,
		DecisionMakerTitles: []string{"ceo", "cto", "cfo", "coo", "founder", "owner", "director", "vp", "head", "manager"},
		BuyingTimeframes:    []string{"immediate", "this month", "this quarter", "1 month", "3 months"},
		RequiredFields:      []string{"email"},
	}
}

// GeneratedLead is an AI-suggested prospect company.
type GeneratedLead struct {
	CompanyName    string  `json:"company_name"`
	Industry       string  `json:"industry,omitempty"`
	CompanySize    string  `json:"company_size,omitempty"` // small, medium, large, enterprise
	Location       string  `json:"location,omitempty"`
	Website        string  `json:"website,omitempty"`
	ContactRole    string  `json:"contact_role,omitempty"`
	Description    string  `json:"description,omitempty"`
	RelevanceScore float64 `json:"relevance_score"`
}

// ContactEmail derives a plausible contact address for a generated
// prospect so it can pass through qualification.
func (g GeneratedLead) ContactEmail() string {
	if g.Website == "" {
		return "unknown@example.com"
	}
	host := strings.TrimPrefix(strings.TrimPrefix(g.Website, "https://"), "http://")
	host = strings.TrimPrefix(host, "www.")
	if idx := strings.IndexByte(host, '/'); idx >= 0 {
		host = host[:idx]
	}
	return "contact@" + host
}

// GenerationRequest describes the prospect profile to generate leads for.
type GenerationRequest struct {
	Industry          string  `json:"industry" validate:"required"`
	CompanySize       string  `json:"company_size,omitempty"`
	Location          string  `json:"location,omitempty"`
	Count             int     `json:"count,omitempty"`
	MinRelevanceScore float64 `json:"min_relevance_score,omitempty"`
}

// Normalize applies the request defaults.
func (r *GenerationRequest) Normalize() {
	if r.Count <= 0 {
		r.Count = 5
	}
	if r.MinRelevanceScore <= 0 {
		r.MinRelevanceScore = 0.7
	}
}

// EmployeeCountForBucket converts a size bucket into a representative
// employee count for qualification. Unknown buckets return 0.
func EmployeeCountForBucket(bucket string) int {
	switch bucket {
	case "small":
		return 25
	case "medium":
		return 100
	case "large":
		return 500
	case "enterprise":
		return 1000
	default:
		return 0
	}
}

// CRM date formats expected by HubSpot properties.
const (
	crmDateLayout = "01/02/2006"
)

// FormatCRMDate renders a date as the CRM expects it.
func FormatCRMDate(t time.Time) string {
	return t.Format(crmDateLayout)
}

// FormatCRMDateTime renders a date with the fixed morning slot used for
// follow-up activities.
func FormatCRMDateTime(t time.Time) string {
	return t.Format(crmDateLayout) + " 8:00 AM"
}
