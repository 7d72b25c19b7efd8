// Package extractor pulls contact details out of free-form chat text.
// Each field is matched independently and best-effort: no match means
// the field stays empty, never an error.
package extractor

import (
	"regexp"
	"strings"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/domain"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/phone"
)

var (
	emailPattern   = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[\w.-]+`)
	phonePattern   = regexp.MustCompile(`\b(?:\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	namePattern    = regexp.MustCompile(`(?:I am|my name is|name[:\s]+)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`)
	companyPattern = regexp.MustCompile(`(?:company[:\s]+|work(?:ing)?\s+(?:at|for)|from)\s+([A-Z][A-Za-z0-9\s&]+?)(?:\.|\s|$)`)
)

// Fields holds whatever contact details could be extracted.
type Fields struct {
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Company   string `json:"company,omitempty"`
}

// Empty reports whether nothing was extracted.
func (f Fields) Empty() bool {
	return f == Fields{}
}

// Lead converts the extracted fields into a lead skeleton.
func (f Fields) Lead(source, message string) domain.Lead {
	return domain.Lead{
		Email:     f.Email,
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Company:   f.Company,
		Phone:     f.Phone,
		Source:    source,
		Message:   message,
	}
}

// Extract scans the message for contact details.
func Extract(message string) Fields {
	var fields Fields

	if email := emailPattern.FindString(message); email != "" {
		fields.Email = email
	}

	if rawPhone := phonePattern.FindString(message); rawPhone != "" {
		fields.Phone = phone.NormalizeE164(rawPhone)
	}

	if m := namePattern.FindStringSubmatch(message); m != nil {
		parts := strings.Fields(m[1])
		fields.FirstName = parts[0]
		if len(parts) > 1 {
			fields.LastName = parts[len(parts)-1]
		}
	}

	if m := companyPattern.FindStringSubmatch(message); m != nil {
		fields.Company = strings.TrimRight(strings.TrimSpace(m[1]), ".")
	}

	return fields
}
