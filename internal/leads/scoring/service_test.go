package scoring

import (
	"testing"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/domain"
)

func fullyQualifiedLead() domain.Lead {
	return domain.Lead{
		Email:           "cto@acme.io",
		FirstName:       "Dana",
		LastName:        "Voss",
		Company:         "Acme",
		CompanySize:     250,
		Industry:        "technology",
		JobTitle:        "CTO",
		Budget:          50000,
		BuyingTimeframe: "this quarter",
	}
}

func TestQualifyMissingEmailNeverQualifies(t *testing.T) {
	svc := NewService(nil)

	lead := fullyQualifiedLead()
	lead.Email = ""

	result := svc.Qualify(lead, domain.DefaultCriteria())
	if result.Qualified {
		t.Fatalf("lead without email reported qualified, score=%d", result.Score)
	}
	if len(result.Details.MissingFields) != 1 || result.Details.MissingFields[0] != "email" {
		t.Fatalf("missing fields = %v, want [email]", result.Details.MissingFields)
	}
	if result.Score < qualifyThreshold {
		t.Fatalf("score = %d, gates should not suppress earned credit", result.Score)
	}
}

func TestQualifyRejectsMalformedEmail(t *testing.T) {
	svc := NewService(nil)

	lead := fullyQualifiedLead()
	lead.Email = "not-an-email"

	result := svc.Qualify(lead, domain.DefaultCriteria())
	if result.Qualified {
		t.Fatal("malformed email reported qualified")
	}
}

func TestQualifyAllCriteriaMetScoresMax(t *testing.T) {
	svc := NewService(nil)

	result := svc.Qualify(fullyQualifiedLead(), domain.DefaultCriteria())
	if !result.Qualified {
		t.Fatalf("fully matching lead not qualified: %+v", result.Details)
	}
	if result.Score != 100 {
		t.Fatalf("score = %d, want 100", result.Score)
	}
}

func TestQualifyEmailOnlyLeadIsScorable(t *testing.T) {
	svc := NewService(nil)

	result := svc.Qualify(domain.Lead{Email: "solo@lead.dev"}, domain.DefaultCriteria())
	if result.Qualified {
		t.Fatal("email-only lead should not clear the threshold")
	}
	if result.Score != 0 {
		t.Fatalf("score = %d, want 0", result.Score)
	}
	if len(result.Details.MissingFields) != 0 {
		t.Fatalf("missing fields = %v, want none", result.Details.MissingFields)
	}
}

func TestQualifyNoCriteriaDefaultsToMaxScore(t *testing.T) {
	svc := NewService(nil)

	result := svc.Qualify(domain.Lead{Email: "a@b.co"}, domain.QualificationCriteria{
		RequiredFields: []string{"email"},
	})
	if result.Score != 100 {
		t.Fatalf("score = %d, want 100 with no configured criteria", result.Score)
	}
	if !result.Qualified {
		t.Fatal("lead with passing gates and no criteria should qualify")
	}
}

func TestQualifyPartialCredit(t *testing.T) {
	svc := NewService(nil)

	tests := []struct {
		name      string
		mutate    func(*domain.Lead)
		factor    string
		wantValue float64
	}{
		{
			name:      "company size at half minimum earns half weight",
			mutate:    func(l *domain.Lead) { l.CompanySize = 5 },
			factor:    "company_size",
			wantValue: weightCompanySize / 2,
		},
		{
			name:      "budget at 75 percent earns half weight",
			mutate:    func(l *domain.Lead) { l.Budget = 750 },
			factor:    "budget",
			wantValue: weightBudget / 2,
		},
		{
			name:      "unknown industry earns nothing",
			mutate:    func(l *domain.Lead) { l.Industry = "forestry" },
			factor:    "industry",
			wantValue: 0,
		},
		{
			name:      "non decision maker title earns nothing",
			mutate:    func(l *domain.Lead) { l.JobTitle = "intern" },
			factor:    "job_title",
			wantValue: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lead := fullyQualifiedLead()
			tt.mutate(&lead)

			result := svc.Qualify(lead, domain.DefaultCriteria())
			if got := result.Details.Factors[tt.factor]; got != tt.wantValue {
				t.Fatalf("factor %s = %v, want %v", tt.factor, got, tt.wantValue)
			}
		})
	}
}

func TestQualifyThresholdBoundary(t *testing.T) {
	svc := NewService(nil)

	// Industry + budget + job title earn 65 of 100, just over the line.
	lead := domain.Lead{
		Email:    "boundary@case.io",
		Industry: "finance",
		Budget:   2000,
		JobTitle: "Head of Procurement",
	}

	result := svc.Qualify(lead, domain.DefaultCriteria())
	if result.Score != 65 {
		t.Fatalf("score = %d, want 65", result.Score)
	}
	if !result.Qualified {
		t.Fatal("score above threshold with passing gates should qualify")
	}
}
