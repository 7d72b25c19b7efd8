// Package scoring implements deterministic, criteria-weighted lead
// qualification. Required fields are hard gates; the remaining criteria
// contribute weighted credit toward a 0-100 score.
package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/domain"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
)

const (
	// scoreVersion tracks the scoring model for debugging and analysis.
	// Bump this when changing scoring logic significantly.
	scoreVersion = "2026-v1"

	// qualifyThreshold is the minimum score for a lead with passing
	// gates to count as qualified.
	qualifyThreshold = 60
)

// Criterion weights. The score is the earned fraction of the weights
// that are actually configured, scaled to 0-100, so partial criteria
// sets still produce comparable scores.
const (
	weightCompanySize = 20.0
	weightIndustry    = 25.0
	weightBudget      = 25.0
	weightJobTitle    = 15.0
	weightTimeframe   = 15.0
)

var emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w-]+\.[\w.-]+$`)

// Result is the qualification outcome for a lead.
type Result struct {
	Qualified bool    `json:"qualified"`
	Score     int     `json:"score"`
	Details   Details `json:"details"`
}

// Details explains how the score was reached.
type Details struct {
	Factors       map[string]float64 `json:"factors"`
	MissingFields []string           `json:"missing_fields,omitempty"`
	Threshold     int                `json:"threshold"`
	ScoreVersion  string             `json:"score_version"`
}

// Service qualifies leads against configurable criteria.
type Service struct {
	log *logger.Logger
}

// NewService creates a qualification service.
func NewService(log *logger.Logger) *Service {
	return &Service{log: log}
}

// Qualify scores the lead against the criteria. Missing required fields
// force Qualified to false regardless of the score.
func (s *Service) Qualify(lead domain.Lead, criteria domain.QualificationCriteria) Result {
	factors := map[string]float64{}
	missing := s.missingRequiredFields(lead, criteria)

	earned := 0.0
	possible := 0.0

	if criteria.MinCompanySize > 0 {
		possible += weightCompanySize
		earned += s.addFactor(factors, "company_size", s.scoreCompanySize(lead, criteria)*weightCompanySize)
	}
	if len(criteria.TargetIndustries) > 0 {
		possible += weightIndustry
		earned += s.addFactor(factors, "industry", s.scoreIndustry(lead, criteria)*weightIndustry)
	}
	if criteria.BudgetThreshold > 0 {
		possible += weightBudget
		earned += s.addFactor(factors, "budget", s.scoreBudget(lead, criteria)*weightBudget)
	}
	if len(criteria.DecisionMakerTitles) > 0 {
		possible += weightJobTitle
		earned += s.addFactor(factors, "job_title", s.scoreJobTitle(lead, criteria)*weightJobTitle)
	}
	if len(criteria.BuyingTimeframes) > 0 {
		possible += weightTimeframe
		earned += s.addFactor(factors, "buying_timeframe", s.scoreTimeframe(lead, criteria)*weightTimeframe)
	}

	score := 100
	if possible > 0 {
		score = clampScore(earned / possible * 100)
	}

	qualified := len(missing) == 0 && score >= qualifyThreshold

	if s.log != nil {
		s.log.Debug("lead qualified",
			"email", lead.Email,
			"score", score,
			"qualified", qualified,
			"missing_fields", missing,
		)
	}

	return Result{
		Qualified: qualified,
		Score:     score,
		Details: Details{
			Factors:       factors,
			MissingFields: missing,
			Threshold:     qualifyThreshold,
			ScoreVersion:  scoreVersion,
		},
	}
}

// missingRequiredFields checks the hard gates. Email is additionally
// validated for shape since it is the CRM identity key.
func (s *Service) missingRequiredFields(lead domain.Lead, criteria domain.QualificationCriteria) []string {
	missing := make([]string, 0)
	for _, field := range criteria.RequiredFields {
		if !s.hasField(lead, field) {
			missing = append(missing, field)
		}
	}
	return missing
}

func (s *Service) hasField(lead domain.Lead, field string) bool {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "email":
		return emailPattern.MatchString(lead.Email)
	case "phone":
		return lead.Phone != ""
	case "first_name":
		return lead.FirstName != ""
	case "last_name":
		return lead.LastName != ""
	case "company":
		return lead.Company != ""
	case "industry":
		return lead.Industry != ""
	case "job_title":
		return lead.JobTitle != ""
	case "budget":
		return lead.Budget > 0
	case "buying_timeframe":
		return lead.BuyingTimeframe != ""
	default:
		return false
	}
}

// scoreCompanySize gives full credit at or above the minimum and half
// credit from half the minimum up.
func (s *Service) scoreCompanySize(lead domain.Lead, criteria domain.QualificationCriteria) float64 {
	switch {
	case lead.CompanySize >= criteria.MinCompanySize:
		return 1
	case lead.CompanySize*2 >= criteria.MinCompanySize && lead.CompanySize > 0:
		return 0.5
	default:
		return 0
	}
}

func (s *Service) scoreIndustry(lead domain.Lead, criteria domain.QualificationCriteria) float64 {
	industry := strings.ToLower(strings.TrimSpace(lead.Industry))
	if industry == "" {
		return 0
	}
	for _, target := range criteria.TargetIndustries {
		if industry == strings.ToLower(target) {
			return 1
		}
	}
	for _, target := range criteria.TargetIndustries {
		if strings.Contains(industry, strings.ToLower(target)) {
			return 0.5
		}
	}
	return 0
}

// scoreBudget gives full credit at or above the threshold and half
// credit from 75% of it.
func (s *Service) scoreBudget(lead domain.Lead, criteria domain.QualificationCriteria) float64 {
	switch {
	case lead.Budget >= criteria.BudgetThreshold:
		return 1
	case lead.Budget >= criteria.BudgetThreshold*0.75:
		return 0.5
	default:
		return 0
	}
}

func (s *Service) scoreJobTitle(lead domain.Lead, criteria domain.QualificationCriteria) float64 {
	title := strings.ToLower(lead.JobTitle)
	if title == "" {
		return 0
	}
	for _, decisionTitle := range criteria.DecisionMakerTitles {
		if strings.Contains(title, strings.ToLower(decisionTitle)) {
			return 1
		}
	}
	return 0
}

func (s *Service) scoreTimeframe(lead domain.Lead, criteria domain.QualificationCriteria) float64 {
	timeframe := strings.ToLower(lead.BuyingTimeframe)
	if timeframe == "" {
		return 0
	}
	for _, window := range criteria.BuyingTimeframes {
		if strings.Contains(timeframe, strings.ToLower(window)) || strings.Contains(strings.ToLower(window), timeframe) {
			return 1
		}
	}
	return 0
}

func (s *Service) addFactor(factors map[string]float64, key string, value float64) float64 {
	// Round to 1 decimal place for cleaner factor display
	factors[key] = math.Round(value*10) / 10
	return value
}

func clampScore(value float64) int {
	rounded := math.Round(value)
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return int(rounded)
}
