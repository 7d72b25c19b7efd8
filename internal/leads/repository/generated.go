package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/domain"
)

type GeneratedLead struct {
	ID             uuid.UUID
	CompanyName    string
	Industry       string
	CompanySize    string
	Location       string
	Website        string
	Description    string
	RelevanceScore float64
	CreatedAt      time.Time
}

// SaveGenerated persists a batch of AI-generated prospect companies.
func (r *Repository) SaveGenerated(ctx context.Context, prospects []domain.GeneratedLead) ([]GeneratedLead, error) {
	saved := make([]GeneratedLead, 0, len(prospects))
	for _, prospect := range prospects {
		var row GeneratedLead
		err := r.pool.QueryRow(ctx, `
			INSERT INTO generated_leads (company_name, industry, company_size, location, website, description, relevance_score)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, company_name, industry, company_size, location, website, description, relevance_score, created_at
		`, prospect.CompanyName, prospect.Industry, prospect.CompanySize, prospect.Location,
			prospect.Website, prospect.Description, prospect.RelevanceScore,
		).Scan(
			&row.ID, &row.CompanyName, &row.Industry, &row.CompanySize, &row.Location,
			&row.Website, &row.Description, &row.RelevanceScore, &row.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		saved = append(saved, row)
	}
	return saved, nil
}
