package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/domain"
)

var ErrNotFound = errors.New("lead not found")

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID              uuid.UUID
	Email           string
	FirstName       string
	LastName        string
	Company         string
	CompanySize     int
	Industry        string
	JobTitle        string
	Phone           string
	Budget          float64
	BuyingTimeframe string
	Website         string
	Source          string
	Message         string
	Location        string
	Qualified       *bool
	Score           *int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Domain converts the row into the domain lead used by scoring and CRM sync.
func (l Lead) Domain() domain.Lead {
	return domain.Lead{
		ID:              l.ID,
		Email:           l.Email,
		FirstName:       l.FirstName,
		LastName:        l.LastName,
		Company:         l.Company,
		CompanySize:     l.CompanySize,
		Industry:        l.Industry,
		JobTitle:        l.JobTitle,
		Phone:           l.Phone,
		Budget:          l.Budget,
		BuyingTimeframe: l.BuyingTimeframe,
		Website:         l.Website,
		Source:          l.Source,
		Message:         l.Message,
		Location:        l.Location,
		CreatedAt:       l.CreatedAt,
	}
}

const leadColumns = `id, email, first_name, last_name, company, company_size, industry, job_title,
		phone, budget, buying_timeframe, website, source, message, location, qualified, score,
		created_at, updated_at`

// Upsert inserts the lead or merges it into the existing row for the
// same email. Incoming empty fields never overwrite stored values.
func (r *Repository) Upsert(ctx context.Context, lead domain.Lead) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			email, first_name, last_name, company, company_size, industry, job_title,
			phone, budget, buying_timeframe, website, source, message, location
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (email) DO UPDATE SET
			first_name = COALESCE(NULLIF(EXCLUDED.first_name, ''), leads.first_name),
			last_name = COALESCE(NULLIF(EXCLUDED.last_name, ''), leads.last_name),
			company = COALESCE(NULLIF(EXCLUDED.company, ''), leads.company),
			company_size = CASE WHEN EXCLUDED.company_size > 0 THEN EXCLUDED.company_size ELSE leads.company_size END,
			industry = COALESCE(NULLIF(EXCLUDED.industry, ''), leads.industry),
			job_title = COALESCE(NULLIF(EXCLUDED.job_title, ''), leads.job_title),
			phone = COALESCE(NULLIF(EXCLUDED.phone, ''), leads.phone),
			budget = CASE WHEN EXCLUDED.budget > 0 THEN EXCLUDED.budget ELSE leads.budget END,
			buying_timeframe = COALESCE(NULLIF(EXCLUDED.buying_timeframe, ''), leads.buying_timeframe),
			website = COALESCE(NULLIF(EXCLUDED.website, ''), leads.website),
			source = COALESCE(NULLIF(EXCLUDED.source, ''), leads.source),
			message = COALESCE(NULLIF(EXCLUDED.message, ''), leads.message),
			location = COALESCE(NULLIF(EXCLUDED.location, ''), leads.location),
			updated_at = now()
		RETURNING `+leadColumns,
		lead.Email, lead.FirstName, lead.LastName, lead.Company, lead.CompanySize, lead.Industry,
		lead.JobTitle, lead.Phone, lead.Budget, lead.BuyingTimeframe, lead.Website, lead.Source,
		lead.Message, lead.Location,
	)
	return scanLead(row)
}

func (r *Repository) List(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, lead)
	}
	return items, rows.Err()
}

// SetQualification records the latest scoring outcome on the lead row.
func (r *Repository) SetQualification(ctx context.Context, id uuid.UUID, qualified bool, score int) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE leads
		SET qualified = $2, score = $3, updated_at = now()
		WHERE id = $1
	`, id, qualified, score)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.Email, &lead.FirstName, &lead.LastName, &lead.Company, &lead.CompanySize,
		&lead.Industry, &lead.JobTitle, &lead.Phone, &lead.Budget, &lead.BuyingTimeframe,
		&lead.Website, &lead.Source, &lead.Message, &lead.Location, &lead.Qualified, &lead.Score,
		&lead.CreatedAt, &lead.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}
	return lead, nil
}
