// Package analytics serves usage metrics, stores user feedback and
// answers the static FAQ endpoint.
package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DailyCount is one day of activity.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ChatMetrics summarizes chat volume and latency.
type ChatMetrics struct {
	TotalMessages       int          `json:"total_messages"`
	AvgResponseTime     float64      `json:"avg_response_time"`
	DailyMessages       []DailyCount `json:"daily_messages"`
	ActiveUsersLastWeek int          `json:"active_users_last_week"`
}

// UserMetrics summarizes account growth.
type UserMetrics struct {
	TotalUsers    int          `json:"total_users"`
	NewUsersDaily []DailyCount `json:"new_users_daily"`
}

// Feedback is a stored user rating.
type Feedback struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Rating       int       `json:"rating"`
	FeedbackText string    `json:"feedback_text"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) ChatMetrics(ctx context.Context) (ChatMetrics, error) {
	var metrics ChatMetrics
	err := r.pool.QueryRow(ctx, `
		SELECT count(*), coalesce(avg(response_time), 0)
		FROM chat_logs
	`).Scan(&metrics.TotalMessages, &metrics.AvgResponseTime)
	if err != nil {
		return ChatMetrics{}, err
	}

	err = r.pool.QueryRow(ctx, `
		SELECT count(DISTINCT user_id)
		FROM chat_logs
		WHERE created_at >= now() - interval '7 days'
	`).Scan(&metrics.ActiveUsersLastWeek)
	if err != nil {
		return ChatMetrics{}, err
	}

	daily, err := r.dailyCounts(ctx, "chat_logs")
	if err != nil {
		return ChatMetrics{}, err
	}
	metrics.DailyMessages = daily

	return metrics, nil
}

func (r *Repository) UserMetrics(ctx context.Context) (UserMetrics, error) {
	var metrics UserMetrics
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&metrics.TotalUsers); err != nil {
		return UserMetrics{}, err
	}

	daily, err := r.dailyCounts(ctx, "users")
	if err != nil {
		return UserMetrics{}, err
	}
	metrics.NewUsersDaily = daily

	return metrics, nil
}

func (r *Repository) SaveFeedback(ctx context.Context, email string, rating int, text string) (Feedback, error) {
	var fb Feedback
	err := r.pool.QueryRow(ctx, `
		INSERT INTO user_feedback (email, rating, feedback_text)
		VALUES ($1, $2, $3)
		RETURNING id, email, rating, feedback_text, created_at
	`, email, rating, text).Scan(&fb.ID, &fb.Email, &fb.Rating, &fb.FeedbackText, &fb.CreatedAt)
	if err != nil {
		return Feedback{}, err
	}
	return fb, nil
}

// dailyCounts buckets rows created in the last 7 days by calendar day.
// table is always a compile-time constant, never user input.
func (r *Repository) dailyCounts(ctx context.Context, table string) ([]DailyCount, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(created_at::date, 'YYYY-MM-DD'), count(*)
		FROM `+table+`
		WHERE created_at >= now() - interval '7 days'
		GROUP BY created_at::date
		ORDER BY created_at::date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make([]DailyCount, 0, 7)
	for rows.Next() {
		var dc DailyCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, dc)
	}
	return counts, rows.Err()
}
