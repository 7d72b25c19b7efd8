package chat

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrLogNotFound = errors.New("chat log not found")

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Log is one stored chat exchange.
type Log struct {
	ID           uuid.UUID
	Email        string
	UserID       string
	UserMessage  string
	ChatbotReply string
	ResponseTime float64
	Platform     string
	ScrapedData  map[string]any
	CreatedAt    time.Time
}

type StoreExchangeParams struct {
	Email        string
	UserID       string
	UserMessage  string
	ChatbotReply string
	ResponseTime float64
	Platform     string
	ScrapedData  map[string]any
}

func (r *Repository) StoreExchange(ctx context.Context, params StoreExchangeParams) (Log, error) {
	var scraped []byte
	if params.ScrapedData != nil {
		encoded, err := json.Marshal(params.ScrapedData)
		if err != nil {
			return Log{}, err
		}
		scraped = encoded
	}

	var log Log
	var rawScraped []byte
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat_logs (email, user_id, user_message, chatbot_reply, response_time, platform, scraped_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, email, user_id, user_message, chatbot_reply, response_time, platform, scraped_data, created_at
	`, params.Email, params.UserID, params.UserMessage, params.ChatbotReply,
		params.ResponseTime, params.Platform, scraped,
	).Scan(
		&log.ID, &log.Email, &log.UserID, &log.UserMessage, &log.ChatbotReply,
		&log.ResponseTime, &log.Platform, &rawScraped, &log.CreatedAt,
	)
	if err != nil {
		return Log{}, err
	}
	if len(rawScraped) > 0 {
		_ = json.Unmarshal(rawScraped, &log.ScrapedData)
	}
	return log, nil
}

// ConversationHistory returns the most recent exchanges for an email,
// oldest first, ready to replay into the model context.
func (r *Repository) ConversationHistory(ctx context.Context, email string, limit int) ([]Log, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, user_id, user_message, chatbot_reply, response_time, platform, created_at
		FROM chat_logs
		WHERE email = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, email, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs, err := scanLogs(rows)
	if err != nil {
		return nil, err
	}

	// Reverse so the oldest exchange comes first.
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs, nil
}

// UserHistory returns a user's exchanges, newest first.
func (r *Repository) UserHistory(ctx context.Context, userID string, limit int) ([]Log, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, user_id, user_message, chatbot_reply, response_time, platform, created_at
		FROM chat_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLogs(rows)
}

// EmailHistory returns all exchanges for an email, oldest first. Used
// when merging local history with CRM-side conversations.
func (r *Repository) EmailHistory(ctx context.Context, email string) ([]Log, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, email, user_id, user_message, chatbot_reply, response_time, platform, created_at
		FROM chat_logs
		WHERE email = $1
		ORDER BY created_at ASC
	`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLogs(rows)
}

// DeleteByUser removes all exchanges for a user. Supports data
// deletion requests.
func (r *Repository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM chat_logs WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteByEmail removes all exchanges tied to an email address.
func (r *Repository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM chat_logs WHERE email = $1`, email)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanLogs(rows pgx.Rows) ([]Log, error) {
	logs := make([]Log, 0)
	for rows.Next() {
		var log Log
		if err := rows.Scan(
			&log.ID, &log.Email, &log.UserID, &log.UserMessage, &log.ChatbotReply,
			&log.ResponseTime, &log.Platform, &log.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
