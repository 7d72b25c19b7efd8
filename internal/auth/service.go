package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/chat"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/config"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/logger"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

const accessTokenType = "access"

// ChatLogs is the slice of the chat store the account endpoints need
// for data export and deletion.
type ChatLogs interface {
	EmailHistory(ctx context.Context, email string) ([]chat.Log, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

type Service struct {
	repo *Repository
	logs ChatLogs
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

func NewService(repo *Repository, logs ChatLogs, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, logs: logs, cfg: cfg, log: log}
}

// SignUp creates an account and returns it with a fresh access token.
func (s *Service) SignUp(ctx context.Context, email, plainPassword string) (User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return User{}, "", err
	}

	user, err := s.repo.CreateUser(ctx, email, string(hash))
	if err != nil {
		return User{}, "", err
	}

	token, err := s.signAccessToken(user)
	if err != nil {
		return User{}, "", err
	}

	s.log.Info("user signed up", "user_id", user.ID)
	return user, token, nil
}

// Login verifies credentials and returns the account with an access
// token. Unknown emails and wrong passwords are indistinguishable.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plainPassword)); err != nil {
		return User{}, "", ErrInvalidCredentials
	}

	token, err := s.signAccessToken(user)
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// Export bundles everything stored about an account for a data access
// request.
type Export struct {
	User        User       `json:"user"`
	ChatHistory []chat.Log `json:"chat_history"`
	ExportedAt  time.Time  `json:"exported_at"`
}

func (s *Service) ExportData(ctx context.Context, userID uuid.UUID) (Export, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return Export{}, err
	}

	history, err := s.logs.EmailHistory(ctx, user.Email)
	if err != nil {
		return Export{}, err
	}

	return Export{User: user, ChatHistory: history, ExportedAt: time.Now().UTC()}, nil
}

// DeleteAccount removes the user and every chat exchange tied to their
// email. Returns how many exchanges were purged.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID) (int64, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	purged, err := s.logs.DeleteByEmail(ctx, user.Email)
	if err != nil {
		return 0, err
	}

	if err := s.repo.DeleteUser(ctx, userID); err != nil {
		return purged, err
	}

	s.log.Info("user account deleted", "user_id", userID, "chat_logs_purged", purged)
	return purged, nil
}

func (s *Service) signAccessToken(user User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"type":  accessTokenType,
		"exp":   now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":   now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
