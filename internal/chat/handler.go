package chat

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/httpkit"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"

	maxUploadBytes = 10 << 20
)

// ChatRequest is the JSON body of the chat endpoints.
type ChatRequest struct {
	Email       string         `json:"email" validate:"required,email"`
	UserID      string         `json:"user_id"`
	Message     string         `json:"message" validate:"required"`
	ScrapedData map[string]any `json:"scraped_data,omitempty"`
}

func (r ChatRequest) toRequest() Request {
	return Request{
		Email:       r.Email,
		UserID:      r.UserID,
		Message:     r.Message,
		ScrapedData: r.ScrapedData,
	}
}

// HistoryMessage is one exchange in the chat history response.
type HistoryMessage struct {
	ID           string    `json:"id"`
	UserMessage  string    `json:"user_message"`
	ChatbotReply string    `json:"chatbot_reply"`
	Timestamp    time.Time `json:"timestamp"`
}

type Handler struct {
	svc *Service
	val *validator.Validator
}

func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Chat answers a plain chat message.
func (h *Handler) Chat(c *gin.Context) {
	req, ok := h.bindChatRequest(c)
	if !ok {
		return
	}
	// Plain chat ignores scraped page data.
	req.ScrapedData = nil

	reply := h.svc.Respond(c.Request.Context(), req.toRequest(), PlatformWeb)
	httpkit.OK(c, gin.H{"ai_reply": reply})
}

// Extension answers a chat message from the browser extension, which
// may include scraped page data for context.
func (h *Handler) Extension(c *gin.Context) {
	req, ok := h.bindChatRequest(c)
	if !ok {
		return
	}

	reply := h.svc.Respond(c.Request.Context(), req.toRequest(), PlatformExtension)
	httpkit.OK(c, gin.H{"ai_reply": reply})
}

// ProductRecommendations answers a chat message and appends nearby
// product options based on the caller's location.
func (h *Handler) ProductRecommendations(c *gin.Context) {
	req, ok := h.bindChatRequest(c)
	if !ok {
		return
	}

	reply, location := h.svc.RespondWithRecommendations(c.Request.Context(), req.toRequest(), c.ClientIP())
	httpkit.OK(c, gin.H{
		"ai_reply": reply,
		"user_location": gin.H{
			"city": location.City,
			"area": location.Area,
			"ip":   location.IP,
		},
	})
}

// FileUpload analyzes an uploaded PDF or image inside the chat flow.
func (h *Handler) FileUpload(c *gin.Context) {
	email := c.PostForm("email")
	if err := h.val.Var(email, "required,email"); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, "email is required")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "file is required")
		return
	}
	if header.Size > maxUploadBytes {
		httpkit.Error(c, http.StatusRequestEntityTooLarge, "file too large", nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "could not read file", nil)
		return
	}

	extension := ""
	if idx := strings.LastIndexByte(header.Filename, '.'); idx >= 0 {
		extension = header.Filename[idx+1:]
	}

	reply, err := h.svc.AnalyzeFileUpload(c.Request.Context(), FileUploadRequest{
		Email:     email,
		UserID:    c.DefaultPostForm("user_id", "anonymous"),
		Message:   c.PostForm("message"),
		FileName:  header.Filename,
		Extension: extension,
		Content:   content,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"ai_reply": reply})
}

// History returns a user's stored exchanges, newest first.
func (h *Handler) History(c *gin.Context) {
	userID := c.Param("id")

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httpkit.Error(c, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}

	logs, err := h.svc.History(c.Request.Context(), userID, limit)
	if httpkit.HandleError(c, err) {
		return
	}

	messages := make([]HistoryMessage, 0, len(logs))
	for _, log := range logs {
		messages = append(messages, HistoryMessage{
			ID:           log.ID.String(),
			UserMessage:  log.UserMessage,
			ChatbotReply: log.ChatbotReply,
			Timestamp:    log.CreatedAt,
		})
	}
	httpkit.OK(c, gin.H{"messages": messages})
}

func (h *Handler) bindChatRequest(c *gin.Context) (ChatRequest, bool) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return ChatRequest{}, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return ChatRequest{}, false
	}
	return req, true
}
