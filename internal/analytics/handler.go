package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/httpkit"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// FeedbackRequest is the JSON body of the feedback endpoint.
type FeedbackRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	FeedbackText string `json:"feedback_text" validate:"required"`
}

type Handler struct {
	repo *Repository
	val  *validator.Validator
}

func NewHandler(repo *Repository, val *validator.Validator) *Handler {
	return &Handler{repo: repo, val: val}
}

func (h *Handler) ChatMetrics(c *gin.Context) {
	metrics, err := h.repo.ChatMetrics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, metrics)
}

func (h *Handler) UserMetrics(c *gin.Context) {
	metrics, err := h.repo.UserMetrics(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, metrics)
}

func (h *Handler) SubmitFeedback(c *gin.Context) {
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	fb, err := h.repo.SaveFeedback(c.Request.Context(), req.Email, req.Rating, req.FeedbackText)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, gin.H{
		"message": "feedback submitted successfully",
		"id":      fb.ID,
	})
}

func (h *Handler) FAQ(c *gin.Context) {
	httpkit.OK(c, gin.H{"faqs": faqs})
}
