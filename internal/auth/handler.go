package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/httpkit"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// CredentialsRequest is the JSON body of signup and login.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type Handler struct {
	svc *Service
	val *validator.Validator
}

func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) SignUp(c *gin.Context) {
	req, ok := h.bindCredentials(c)
	if !ok {
		return
	}

	user, token, err := h.svc.SignUp(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, ErrEmailTaken) {
		httpkit.Error(c, http.StatusConflict, "email already registered", nil)
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, gin.H{
		"message":      "account created",
		"user_id":      user.ID,
		"access_token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	req, ok := h.bindCredentials(c)
	if !ok {
		return
	}

	user, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, ErrInvalidCredentials) {
		httpkit.Error(c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user_id":      user.ID,
	})
}

// ExportData returns everything stored about the authenticated user.
// Users can only export their own data.
func (h *Handler) ExportData(c *gin.Context) {
	userID, ok := h.ownUserID(c)
	if !ok {
		return
	}

	export, err := h.svc.ExportData(c.Request.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		httpkit.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, export)
}

// DeleteAccount removes the user and all their chat history.
func (h *Handler) DeleteAccount(c *gin.Context) {
	userID, ok := h.ownUserID(c)
	if !ok {
		return
	}

	purged, err := h.svc.DeleteAccount(c.Request.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		httpkit.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{
		"message":          "account deleted",
		"chat_logs_purged": purged,
	})
}

func (h *Handler) ownUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid user id", nil)
		return uuid.Nil, false
	}

	identity := httpkit.MustGetIdentity(c)
	if identity.UserID() != userID {
		httpkit.Error(c, http.StatusForbidden, "cannot access another user's data", nil)
		return uuid.Nil, false
	}
	return userID, true
}

func (h *Handler) bindCredentials(c *gin.Context) (CredentialsRequest, bool) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return CredentialsRequest{}, false
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return CredentialsRequest{}, false
	}
	return req, true
}
