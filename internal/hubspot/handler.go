package hubspot

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/httpkit"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// ContactRequest is the body for creating a CRM contact.
type ContactRequest struct {
	Email          string `json:"email" validate:"required,email"`
	FirstName      string `json:"firstname"`
	LastName       string `json:"lastname"`
	Phone          string `json:"phone"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	JobTitle       string `json:"jobtitle"`
	LifecycleStage string `json:"lifecycle_stage"`
	LeadSource     string `json:"lead_source"`
}

func (r ContactRequest) properties() map[string]string {
	properties := map[string]string{"email": r.Email}
	optional := map[string]string{
		"firstname":      r.FirstName,
		"lastname":       r.LastName,
		"phone":          r.Phone,
		"company":        r.Company,
		"website":        r.Website,
		"jobtitle":       r.JobTitle,
		"lifecyclestage": r.LifecycleStage,
		"lead_source":    r.LeadSource,
	}
	for key, value := range optional {
		if value != "" {
			properties[key] = value
		}
	}
	return properties
}

// ContactUpdateRequest is the body for patching a CRM contact. Every
// field is optional, empty fields are left untouched.
type ContactUpdateRequest struct {
	Email          string `json:"email" validate:"omitempty,email"`
	FirstName      string `json:"firstname"`
	LastName       string `json:"lastname"`
	Phone          string `json:"phone"`
	Company        string `json:"company"`
	Website        string `json:"website"`
	JobTitle       string `json:"jobtitle"`
	LifecycleStage string `json:"lifecycle_stage"`
	LeadSource     string `json:"lead_source"`
}

func (r ContactUpdateRequest) properties() map[string]string {
	properties := map[string]string{}
	optional := map[string]string{
		"email":          r.Email,
		"firstname":      r.FirstName,
		"lastname":       r.LastName,
		"phone":          r.Phone,
		"company":        r.Company,
		"website":        r.Website,
		"jobtitle":       r.JobTitle,
		"lifecyclestage": r.LifecycleStage,
		"lead_source":    r.LeadSource,
	}
	for key, value := range optional {
		if value != "" {
			properties[key] = value
		}
	}
	return properties
}

type ConfigureWebhookRequest struct {
	WebhookURL string `json:"webhook_url"`
}

type Handler struct {
	svc              *Service
	client           *Client
	val              *validator.Validator
	defaultTargetURL string
}

func NewHandler(svc *Service, client *Client, val *validator.Validator, defaultTargetURL string) *Handler {
	return &Handler{
		svc:              svc,
		client:           client,
		val:              val,
		defaultTargetURL: defaultTargetURL,
	}
}

// ListContacts proxies paginated contact listing from the CRM.
func (h *Handler) ListContacts(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httpkit.Error(c, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		limit = parsed
	}

	page, err := h.client.ListContacts(c.Request.Context(), c.Query("after"), limit)
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "could not list contacts", err.Error())
		return
	}
	httpkit.OK(c, page)
}

// CreateContact creates a contact in the CRM.
func (h *Handler) CreateContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	contact, err := h.client.CreateContact(c.Request.Context(), req.properties())
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "could not create contact", err.Error())
		return
	}
	httpkit.JSON(c, http.StatusCreated, contact)
}

// UpdateContact patches contact properties in the CRM.
func (h *Handler) UpdateContact(c *gin.Context) {
	var req ContactUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	properties := req.properties()
	if len(properties) == 0 {
		httpkit.Error(c, http.StatusBadRequest, "no properties to update", nil)
		return
	}

	contact, err := h.client.UpdateContact(c.Request.Context(), c.Param("contactId"), properties)
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "could not update contact", err.Error())
		return
	}
	httpkit.OK(c, contact)
}

// GetContact retrieves a single contact by its CRM ID.
func (h *Handler) GetContact(c *gin.Context) {
	contact, err := h.client.GetContact(c.Request.Context(), c.Param("contactId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadGateway, "could not retrieve contact", err.Error())
		return
	}
	httpkit.OK(c, contact)
}

// Webhook receives CRM events and routes them into the chatbot.
func (h *Handler) Webhook(c *gin.Context) {
	var payload WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.ProcessWebhook(c.Request.Context(), payload)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"success": true, "result": result})
}

// ConfigureWebhook registers this service's webhook endpoint with the CRM.
func (h *Handler) ConfigureWebhook(c *gin.Context) {
	var req ConfigureWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	target := req.WebhookURL
	if target == "" {
		target = h.defaultTargetURL
	}

	if err := h.svc.ConfigureWebhook(c.Request.Context(), target); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"success": true, "webhook_url": target})
}

// ConversationHistory merges CRM notes and chat logs for a contact.
func (h *Handler) ConversationHistory(c *gin.Context) {
	email := c.Param("email")
	if err := h.val.Var(email, "required,email"); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, "valid email required")
		return
	}

	entries, err := h.svc.ConversationHistory(c.Request.Context(), email)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"email": email, "conversations": entries})
}
