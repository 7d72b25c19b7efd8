package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/domain"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/service"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/leads/transport"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/httpkit"
	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Qualify scores a lead against the criteria without persisting it.
func (h *Handler) Qualify(c *gin.Context) {
	var req transport.QualifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req.Lead); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result := h.svc.Qualify(req.Lead.Domain(), req.Criteria)
	httpkit.OK(c, result)
}

// CreateAndQualify persists the lead and returns it with its score.
func (h *Handler) CreateAndQualify(c *gin.Context) {
	var req transport.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	stored, result, err := h.svc.CreateAndQualify(c.Request.Context(), req.Domain())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, gin.H{
		"lead":          transport.NewLeadResponse(stored),
		"qualification": result,
	})
}

// QualificationCriteria exposes the active scoring criteria.
func (h *Handler) QualificationCriteria(c *gin.Context) {
	httpkit.OK(c, h.svc.Criteria())
}

// ChatbotToLead converts a free-form chat message into a stored lead.
func (h *Handler) ChatbotToLead(c *gin.Context) {
	var req transport.ChatbotToLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	if req.Source == "" {
		req.Source = "chatbot"
	}

	conversion, err := h.svc.ConvertChatMessage(c.Request.Context(), req.Source, req.Message)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, conversion)
}

// Generate asks the AI for prospect companies matching a profile.
func (h *Handler) Generate(c *gin.Context) {
	var req domain.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	prospects, err := h.svc.Generate(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"success": true, "leads": prospects})
}

// GenerateAndQualify generates prospects and scores each one.
func (h *Handler) GenerateAndQualify(c *gin.Context) {
	var req domain.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	prospects, err := h.svc.GenerateAndQualify(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"success": true, "leads": prospects})
}

// Enrich augments a lead with AI insights and location context.
func (h *Handler) Enrich(c *gin.Context) {
	var req transport.EnrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req.Lead); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	enrichment := h.svc.Enrich(c.Request.Context(), req.Lead.Domain(), c.ClientIP())
	httpkit.OK(c, enrichment)
}

// PersonalizedOutreach drafts AI campaign copy for a lead.
func (h *Handler) PersonalizedOutreach(c *gin.Context) {
	var req transport.OutreachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req.Lead); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	outreach, err := h.svc.PersonalizedOutreach(c.Request.Context(), req.Lead.Domain(), req.CampaignType)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"success": true, "outreach": outreach})
}

// List returns recently captured leads.
func (h *Handler) List(c *gin.Context) {
	leads, err := h.svc.List(c.Request.Context(), 50)
	if httpkit.HandleError(c, err) {
		return
	}

	responses := make([]transport.LeadResponse, 0, len(leads))
	for _, row := range leads {
		responses = append(responses, transport.NewLeadResponse(row))
	}
	httpkit.OK(c, gin.H{"leads": responses})
}
