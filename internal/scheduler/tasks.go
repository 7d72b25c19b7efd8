// Package scheduler runs CRM synchronization work on a Redis-backed
// task queue so chat requests never wait on HubSpot round trips.
package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/magi8101/AI-PWERED-CHATBOT-CRM/internal/events"
)

const TaskContactSync = "crm.contact.sync"

const TaskLeadSync = "crm.lead.sync"

const TaskActivityLog = "crm.activity.log"

type ContactSyncPayload struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type LeadSyncPayload struct {
	Event events.LeadCaptured `json:"event"`
}

type ActivityLogPayload struct {
	Email        string         `json:"email"`
	ActivityType string         `json:"activityType"`
	Details      map[string]any `json:"details,omitempty"`
}

func NewContactSyncTask(payload ContactSyncPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskContactSync, data), nil
}

func ParseContactSyncPayload(task *asynq.Task) (ContactSyncPayload, error) {
	var payload ContactSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ContactSyncPayload{}, err
	}
	return payload, nil
}

func NewLeadSyncTask(payload LeadSyncPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadSync, data), nil
}

func ParseLeadSyncPayload(task *asynq.Task) (LeadSyncPayload, error) {
	var payload LeadSyncPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadSyncPayload{}, err
	}
	return payload, nil
}

func NewActivityLogTask(payload ActivityLogPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskActivityLog, data), nil
}

func ParseActivityLogPayload(task *asynq.Task) (ActivityLogPayload, error) {
	var payload ActivityLogPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return ActivityLogPayload{}, err
	}
	return payload, nil
}
