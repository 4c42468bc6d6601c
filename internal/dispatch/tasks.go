package dispatch

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskFollowUpAction = "followup.action.due"

// FollowUpActionPayload identifies one due action to deliver. The worker
// re-reads everything else from the engine, so the payload stays minimal.
type FollowUpActionPayload struct {
	ActionID   string `json:"actionId"`
	LeadID     string `json:"leadId"`
	ActionType string `json:"actionType"`
	TemplateID string `json:"templateId,omitempty"`
	AssignedTo string `json:"assignedTo"`
}

func NewFollowUpActionTask(payload FollowUpActionPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFollowUpAction, data), nil
}

func ParseFollowUpActionPayload(task *asynq.Task) (FollowUpActionPayload, error) {
	var payload FollowUpActionPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return FollowUpActionPayload{}, err
	}
	return payload, nil
}
