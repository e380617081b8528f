package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeCompleteEvent = "event:complete"

type EventPayload struct {
	EventID string `json:"event_id"`
}

func NewCompleteEventTask(eventID string) (*asynq.Task, error) {
	payload, err := json.Marshal(EventPayload{EventID: eventID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCompleteEvent, payload), nil
}

func completeEventTaskID(eventID string) string {
	return "complete-event-" + eventID
}
