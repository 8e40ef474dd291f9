package interfaces

import "context"

// EventType identifies a pub/sub event
type EventType string

const (
	// EventPipelineStage fires on every orchestrator state transition
	EventPipelineStage EventType = "pipeline_stage"
	// EventSamplePersisted fires after a sample lands in the dataset
	EventSamplePersisted EventType = "sample_persisted"
	// EventTrainingStatus fires when a training job changes status
	EventTrainingStatus EventType = "training_status"
)

// Event is a single published message
type Event struct {
	Type    EventType              `json:"type"`
	Payload map[string]interface{} `json:"payload"`
}

// EventHandler processes a published event
type EventHandler func(ctx context.Context, event Event) error

// EventService is an in-process pub/sub bus used to surface pipeline
// progress to the websocket layer
type EventService interface {
	Subscribe(eventType EventType, handler EventHandler) error
	Publish(ctx context.Context, event Event) error
}
