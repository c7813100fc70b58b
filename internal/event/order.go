package event

import "time"

const (
	SubmissionsTopic       = "tableorder.submissions"
	EventOrderItemAccepted = "order.item.accepted"
	EventOrderItemRejected = "order.item.rejected"
)

// OrderItemSubmissionEvent is published to NATS for every settled item
// submission, accepted or rejected. Consumers (the table UI, floor
// dashboards) use it as the notification side channel.
type OrderItemSubmissionEvent struct {
	EventType    string    `json:"event_type"`
	OccurredAt   time.Time `json:"occurred_at"`
	SubmissionID string    `json:"submission_id"`
	Table        string    `json:"table"`
	Code         int       `json:"code"`
	Quantity     int       `json:"quantity"`

	// Denormalized data for display
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason,omitempty"`
}
