package domain

import "time"

// Feedback is a user feedback message. Immutable after creation; there is no
// update path, only create/read/delete.
type Feedback struct {
	ID          string    `json:"id"`
	Type        string    `json:"type" validate:"required"`
	Message     string    `json:"message" validate:"required"`
	UUID        string    `json:"uuid"`
	CreatedDate time.Time `json:"createdDate"`
}

// FeedbackInput is the client-supplied portion of a feedback message.
type FeedbackInput struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
