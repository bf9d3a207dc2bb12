package model

// CreateMessagePayload is the body of POST /api/messages.
type CreateMessagePayload struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	MessageText string `json:"message_text" validate:"required"`
	MessageType string `json:"message_type"`
}

// UpsertUserPayload is the body of POST /api/users. Name and Email stay
// pointers so "absent" is distinguishable from "empty": an absent field
// must not clear a stored value.
type UpsertUserPayload struct {
	PhoneNumber string  `json:"phone_number" validate:"required"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
}

// UpdateMessageStatusPayload is the body of PUT /api/messages/:id/status.
type UpdateMessageStatusPayload struct {
	Status string `json:"status" validate:"required"`
}
