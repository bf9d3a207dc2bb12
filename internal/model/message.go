package model

import (
	"time"
)

const (
	// MessageTypeReceived is applied to every webhook-sourced message and is
	// the default for directly posted messages that omit a type.
	MessageTypeReceived = "received"
	// MessageTypeSent marks outbound messages posted through the API.
	MessageTypeSent = "sent"

	// MessageStatusPending is the initial lifecycle status of every message.
	MessageStatusPending = "pending"
)

// Message represents a stored WhatsApp message. MessageType and Status are
// free text: callers may supply values outside the constants above.
type Message struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	PhoneNumber string    `json:"phone_number" gorm:"column:phone_number;index;not null"`
	MessageText string    `json:"message_text" gorm:"column:message_text;not null"`
	MessageType string    `json:"message_type" gorm:"column:message_type;default:received"`
	Timestamp   time.Time `json:"timestamp" gorm:"column:timestamp;autoCreateTime"`
	Status      string    `json:"status" gorm:"column:status;default:pending"`
}

// TableName specifies the table name for GORM.
func (Message) TableName() string {
	return "messages"
}

// MessageFilter narrows a message listing. A zero value matches everything.
type MessageFilter struct {
	PhoneNumber string
}
