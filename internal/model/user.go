package model

import (
	"time"
)

// User represents a WhatsApp counterparty profile. PhoneNumber is the
// natural key: there is exactly one row per phone number, and upsert is the
// only write path. Name and Email are pointers so an absent value never
// overwrites a stored one (COALESCE semantics on conflict).
type User struct {
	ID            int64      `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	PhoneNumber   string     `json:"phone_number" gorm:"column:phone_number;uniqueIndex;not null"`
	Name          *string    `json:"name" gorm:"column:name"`
	Email         *string    `json:"email" gorm:"column:email"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	LastMessageAt *time.Time `json:"last_message_at" gorm:"column:last_message_at"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}
