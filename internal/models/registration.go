package models

import (
	"time"
)

// EventRegistration is one attendee signup for an Event. At most one
// registration may exist per email per event.
type EventRegistration struct {
	ID                    uint      `json:"id" gorm:"primaryKey"`
	EventID               uint      `json:"eventId" gorm:"not null;uniqueIndex:idx_event_email"`
	Name                  string    `json:"name" gorm:"size:100;not null"`
	Email                 string    `json:"email" gorm:"size:200;not null;uniqueIndex:idx_event_email"`
	Pronouns              string    `json:"pronouns" gorm:"size:50"`
	OptInForCommunication bool      `json:"optInForCommunication"`
	RegisteredAt          time.Time `json:"registeredAt"`
}
