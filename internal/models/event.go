package models

import (
	"time"
)

type Event struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Location  string    `json:"location" gorm:"size:500;not null"`
	Date      time.Time `json:"date" gorm:"not null"`
	StartTime string    `json:"startTime" gorm:"size:5;not null"` // "HH:MM"
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Registrations []EventRegistration `json:"registrations" gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}
