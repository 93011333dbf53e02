package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Submission statuses. Only StatusNew is ever written by this service.
const (
	StatusNew      = "new"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// DefaultSource is stored when the client does not name one.
const DefaultSource = "web"

// Location is the client supplied position of an incident.
type Location struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	PlaceName string  `json:"place_name,omitempty"`
}

// Submission is one citizen reported incident.
type Submission struct {
	ID              string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Title           string                      `gorm:"type:text;not null" json:"title"`
	Description     string                      `gorm:"type:text;not null" json:"description"`
	MediaURLs       datatypes.JSONSlice[string] `gorm:"column:media_urls" json:"media_urls"`
	MediaTypes      datatypes.JSONSlice[string] `gorm:"column:media_types" json:"media_types"`
	VoiceTranscript *string                     `gorm:"type:text" json:"voice_transcript"`
	Location        *Location                   `gorm:"type:text;serializer:json" json:"location"`
	Tags            datatypes.JSONSlice[string] `json:"tags"`
	Anonymity       bool                        `gorm:"not null;default:false" json:"anonymity"`
	ContactInfo     *string                     `gorm:"size:512" json:"contact_info"`
	Source          string                      `gorm:"size:64;not null;default:'web'" json:"source"`
	Status          string                      `gorm:"size:16;not null;default:'new';index" json:"status"`
	CreatedAt       time.Time                   `gorm:"index" json:"created_at"`
}

// BeforeCreate assigns the identifier and fills store-side defaults.
func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = StatusNew
	}
	if s.Source == "" {
		s.Source = DefaultSource
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	return nil
}

// IsValidStatus reports whether status is one of the known review states.
func IsValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusVerified, StatusRejected:
		return true
	}
	return false
}
