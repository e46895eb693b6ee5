package models

import (
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

// InvitationStatus is the lock state of an invitation.
// Keep values stable because they are part of the public API.
type InvitationStatus string

const (
	// StatusPending means the invitation is open: the guest may still
	// submit or change an RSVP.
	StatusPending InvitationStatus = "pending"
	// StatusResponded means the invitation is locked against further
	// submissions until an admin unlocks it.
	StatusResponded InvitationStatus = "responded"
)

// Toggled returns the other state. The status domain has exactly two
// states, so a double toggle is always a round trip.
func (s InvitationStatus) Toggled() InvitationStatus {
	if s == StatusPending {
		return StatusResponded
	}
	return StatusPending
}

// Valid reports whether s is one of the two known states.
func (s InvitationStatus) Valid() bool {
	return s == StatusPending || s == StatusResponded
}

// Invitation is one invited family/party unit.
type Invitation struct {
	ID         string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	Code       string           `gorm:"type:varchar(16);uniqueIndex;not null" json:"code"`
	FamilyName string           `gorm:"type:varchar(100);not null" json:"family_name"`
	MaxGuests  int              `gorm:"not null;default:2" json:"max_guests"`
	Status     InvitationStatus `gorm:"type:varchar(16);not null;default:pending" json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	if i.Code == "" {
		code, err := gonanoid.New(10)
		if err != nil {
			return err
		}
		i.Code = code
	}
	if i.Status == "" {
		i.Status = StatusPending
	}
	return nil
}
