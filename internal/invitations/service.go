// Package invitations holds the admin-facing operations on invitations
// and their guest responses. The database handle is injected so tests
// can run against an in-memory SQLite instance.
package invitations

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/Asnor14/rsvp01-admin/internal/models"
	"github.com/Asnor14/rsvp01-admin/internal/stats"
)

// MaxGuests domain bounds, enforced at write time rather than by a
// storage constraint.
const (
	MinGuestsPerInvitation = 1
	MaxGuestsPerInvitation = 10
)

var (
	ErrFamilyNameRequired   = errors.New("Family name is required")
	ErrMaxGuestsOutOfRange  = errors.New("Max guests must be between 1 and 10")
	ErrInvitationIDRequired = errors.New("Invitation ID is required")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvalidStatus        = errors.New("invalid invitation status")
	ErrInvitationLocked     = errors.New("invitation is locked and no longer accepts responses")
	ErrGuestNameRequired    = errors.New("Guest name is required")
	ErrGuestCountOutOfRange = errors.New("guest count exceeds the invitation limit")
)

// IsValidationError reports whether err stems from bad input rather
// than a persistence failure, so handlers can pick a 4xx status.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrFamilyNameRequired),
		errors.Is(err, ErrMaxGuestsOutOfRange),
		errors.Is(err, ErrInvitationIDRequired),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrGuestNameRequired),
		errors.Is(err, ErrGuestCountOutOfRange):
		return true
	}
	return false
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Create validates the input and inserts a new pending invitation.
// Validation failures never reach the database.
func (s *Service) Create(familyName string, maxGuests int) (*models.Invitation, error) {
	familyName = strings.TrimSpace(familyName)
	if familyName == "" {
		return nil, ErrFamilyNameRequired
	}
	if maxGuests < MinGuestsPerInvitation || maxGuests > MaxGuestsPerInvitation {
		return nil, ErrMaxGuestsOutOfRange
	}

	invitation := models.Invitation{
		FamilyName: familyName,
		MaxGuests:  maxGuests,
		Status:     models.StatusPending,
	}
	if err := s.db.Create(&invitation).Error; err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}
	return &invitation, nil
}

// Update changes an invitation's guest cap within the same bounds as Create.
func (s *Service) Update(id string, maxGuests int) (*models.Invitation, error) {
	if id == "" {
		return nil, ErrInvitationIDRequired
	}
	if maxGuests < MinGuestsPerInvitation || maxGuests > MaxGuestsPerInvitation {
		return nil, ErrMaxGuestsOutOfRange
	}

	var invitation models.Invitation
	if err := s.db.First(&invitation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to load invitation: %w", err)
	}

	invitation.MaxGuests = maxGuests
	if err := s.db.Save(&invitation).Error; err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}
	return &invitation, nil
}

// Delete removes an invitation and its guest rows. Guest rows go first:
// if that step fails the invitation row is left in place so no guest can
// end up referencing a deleted invitation, and the failure names which
// half went wrong.
func (s *Service) Delete(id string) error {
	if id == "" {
		return ErrInvitationIDRequired
	}

	if err := s.db.Where("invitation_id = ?", id).Delete(&models.Guest{}).Error; err != nil {
		return fmt.Errorf("failed to delete guests: %w", err)
	}

	result := s.db.Delete(&models.Invitation{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete invitation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

// ToggleStatus flips an invitation between pending and responded. The
// new status is persisted before anything is returned, so a failed
// write leaves the caller's view untouched.
func (s *Service) ToggleStatus(id string, next models.InvitationStatus) (*models.Invitation, error) {
	if id == "" {
		return nil, ErrInvitationIDRequired
	}
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	var invitation models.Invitation
	if err := s.db.First(&invitation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to load invitation: %w", err)
	}

	if err := s.db.Model(&invitation).Update("status", next).Error; err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}
	invitation.Status = next
	return &invitation, nil
}

// ListWithStats returns every invitation, newest first, joined to its
// guest responses and their per-invitation summary.
func (s *Service) ListWithStats() ([]stats.InvitationWithStats, error) {
	var invitations []models.Invitation
	if err := s.db.Order("created_at DESC").Find(&invitations).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch invitations: %w", err)
	}

	var guests []models.Guest
	if err := s.db.Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch guests: %w", err)
	}

	return stats.PerInvitation(invitations, guests), nil
}

// DashboardStats returns the global headline numbers.
func (s *Service) DashboardStats() (stats.DashboardStats, error) {
	var invitationCount int64
	if err := s.db.Model(&models.Invitation{}).Count(&invitationCount).Error; err != nil {
		return stats.DashboardStats{}, fmt.Errorf("failed to count invitations: %w", err)
	}

	var guests []models.Guest
	if err := s.db.Find(&guests).Error; err != nil {
		return stats.DashboardStats{}, fmt.Errorf("failed to fetch guests: %w", err)
	}

	return stats.Dashboard(invitationCount, guests), nil
}

// GetByCode looks up an invitation by its shareable code, for the
// public RSVP form.
func (s *Service) GetByCode(code string) (*models.Invitation, error) {
	if code == "" {
		return nil, ErrInvitationIDRequired
	}
	var invitation models.Invitation
	if err := s.db.First(&invitation, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, fmt.Errorf("failed to load invitation: %w", err)
	}
	return &invitation, nil
}

// RSVPSubmission is a guest's answer as it arrives from the public form.
type RSVPSubmission struct {
	Name             string
	Attending        bool
	GuestCount       int
	Message          string
	Email            string
	AdditionalGuests models.AdditionalGuestList
}

// SubmitRSVP records a response for the invitation behind code and
// locks the invitation against further submissions. A locked invitation
// rejects the submission outright; an admin can unlock it again via
// ToggleStatus.
func (s *Service) SubmitRSVP(code string, sub RSVPSubmission) (*models.Guest, error) {
	invitation, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if invitation.Status == models.StatusResponded {
		return nil, ErrInvitationLocked
	}

	if strings.TrimSpace(sub.Name) == "" {
		return nil, ErrGuestNameRequired
	}
	if sub.Attending {
		if sub.GuestCount < 1 || sub.GuestCount > invitation.MaxGuests {
			return nil, ErrGuestCountOutOfRange
		}
	} else {
		// A declined response represents nobody.
		sub.GuestCount = 0
	}

	guest := models.Guest{
		InvitationID:     invitation.ID,
		Name:             strings.TrimSpace(sub.Name),
		Attending:        sub.Attending,
		GuestCount:       sub.GuestCount,
		Message:          sub.Message,
		Email:            sub.Email,
		AdditionalGuests: sub.AdditionalGuests,
	}
	if err := s.db.Create(&guest).Error; err != nil {
		return nil, fmt.Errorf("failed to record response: %w", err)
	}

	if err := s.db.Model(invitation).Update("status", models.StatusResponded).Error; err != nil {
		return nil, fmt.Errorf("failed to lock invitation: %w", err)
	}
	return &guest, nil
}
