package invitations

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Asnor14/rsvp01-admin/internal/models"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "rsvp-test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Invitation{}, &models.Guest{}))

	return NewService(db), db
}

func TestCreateValidatesBeforePersisting(t *testing.T) {
	svc, db := newTestService(t)

	_, err := svc.Create("", 2)
	assert.ErrorIs(t, err, ErrFamilyNameRequired)

	_, err = svc.Create("   ", 2)
	assert.ErrorIs(t, err, ErrFamilyNameRequired)

	_, err = svc.Create("Smith", 11)
	assert.ErrorIs(t, err, ErrMaxGuestsOutOfRange)

	_, err = svc.Create("Smith", 0)
	assert.ErrorIs(t, err, ErrMaxGuestsOutOfRange)

	// None of the rejected inputs may have reached the database.
	var count int64
	require.NoError(t, db.Model(&models.Invitation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateTrimsAndDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	invitation, err := svc.Create("  Smith  ", 4)
	require.NoError(t, err)

	assert.Equal(t, "Smith", invitation.FamilyName)
	assert.Equal(t, 4, invitation.MaxGuests)
	assert.Equal(t, models.StatusPending, invitation.Status)
	assert.NotEmpty(t, invitation.ID)
	assert.NotEmpty(t, invitation.Code)
}

func TestUpdateMaxGuests(t *testing.T) {
	svc, _ := newTestService(t)

	invitation, err := svc.Create("Smith", 2)
	require.NoError(t, err)

	_, err = svc.Update("", 5)
	assert.ErrorIs(t, err, ErrInvitationIDRequired)

	_, err = svc.Update(invitation.ID, 11)
	assert.ErrorIs(t, err, ErrMaxGuestsOutOfRange)

	updated, err := svc.Update(invitation.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.MaxGuests)

	_, err = svc.Update("missing-id", 5)
	assert.ErrorIs(t, err, ErrInvitationNotFound)
}

func TestDeleteCascadesGuestsFirst(t *testing.T) {
	svc, db := newTestService(t)

	doomed, err := svc.Create("Doomed", 2)
	require.NoError(t, err)
	keeper, err := svc.Create("Keeper", 2)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Guest{InvitationID: doomed.ID, Name: "A", Attending: true, GuestCount: 1}).Error)
	require.NoError(t, db.Create(&models.Guest{InvitationID: doomed.ID, Name: "B", Attending: false}).Error)
	require.NoError(t, db.Create(&models.Guest{InvitationID: keeper.ID, Name: "C", Attending: true, GuestCount: 2}).Error)

	require.NoError(t, svc.Delete(doomed.ID))

	var guestCount int64
	require.NoError(t, db.Model(&models.Guest{}).Where("invitation_id = ?", doomed.ID).Count(&guestCount).Error)
	assert.Zero(t, guestCount)

	err = db.First(&models.Invitation{}, "id = ?", doomed.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// The other invitation and its guest survive.
	require.NoError(t, db.Model(&models.Guest{}).Where("invitation_id = ?", keeper.ID).Count(&guestCount).Error)
	assert.EqualValues(t, 1, guestCount)
}

func TestDeleteAbortsWhenGuestDeletionFails(t *testing.T) {
	svc, db := newTestService(t)

	invitation, err := svc.Create("Smith", 2)
	require.NoError(t, err)

	// Dropping the guests table makes the guest-deletion step fail,
	// which must leave the invitation row untouched.
	require.NoError(t, db.Migrator().DropTable(&models.Guest{}))

	err = svc.Delete(invitation.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete guests")

	var survivor models.Invitation
	require.NoError(t, db.First(&survivor, "id = ?", invitation.ID).Error)
	assert.Equal(t, invitation.ID, survivor.ID)
}

func TestDeleteValidation(t *testing.T) {
	svc, _ := newTestService(t)

	assert.ErrorIs(t, svc.Delete(""), ErrInvitationIDRequired)
	assert.ErrorIs(t, svc.Delete("missing-id"), ErrInvitationNotFound)
}

func TestToggleStatusRoundTrip(t *testing.T) {
	svc, db := newTestService(t)

	invitation, err := svc.Create("Smith", 2)
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, invitation.Status)

	locked, err := svc.ToggleStatus(invitation.ID, invitation.Status.Toggled())
	require.NoError(t, err)
	assert.Equal(t, models.StatusResponded, locked.Status)

	// The new status is persisted, not only echoed back.
	var persisted models.Invitation
	require.NoError(t, db.First(&persisted, "id = ?", invitation.ID).Error)
	assert.Equal(t, models.StatusResponded, persisted.Status)

	unlocked, err := svc.ToggleStatus(invitation.ID, locked.Status.Toggled())
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, unlocked.Status)

	_, err = svc.ToggleStatus(invitation.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.ToggleStatus("missing-id", models.StatusResponded)
	assert.ErrorIs(t, err, ErrInvitationNotFound)
}

func TestListWithStatsOrdersNewestFirst(t *testing.T) {
	svc, db := newTestService(t)

	older := models.Invitation{FamilyName: "Older", MaxGuests: 2, CreatedAt: time.Now().Add(-time.Hour)}
	require.NoError(t, db.Create(&older).Error)
	newer := models.Invitation{FamilyName: "Newer", MaxGuests: 2, CreatedAt: time.Now()}
	require.NoError(t, db.Create(&newer).Error)

	require.NoError(t, db.Create(&models.Guest{InvitationID: older.ID, Name: "A", Attending: true, GuestCount: 2}).Error)

	result, err := svc.ListWithStats()
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "Newer", result[0].FamilyName)
	assert.Equal(t, "Older", result[1].FamilyName)
	assert.Equal(t, 1, result[1].Stats.TotalResponses)
	assert.Equal(t, 2, result[1].Stats.TotalGuestCount)
	assert.Zero(t, result[0].Stats.TotalResponses)
}

func TestDashboardStatsExcludesOrphans(t *testing.T) {
	svc, db := newTestService(t)

	a, err := svc.Create("A", 2)
	require.NoError(t, err)
	_, err = svc.Create("B", 2)
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Guest{InvitationID: a.ID, Name: "A1", Attending: true, GuestCount: 3}).Error)
	require.NoError(t, db.Create(&models.Guest{InvitationID: "", Name: "Orphan", Attending: true, GuestCount: 5}).Error)

	s, err := svc.DashboardStats()
	require.NoError(t, err)

	assert.Equal(t, 2, s.TotalInvitations)
	assert.Equal(t, 3, s.TotalAttending)
	assert.Equal(t, 3, s.TotalGuestCount)
	assert.Equal(t, 50, s.ResponseRate)
}

func TestSubmitRSVPLocksInvitation(t *testing.T) {
	svc, db := newTestService(t)

	invitation, err := svc.Create("Smith", 3)
	require.NoError(t, err)

	guest, err := svc.SubmitRSVP(invitation.Code, RSVPSubmission{
		Name:       "John Smith",
		Attending:  true,
		GuestCount: 2,
		Email:      "john@example.com",
		AdditionalGuests: models.AdditionalGuestList{
			{Name: "Jane Smith"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, invitation.ID, guest.InvitationID)
	assert.Equal(t, 2, guest.GuestCount)

	var locked models.Invitation
	require.NoError(t, db.First(&locked, "id = ?", invitation.ID).Error)
	assert.Equal(t, models.StatusResponded, locked.Status)

	// Locked invitations reject further submissions.
	_, err = svc.SubmitRSVP(invitation.Code, RSVPSubmission{Name: "Late", Attending: true, GuestCount: 1})
	assert.ErrorIs(t, err, ErrInvitationLocked)

	// Companions survive the round trip through the JSON column.
	var stored models.Guest
	require.NoError(t, db.First(&stored, "id = ?", guest.ID).Error)
	require.Len(t, stored.AdditionalGuests, 1)
	assert.Equal(t, "Jane Smith", stored.AdditionalGuests[0].Name)
}

func TestSubmitRSVPValidation(t *testing.T) {
	svc, _ := newTestService(t)

	invitation, err := svc.Create("Smith", 2)
	require.NoError(t, err)

	_, err = svc.SubmitRSVP(invitation.Code, RSVPSubmission{Name: "", Attending: true, GuestCount: 1})
	assert.ErrorIs(t, err, ErrGuestNameRequired)

	_, err = svc.SubmitRSVP(invitation.Code, RSVPSubmission{Name: "John", Attending: true, GuestCount: 3})
	assert.ErrorIs(t, err, ErrGuestCountOutOfRange)

	_, err = svc.SubmitRSVP("missing-code", RSVPSubmission{Name: "John", Attending: true, GuestCount: 1})
	assert.ErrorIs(t, err, ErrInvitationNotFound)

	// Declining represents nobody regardless of the submitted count.
	guest, err := svc.SubmitRSVP(invitation.Code, RSVPSubmission{Name: "John", Attending: false, GuestCount: 4})
	require.NoError(t, err)
	assert.Zero(t, guest.GuestCount)
}
