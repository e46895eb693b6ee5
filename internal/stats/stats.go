// Package stats turns raw invitation and guest rows into the aggregates
// the dashboard renders. Everything here is a pure function of its
// inputs; persistence stays in the invitations service.
package stats

import (
	"math"

	"github.com/Asnor14/rsvp01-admin/internal/models"
)

// InvitationStats summarizes the responses attached to one invitation.
type InvitationStats struct {
	TotalResponses  int `json:"total_responses"`
	AttendingCount  int `json:"attending_count"`
	DeclinedCount   int `json:"declined_count"`
	TotalGuestCount int `json:"total_guest_count"`
}

// InvitationWithStats is an invitation together with its guest rows and
// their summary. Computed on every read, never persisted.
type InvitationWithStats struct {
	models.Invitation
	Guests []models.Guest  `json:"guests"`
	Stats  InvitationStats `json:"stats"`
}

// DashboardStats are the global headline numbers.
type DashboardStats struct {
	TotalInvitations int `json:"total_invitations"`
	TotalAttending   int `json:"total_attending"`
	TotalDeclined    int `json:"total_declined"`
	TotalGuestCount  int `json:"total_guest_count"`
	ResponseRate     int `json:"response_rate"`
}

// PerInvitation joins every guest row to its invitation and computes the
// per-invitation summary. Output order follows the input order of
// invitations (callers pass them pre-sorted by creation time, newest
// first). An invitation with no responses gets all-zero stats.
func PerInvitation(invitations []models.Invitation, guests []models.Guest) []InvitationWithStats {
	byInvitation := make(map[string][]models.Guest, len(invitations))
	for _, g := range guests {
		byInvitation[g.InvitationID] = append(byInvitation[g.InvitationID], g)
	}

	out := make([]InvitationWithStats, 0, len(invitations))
	for _, inv := range invitations {
		invGuests := byInvitation[inv.ID]

		var s InvitationStats
		s.TotalResponses = len(invGuests)
		for _, g := range invGuests {
			if g.Attending {
				s.AttendingCount++
				s.TotalGuestCount += g.GuestCount
			} else {
				s.DeclinedCount++
			}
		}

		out = append(out, InvitationWithStats{
			Invitation: inv,
			Guests:     invGuests,
			Stats:      s,
		})
	}
	return out
}

// Dashboard computes the global totals from an invitation count and the
// full guest set. Guests without an invitation reference are orphaned
// and contribute nothing. The response rate is the integer percentage
// (rounded half up) of distinct invitations that have at least one
// response; it is 0 when there are no invitations at all.
func Dashboard(invitationCount int64, guests []models.Guest) DashboardStats {
	s := DashboardStats{TotalInvitations: int(invitationCount)}

	responded := make(map[string]struct{})
	for _, g := range guests {
		if g.InvitationID == "" {
			continue
		}
		responded[g.InvitationID] = struct{}{}
		if g.Attending {
			s.TotalAttending += g.GuestCount
		} else {
			s.TotalDeclined++
		}
		s.TotalGuestCount += g.GuestCount
	}

	if invitationCount > 0 {
		s.ResponseRate = int(math.Round(float64(len(responded)) / float64(invitationCount) * 100))
	}
	return s
}
