package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Asnor14/rsvp01-admin/internal/invitations"
	"github.com/Asnor14/rsvp01-admin/internal/models"
)

type RSVPRequest struct {
	Name             string                     `json:"name" binding:"required"`
	Attending        *bool                      `json:"attending" binding:"required"`
	GuestCount       int                        `json:"guest_count"`
	Message          string                     `json:"message"`
	Email            string                     `json:"email"`
	AdditionalGuests models.AdditionalGuestList `json:"additional_guests"`
}

// GetInvite returns the limited invitation view the public RSVP form
// needs: who is invited, how many seats, and whether it is still open.
func (h *Handlers) GetInvite(c *gin.Context) {
	invitation, err := h.svc.GetByCode(c.Param("code"))
	if err != nil {
		h.serviceError(c, err, "Failed to load invitation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":        invitation.Code,
		"family_name": invitation.FamilyName,
		"max_guests":  invitation.MaxGuests,
		"locked":      invitation.Status == models.StatusResponded,
	})
}

// SubmitRSVP records a guest response and notifies any open dashboards
// and subscribed admin browsers.
func (h *Handlers) SubmitRSVP(c *gin.Context) {
	var req RSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	guest, err := h.svc.SubmitRSVP(c.Param("code"), invitations.RSVPSubmission{
		Name:             req.Name,
		Attending:        *req.Attending,
		GuestCount:       req.GuestCount,
		Message:          req.Message,
		Email:            req.Email,
		AdditionalGuests: req.AdditionalGuests,
	})
	if err != nil {
		h.serviceError(c, err, "Failed to record response")
		return
	}

	h.hub.Notify("rsvp.created", guest.InvitationID)
	h.notifyAdmins(guest)

	c.JSON(http.StatusCreated, guest)
}
