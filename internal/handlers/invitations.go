package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Asnor14/rsvp01-admin/internal/invitations"
	"github.com/Asnor14/rsvp01-admin/internal/models"
)

type CreateInvitationRequest struct {
	FamilyName string `json:"family_name"`
	MaxGuests  int    `json:"max_guests"`
}

type UpdateInvitationRequest struct {
	MaxGuests int `json:"max_guests"`
}

type ToggleStatusRequest struct {
	Status models.InvitationStatus `json:"status" binding:"required"`
}

// serviceError translates a service failure into an HTTP response.
// Validation failures become 400s with their exact message; everything
// else is logged and reported generically so internals do not leak.
func (h *Handlers) serviceError(c *gin.Context, err error, fallback string) {
	switch {
	case invitations.IsValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, invitations.ErrInvitationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
	case errors.Is(err, invitations.ErrInvitationLocked):
		c.JSON(http.StatusConflict, gin.H{"error": "This invitation is locked and no longer accepts responses"})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

func (h *Handlers) ListInvitations(c *gin.Context) {
	result, err := h.svc.ListWithStats()
	if err != nil {
		h.serviceError(c, err, "Failed to fetch invitations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitations": result})
}

func (h *Handlers) GetDashboardStats(c *gin.Context) {
	result, err := h.svc.DashboardStats()
	if err != nil {
		h.serviceError(c, err, "Failed to fetch statistics")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handlers) CreateInvitation(c *gin.Context) {
	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.MaxGuests == 0 {
		req.MaxGuests = 2
	}

	invitation, err := h.svc.Create(req.FamilyName, req.MaxGuests)
	if err != nil {
		h.serviceError(c, err, "Failed to create invitation")
		return
	}

	h.hub.Notify("invitation.created", invitation.ID)
	c.JSON(http.StatusCreated, gin.H{
		"invitation":  invitation,
		"invite_link": h.config.PublicSite + "/?invite=" + invitation.Code,
	})
}

func (h *Handlers) UpdateInvitation(c *gin.Context) {
	var req UpdateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invitation, err := h.svc.Update(c.Param("id"), req.MaxGuests)
	if err != nil {
		h.serviceError(c, err, "Failed to update invitation")
		return
	}

	h.hub.Notify("invitation.updated", invitation.ID)
	c.JSON(http.StatusOK, invitation)
}

func (h *Handlers) DeleteInvitation(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(id); err != nil {
		h.serviceError(c, err, "Failed to delete invitation")
		return
	}

	h.hub.Notify("invitation.deleted", id)
	c.JSON(http.StatusOK, gin.H{"message": "Invitation deleted"})
}

func (h *Handlers) ToggleInvitationStatus(c *gin.Context) {
	var req ToggleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	invitation, err := h.svc.ToggleStatus(c.Param("id"), req.Status)
	if err != nil {
		h.serviceError(c, err, "Failed to update status")
		return
	}

	h.hub.Notify("invitation.updated", invitation.ID)
	c.JSON(http.StatusOK, invitation)
}
