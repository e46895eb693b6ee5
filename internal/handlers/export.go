package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Asnor14/rsvp01-admin/internal/export"
)

// ExportGuestList streams the guest list as a PDF attachment.
// ?mode=accepted limits the export to invitations with at least one
// attending response.
func (h *Handlers) ExportGuestList(c *gin.Context) {
	mode := export.Mode(c.DefaultQuery("mode", string(export.ModeAll)))
	if mode != export.ModeAll && mode != export.ModeAccepted {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be \"all\" or \"accepted\""})
		return
	}

	data, err := h.svc.ListWithStats()
	if err != nil {
		h.serviceError(c, err, "Failed to fetch data for export")
		return
	}
	if len(data) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No invitations found to export"})
		return
	}

	now := time.Now()
	pdf, guestCount, err := export.GuestList(data, mode, now)
	if err != nil {
		h.log.Error().Err(err).Msg("PDF generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		return
	}

	h.log.Info().Str("mode", string(mode)).Int("guests", guestCount).Msg("exported guest list")

	c.Header("Content-Disposition", `attachment; filename="`+export.Filename(mode, now)+`"`)
	c.Header("X-Guest-Count", strconv.Itoa(guestCount))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
