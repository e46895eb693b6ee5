package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Asnor14/rsvp01-admin/internal/models"
)

type PushSubscribeKeys struct {
	P256DH string `json:"p256dh" binding:"required"`
	Auth   string `json:"auth" binding:"required"`
}

type PushSubscribeRequest struct {
	Endpoint string            `json:"endpoint" binding:"required"`
	Keys     PushSubscribeKeys `json:"keys" binding:"required"`
}

func (h *Handlers) GetVAPIDPublicKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"publicKey": h.config.VAPIDKeys.PublicKey,
	})
}

func (h *Handlers) SubscribePush(c *gin.Context) {
	var req PushSubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Re-subscribing from the same browser replaces the old entry.
	if err := h.db.Where("endpoint = ?", req.Endpoint).Delete(&models.PushSubscription{}).Error; err != nil {
		h.log.Warn().Err(err).Msg("failed to clear stale push subscription")
	}

	subscription := models.PushSubscription{
		Endpoint: req.Endpoint,
		P256DH:   req.Keys.P256DH,
		Auth:     req.Keys.Auth,
	}
	if err := h.db.Create(&subscription).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create subscription"})
		return
	}

	c.JSON(http.StatusCreated, subscription)
}

func (h *Handlers) UnsubscribePush(c *gin.Context) {
	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var subscription models.PushSubscription
	if err := h.db.Where("endpoint = ?", req.Endpoint).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err := h.db.Delete(&subscription).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed"})
}

// notifyAdmins sends a web push about a new RSVP to every subscribed
// admin browser. Delivery is best effort; stale subscriptions are
// pruned when the push service rejects them.
func (h *Handlers) notifyAdmins(guest *models.Guest) {
	var subscriptions []models.PushSubscription
	if err := h.db.Find(&subscriptions).Error; err != nil {
		h.log.Warn().Err(err).Msg("failed to load push subscriptions")
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	title := fmt.Sprintf("New RSVP from %s", guest.Name)
	body := "Declined"
	if guest.Attending {
		body = fmt.Sprintf("Attending with a party of %d", guest.GuestCount)
	}
	payload, err := json.Marshal(map[string]string{"title": title, "body": body})
	if err != nil {
		return
	}

	for _, sub := range subscriptions {
		resp, err := webpush.SendNotification(payload, &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.P256DH,
				Auth:   sub.Auth,
			},
		}, &webpush.Options{
			Subscriber:      h.config.VAPIDKeys.Subject,
			VAPIDPublicKey:  h.config.VAPIDKeys.PublicKey,
			VAPIDPrivateKey: h.config.VAPIDKeys.PrivateKey,
			TTL:             3600,
		})
		if err != nil {
			h.log.Warn().Err(err).Msg("push delivery failed")
			continue
		}
		if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
			h.db.Delete(&models.PushSubscription{}, "id = ?", sub.ID)
		}
		resp.Body.Close()
	}
}
