package handlers

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Asnor14/rsvp01-admin/internal/config"
	"github.com/Asnor14/rsvp01-admin/internal/invitations"
	"github.com/Asnor14/rsvp01-admin/internal/websocket"
)

type Handlers struct {
	db     *gorm.DB
	config *config.Config
	hub    *websocket.Hub
	svc    *invitations.Service
	log    zerolog.Logger
}

func New(db *gorm.DB, cfg *config.Config, hub *websocket.Hub, log zerolog.Logger) *Handlers {
	return &Handlers{
		db:     db,
		config: cfg,
		hub:    hub,
		svc:    invitations.NewService(db),
		log:    log,
	}
}
