package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdditionalGuest is a named companion on an RSVP response.
type AdditionalGuest struct {
	Name string `json:"name"`
}

// AdditionalGuestList stores companions as a JSON text column. The wire
// format accepts either a bare name or an object carrying a name field;
// both decode into the uniform struct form so nothing downstream has to
// branch on shape.
type AdditionalGuestList []AdditionalGuest

func (l *AdditionalGuestList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(AdditionalGuestList, 0, len(raw))
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			out = append(out, AdditionalGuest{Name: name})
			continue
		}
		var obj AdditionalGuest
		if err := json.Unmarshal(item, &obj); err != nil {
			return fmt.Errorf("invalid additional guest entry: %s", string(item))
		}
		out = append(out, obj)
	}
	*l = out
	return nil
}

func (l AdditionalGuestList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	data, err := json.Marshal([]AdditionalGuest(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *AdditionalGuestList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for additional guests: %T", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return l.UnmarshalJSON(data)
}

// Guest is one RSVP response record tied to an invitation. A guest whose
// InvitationID is empty is orphaned and excluded from dashboard totals.
type Guest struct {
	ID               string              `gorm:"type:varchar(36);primaryKey" json:"id"`
	InvitationID     string              `gorm:"type:varchar(36);index" json:"invitation_id"`
	Name             string              `gorm:"type:varchar(100);not null" json:"name"`
	Attending        bool                `gorm:"not null" json:"attending"`
	GuestCount       int                 `gorm:"not null;default:0" json:"guest_count"`
	Message          string              `gorm:"type:text" json:"message,omitempty"`
	Email            string              `gorm:"type:varchar(255)" json:"email,omitempty"`
	AdditionalGuests AdditionalGuestList `gorm:"type:text" json:"additional_guests,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
}

func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return nil
}
