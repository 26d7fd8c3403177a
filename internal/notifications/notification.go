package notifications

import (
	"time"

	"github.com/google/uuid"
)

// List batches cases awaiting formal notice, typically one list per
// publication day.
type List struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// Item tracks notification delivery for a single case within a list.
type Item struct {
	ID             uuid.UUID `json:"id"`
	ListID         uuid.UUID `json:"list_id"`
	CaseID         uuid.UUID `json:"case_id"`
	DecisionNumber string    `json:"decision_number"`
	CreatedAt      time.Time `json:"created_at"`
}

// Channel is a formal notice delivery channel.
type Channel string

// Delivery channels.
const (
	ChannelEmail        Channel = "EMAIL"
	ChannelWhatsApp     Channel = "WHATSAPP"
	ChannelCorreios     Channel = "CORREIOS"
	ChannelInPerson     Channel = "IN_PERSON"
	ChannelPublicNotice Channel = "PUBLIC_NOTICE"
)

// Valid reports whether c is a known delivery channel.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelWhatsApp, ChannelCorreios, ChannelInPerson, ChannelPublicNotice:
		return true
	}
	return false
}

// Attempt records one delivery attempt for an item on a specific channel.
// ConfirmedAt is set only when the attempt reaches CONFIRMED.
type Attempt struct {
	ID          uuid.UUID     `json:"id"`
	ItemID      uuid.UUID     `json:"item_id"`
	Channel     Channel       `json:"channel"`
	Deadline    *time.Time    `json:"deadline,omitempty"`
	Status      AttemptStatus `json:"status"`
	ConfirmedAt *time.Time    `json:"confirmed_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// CreateListCommand opens a new notification list.
type CreateListCommand struct {
	Title string `json:"title"`
}

// AddItemCommand enrolls a case in a list.
type AddItemCommand struct {
	CaseID         uuid.UUID `json:"case_id"`
	DecisionNumber string    `json:"decision_number"`
}

// AddAttemptCommand opens a delivery attempt on an item.
type AddAttemptCommand struct {
	Channel  Channel    `json:"channel"`
	Deadline *time.Time `json:"deadline,omitempty"`
}
