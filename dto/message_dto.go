package dto

import (
	"time"

	"github.com/brendenGit/Warbler/models"
)

// MessageDTO is what the templates render for one message.
type MessageDTO struct {
	ID        uint
	Text      string
	Timestamp time.Time
	UserID    uint
	Username  string
	ImageURL  string
	Liked     bool
}

// Date renders the timestamp the way message lists show it.
func (m MessageDTO) Date() string {
	return m.Timestamp.Format("02 January 2006")
}

func FromMessage(m models.Message, liked map[uint]bool) MessageDTO {
	return MessageDTO{
		ID:        m.ID,
		Text:      m.Text,
		Timestamp: m.Timestamp,
		UserID:    m.UserID,
		Username:  m.User.Username,
		ImageURL:  m.User.ImageURL,
		Liked:     liked[m.ID],
	}
}

// FromMessages converts a list; liked may be nil for anonymous viewers.
func FromMessages(messages []models.Message, liked map[uint]bool) []MessageDTO {
	out := make([]MessageDTO, len(messages))
	for i, m := range messages {
		out[i] = FromMessage(m, liked)
	}
	return out
}
