// Package notification delivers in-app notification records. Inserts are
// fire-and-forget from the caller's perspective: a failed insert is logged,
// never surfaced to the user whose action produced it.
package notification

import (
	"context"
	"time"
)

// Type identifies the notification kind shown by the client's bell UI.
type Type string

const (
	TypeNewMatch    Type = "NEW_MATCH"
	TypeNewMessage  Type = "NEW_MESSAGE"
	TypeProfileView Type = "PROFILE_VIEW"
)

// Record is a single notification for a user.
type Record struct {
	UserID    string
	Type      Type
	Title     string
	Content   string
	Read      bool
	CreatedAt time.Time
}

// NewRecord builds an unread record with the standard title and content for
// the given type.
func NewRecord(userID string, t Type) Record {
	title, content := "Notification", "You have a new notification."
	switch t {
	case TypeNewMatch:
		title, content = "New Match", "You have a new match!"
	case TypeNewMessage:
		title, content = "New Message", "You have received a new message."
	case TypeProfileView:
		title, content = "Profile View", "Someone viewed your profile."
	}
	return Record{
		UserID:    userID,
		Type:      t,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// Sink accepts notification records for delivery.
type Sink interface {
	Insert(ctx context.Context, rec Record) error
}
