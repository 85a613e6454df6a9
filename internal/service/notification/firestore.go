package notification

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
)

const notificationsCollection = "notifications"

// firestoreRecord maps to the notification document structure the web client
// reads.
type firestoreRecord struct {
	UserID    string    `firestore:"user_id"`
	Type      string    `firestore:"type"`
	Title     string    `firestore:"title"`
	Content   string    `firestore:"content"`
	Read      bool      `firestore:"read"`
	CreatedAt time.Time `firestore:"created_at"`
}

// FirestoreSink implements Sink on Firestore with auto-generated document IDs.
type FirestoreSink struct {
	client *firestore.Client
}

// NewFirestoreSink creates a new Firestore-backed sink.
func NewFirestoreSink(client *firestore.Client) *FirestoreSink {
	return &FirestoreSink{client: client}
}

// Insert appends a notification record.
func (s *FirestoreSink) Insert(ctx context.Context, rec Record) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, _, err := s.client.Collection(notificationsCollection).Add(ctx, firestoreRecord{
		UserID:    rec.UserID,
		Type:      string(rec.Type),
		Title:     rec.Title,
		Content:   rec.Content,
		Read:      rec.Read,
		CreatedAt: createdAt,
	})
	return err
}

// Compile-time interface check
var _ Sink = (*FirestoreSink)(nil)
