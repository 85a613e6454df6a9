package profile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cupidlink/cupid-api/internal/testutil"
)

func seedFirestoreProfile(t *testing.T, store *FirestoreStore, userID string, data map[string]any) {
	t.Helper()
	_, err := store.client.Collection(profilesCollection).Doc(userID).Set(context.Background(), data)
	if err != nil {
		t.Fatalf("seeding profile: %v", err)
	}
}

func seedFirestorePersona(t *testing.T, store *FirestoreStore, userID, positive, negative string) {
	t.Helper()
	_, err := store.client.Collection(personasCollection).Doc(userID).Set(context.Background(), map[string]any{
		"positive": positive,
		"negative": negative,
	})
	if err != nil {
		t.Fatalf("seeding persona: %v", err)
	}
}

func TestFirestoreStoreGetProfile(t *testing.T) {
	testutil.SkipIfEmulatorUnavailable(t)
	store := NewFirestoreStore(testutil.FirestoreClient(t))
	t.Cleanup(func() { testutil.ClearFirestore(t) })
	ctx := context.Background()

	seedFirestoreProfile(t, store, "owner-001", map[string]any{
		"fullname":   "Alex Rivers",
		"location":   "Helsinki, Finland",
		"occupation": "Architect",
		"email":      "alex@example.com",
		"cupid_id":   "cupid-7788",
		"visibility_settings": map[string]bool{
			"contact_information": false,
		},
		"notification_preferences": map[string]bool{
			"profile_view": false,
		},
		"theme":      "female",
		"created_at": time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		"updated_at": time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
	})

	got, err := store.GetProfile(ctx, "owner-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "owner-001" || got.Fullname != "Alex Rivers" || got.CupidID != "cupid-7788" {
		t.Errorf("unexpected profile %+v", got)
	}
	if got.Visibility.ContactVisible() {
		t.Error("stored false flag must read back as hidden")
	}
	// Flags absent in the document stay unset.
	if got.Visibility.Persona != nil {
		t.Errorf("absent flag materialized as %v", *got.Visibility.Persona)
	}
	if got.Notifications.ProfileViewEnabled() {
		t.Error("stored false preference must read back as disabled")
	}
	if got.Notifications.Theme != "female" {
		t.Errorf("theme = %q, want female", got.Notifications.Theme)
	}
}

func TestFirestoreStoreGetProfileNotFound(t *testing.T) {
	testutil.SkipIfEmulatorUnavailable(t)
	store := NewFirestoreStore(testutil.FirestoreClient(t))

	if _, err := store.GetProfile(context.Background(), "missing-user"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFirestoreStorePersonaAnalysis(t *testing.T) {
	testutil.SkipIfEmulatorUnavailable(t)
	store := NewFirestoreStore(testutil.FirestoreClient(t))
	t.Cleanup(func() { testutil.ClearFirestore(t) })
	ctx := context.Background()

	// Almost-JSON from the provider, repairable on read.
	seedFirestorePersona(t, store, "owner-001",
		`{"personality_traits": ["warm", "curious"], "summary": "upbeat",}`,
		`{"emotional_weaknesses": {"traits": ["impatient"]}}`,
	)

	analysis, err := store.GetPersonaAnalysis(ctx, "owner-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis == nil || analysis.Positive == nil || analysis.Negative == nil {
		t.Fatalf("expected both halves, got %+v", analysis)
	}
	if got := analysis.Positive.PersonalityTraits.Examples; len(got) != 2 || got[0] != "warm" {
		t.Errorf("unexpected positive examples %v", got)
	}
	if got := analysis.Negative.Emotional.Traits; len(got) != 1 || got[0] != "impatient" {
		t.Errorf("unexpected negative traits %v", got)
	}
}

func TestFirestoreStorePersonaAbsent(t *testing.T) {
	testutil.SkipIfEmulatorUnavailable(t)
	store := NewFirestoreStore(testutil.FirestoreClient(t))

	analysis, err := store.GetPersonaAnalysis(context.Background(), "missing-user")
	if err != nil {
		t.Fatalf("absent persona is not an error, got %v", err)
	}
	if analysis != nil {
		t.Fatalf("expected nil analysis, got %+v", analysis)
	}
}

func TestFirestoreStorePersonaUnparseable(t *testing.T) {
	testutil.SkipIfEmulatorUnavailable(t)
	store := NewFirestoreStore(testutil.FirestoreClient(t))
	t.Cleanup(func() { testutil.ClearFirestore(t) })

	seedFirestorePersona(t, store, "owner-001", "the model refused to answer", "")

	analysis, err := store.GetPersonaAnalysis(context.Background(), "owner-001")
	if err != nil {
		t.Fatalf("unparseable text must not surface as an error, got %v", err)
	}
	if analysis != nil {
		t.Fatalf("expected nil analysis, got %+v", analysis)
	}
}

func TestFirestoreStoreUpdates(t *testing.T) {
	testutil.SkipIfEmulatorUnavailable(t)
	store := NewFirestoreStore(testutil.FirestoreClient(t))
	t.Cleanup(func() { testutil.ClearFirestore(t) })
	ctx := context.Background()

	seedFirestoreProfile(t, store, "owner-001", map[string]any{
		"fullname":   "Alex Rivers",
		"created_at": time.Now().UTC(),
		"updated_at": time.Now().UTC(),
	})

	hidden := false
	if err := store.UpdateVisibilitySettings(ctx, "owner-001", VisibilitySettings{
		ContactInformation: &hidden,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	enabled := true
	if err := store.UpdateNotificationPreferences(ctx, "owner-001", NotificationPreferences{
		ProfileView: &enabled,
		Theme:       "male",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetProfile(ctx, "owner-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Visibility.ContactVisible() {
		t.Error("visibility update not persisted")
	}
	if got.Visibility.Persona != nil {
		t.Error("update must not materialize unset flags")
	}
	if got.Notifications.Theme != "male" {
		t.Errorf("theme = %q, want male", got.Notifications.Theme)
	}
}

func TestFirestoreStoreUpdateMissingProfile(t *testing.T) {
	testutil.SkipIfEmulatorUnavailable(t)
	store := NewFirestoreStore(testutil.FirestoreClient(t))

	err := store.UpdateVisibilitySettings(context.Background(), "missing-user", VisibilitySettings{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
