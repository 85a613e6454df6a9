package profile

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cupidlink/cupid-api/internal/persona"
	applog "github.com/cupidlink/cupid-api/internal/platform/logging"
)

const (
	profilesCollection = "profiles"
	personasCollection = "personas"
)

// Visibility and notification flag keys as written by the web client.
const (
	visKeyPersona       = "persona_visible"
	visKeySmartMatching = "smart_matching_visible"
	visKeyPicture       = "profile_picture"
	visKeyOccupation    = "occupation"
	visKeyContact       = "contact_information"
	visKeyProfile       = "profile_visibility"

	prefKeyNewMatch    = "new_match"
	prefKeyNewMessage  = "new_message"
	prefKeyProfileView = "profile_view"
	prefKeyEmail       = "email_notifications"
)

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	if errors.Is(err, ErrNotFound) {
		return "not_found"
	}
	return "internal_error"
}

// firestoreProfile maps to the profile document structure. Visibility and
// notification flags are stored as open maps so that flags the owner never
// touched stay absent rather than materializing as false.
type firestoreProfile struct {
	Fullname            string          `firestore:"fullname"`
	Location            string          `firestore:"location"`
	Occupation          string          `firestore:"occupation"`
	Email               string          `firestore:"email"`
	RelationshipHistory string          `firestore:"relationship_history"`
	Lifestyle           string          `firestore:"lifestyle"`
	ProfileImage        string          `firestore:"profile_image"`
	CupidID             string          `firestore:"cupid_id"`
	Visibility          map[string]bool `firestore:"visibility_settings"`
	Notifications       map[string]bool `firestore:"notification_preferences"`
	Theme               string          `firestore:"theme"`
	CreatedAt           time.Time       `firestore:"created_at"`
	UpdatedAt           time.Time       `firestore:"updated_at"`
}

// firestorePersona holds the AI provider's output verbatim. The provider
// writes JSON text, not structured fields, so repair happens on read.
type firestorePersona struct {
	Positive string `firestore:"positive"`
	Negative string `firestore:"negative"`
}

// FirestoreStore implements Store on Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// GetProfile fetches a profile document. A missing document is ErrNotFound;
// everything else is a transport failure.
func (s *FirestoreStore) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	doc, err := s.client.Collection(profilesCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var fp firestoreProfile
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}

	return &Profile{
		ID:                  doc.Ref.ID,
		Fullname:            fp.Fullname,
		Location:            fp.Location,
		Occupation:          fp.Occupation,
		Email:               fp.Email,
		RelationshipHistory: fp.RelationshipHistory,
		Lifestyle:           fp.Lifestyle,
		ProfileImage:        fp.ProfileImage,
		CupidID:             fp.CupidID,
		Visibility:          visibilityFromMap(fp.Visibility),
		Notifications:       notificationsFromMap(fp.Notifications, fp.Theme),
		CreatedAt:           fp.CreatedAt,
		UpdatedAt:           fp.UpdatedAt,
	}, nil
}

// GetPositivePersona returns the raw positive persona object, or (nil, nil)
// when nothing parseable is stored for the user.
func (s *FirestoreStore) GetPositivePersona(ctx context.Context, userID string) (map[string]any, error) {
	fp, err := s.personaDoc(ctx, userID)
	if err != nil || fp == nil {
		return nil, err
	}
	return decodePersonaText(ctx, userID, "positive", fp.Positive), nil
}

// GetNegativePersona returns the raw negative persona object, or (nil, nil)
// when nothing parseable is stored for the user.
func (s *FirestoreStore) GetNegativePersona(ctx context.Context, userID string) (map[string]any, error) {
	fp, err := s.personaDoc(ctx, userID)
	if err != nil || fp == nil {
		return nil, err
	}
	return decodePersonaText(ctx, userID, "negative", fp.Negative), nil
}

// GetPersonaAnalysis returns both persona halves, normalized. When neither
// half yields a parseable object the analysis is (nil, nil): unavailable,
// not an error.
func (s *FirestoreStore) GetPersonaAnalysis(ctx context.Context, userID string) (*persona.Analysis, error) {
	fp, err := s.personaDoc(ctx, userID)
	if err != nil || fp == nil {
		return nil, err
	}

	rawPos := decodePersonaText(ctx, userID, "positive", fp.Positive)
	rawNeg := decodePersonaText(ctx, userID, "negative", fp.Negative)
	if rawPos == nil && rawNeg == nil {
		return nil, nil
	}

	analysis := &persona.Analysis{}
	if rawPos != nil {
		pos := persona.NormalizePositive(rawPos)
		analysis.Positive = &pos
	}
	if rawNeg != nil {
		neg := persona.NormalizeNegative(rawNeg)
		analysis.Negative = &neg
	}
	return analysis, nil
}

// UpdateNotificationPreferences replaces the notification flags and theme.
func (s *FirestoreStore) UpdateNotificationPreferences(ctx context.Context, userID string, prefs NotificationPreferences) error {
	updates := []firestore.Update{
		{Path: "notification_preferences", Value: notificationsToMap(prefs)},
		{Path: "theme", Value: prefs.Theme},
		{Path: "updated_at", Value: time.Now().UTC()},
	}
	_, err := s.client.Collection(profilesCollection).Doc(userID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			err = ErrNotFound
		}
		applog.LogAuditEvent(ctx, "update_notification_preferences", userID, "profile", userID, "failure",
			map[string]any{"error": categorizeError(err)})
		return err
	}
	applog.LogAuditEvent(ctx, "update_notification_preferences", userID, "profile", userID, "success", nil)
	return nil
}

// UpdateVisibilitySettings replaces the visibility flags.
func (s *FirestoreStore) UpdateVisibilitySettings(ctx context.Context, userID string, settings VisibilitySettings) error {
	updates := []firestore.Update{
		{Path: "visibility_settings", Value: visibilityToMap(settings)},
		{Path: "updated_at", Value: time.Now().UTC()},
	}
	_, err := s.client.Collection(profilesCollection).Doc(userID).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			err = ErrNotFound
		}
		applog.LogAuditEvent(ctx, "update_visibility_settings", userID, "profile", userID, "failure",
			map[string]any{"error": categorizeError(err)})
		return err
	}
	applog.LogAuditEvent(ctx, "update_visibility_settings", userID, "profile", userID, "success", nil)
	return nil
}

// personaDoc fetches the persona document, mapping "no document" to nil.
func (s *FirestoreStore) personaDoc(ctx context.Context, userID string) (*firestorePersona, error) {
	doc, err := s.client.Collection(personasCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}
	var fp firestorePersona
	if err := doc.DataTo(&fp); err != nil {
		return nil, err
	}
	return &fp, nil
}

// decodePersonaText parses stored provider output. Unparseable text is logged
// and treated as absent; shape problems never surface as errors.
func decodePersonaText(ctx context.Context, userID, half, text string) map[string]any {
	if text == "" {
		return nil
	}
	raw, err := persona.DecodeRaw(text)
	if err != nil {
		applog.LogWarn(ctx, "discarding unparseable persona payload",
			zap.String("user_id", userID), zap.String("half", half))
		return nil
	}
	return raw
}

func visibilityFromMap(m map[string]bool) VisibilitySettings {
	return VisibilitySettings{
		Persona:            lookupFlag(m, visKeyPersona),
		SmartMatching:      lookupFlag(m, visKeySmartMatching),
		ProfilePicture:     lookupFlag(m, visKeyPicture),
		Occupation:         lookupFlag(m, visKeyOccupation),
		ContactInformation: lookupFlag(m, visKeyContact),
		ProfileVisibility:  lookupFlag(m, visKeyProfile),
	}
}

func visibilityToMap(s VisibilitySettings) map[string]bool {
	m := map[string]bool{}
	storeFlag(m, visKeyPersona, s.Persona)
	storeFlag(m, visKeySmartMatching, s.SmartMatching)
	storeFlag(m, visKeyPicture, s.ProfilePicture)
	storeFlag(m, visKeyOccupation, s.Occupation)
	storeFlag(m, visKeyContact, s.ContactInformation)
	storeFlag(m, visKeyProfile, s.ProfileVisibility)
	return m
}

func notificationsFromMap(m map[string]bool, theme string) NotificationPreferences {
	return NotificationPreferences{
		NewMatch:           lookupFlag(m, prefKeyNewMatch),
		NewMessage:         lookupFlag(m, prefKeyNewMessage),
		ProfileView:        lookupFlag(m, prefKeyProfileView),
		EmailNotifications: lookupFlag(m, prefKeyEmail),
		Theme:              theme,
	}
}

func notificationsToMap(p NotificationPreferences) map[string]bool {
	m := map[string]bool{}
	storeFlag(m, prefKeyNewMatch, p.NewMatch)
	storeFlag(m, prefKeyNewMessage, p.NewMessage)
	storeFlag(m, prefKeyProfileView, p.ProfileView)
	storeFlag(m, prefKeyEmail, p.EmailNotifications)
	return m
}

func lookupFlag(m map[string]bool, key string) *bool {
	if m == nil {
		return nil
	}
	v, ok := m[key]
	if !ok {
		return nil
	}
	return &v
}

func storeFlag(m map[string]bool, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}

// Compile-time interface check
var _ Store = (*FirestoreStore)(nil)
