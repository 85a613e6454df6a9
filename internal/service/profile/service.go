package profile

import (
	"context"
	"errors"
	"time"

	"github.com/cupidlink/cupid-api/internal/persona"
)

// Service errors
var (
	ErrNotFound = errors.New("profile not found")
)

// VisibilitySettings controls what non-owner viewers may see. A nil flag means
// the owner never set it; every accessor defaults to visible, so absence is
// never treated as denial.
type VisibilitySettings struct {
	Persona            *bool
	SmartMatching      *bool
	ProfilePicture     *bool
	Occupation         *bool
	ContactInformation *bool
	ProfileVisibility  *bool
}

func (s VisibilitySettings) PersonaVisible() bool       { return boolOr(s.Persona, true) }
func (s VisibilitySettings) SmartMatchingVisible() bool { return boolOr(s.SmartMatching, true) }
func (s VisibilitySettings) PictureVisible() bool       { return boolOr(s.ProfilePicture, true) }
func (s VisibilitySettings) OccupationVisible() bool    { return boolOr(s.Occupation, true) }
func (s VisibilitySettings) ContactVisible() bool       { return boolOr(s.ContactInformation, true) }
func (s VisibilitySettings) ProfileVisible() bool       { return boolOr(s.ProfileVisibility, true) }

// NotificationPreferences controls which events produce notifications for the
// owner. Unset flags default to enabled, mirroring the visibility settings.
type NotificationPreferences struct {
	NewMatch           *bool
	NewMessage         *bool
	ProfileView        *bool
	EmailNotifications *bool
	Theme              string
}

func (p NotificationPreferences) NewMatchEnabled() bool    { return boolOr(p.NewMatch, true) }
func (p NotificationPreferences) NewMessageEnabled() bool  { return boolOr(p.NewMessage, true) }
func (p NotificationPreferences) ProfileViewEnabled() bool { return boolOr(p.ProfileView, true) }
func (p NotificationPreferences) EmailEnabled() bool       { return boolOr(p.EmailNotifications, true) }

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// Profile represents a stored dating profile. The document ID doubles as the
// owner's user ID.
type Profile struct {
	ID                  string
	Fullname            string
	Location            string
	Occupation          string
	Email               string
	RelationshipHistory string
	Lifestyle           string
	ProfileImage        string
	CupidID             string
	Visibility          VisibilitySettings
	Notifications       NotificationPreferences
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Clone returns a deep copy, so callers can redact fields without touching
// the stored value.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Visibility = cloneVisibility(p.Visibility)
	cp.Notifications = cloneNotifications(p.Notifications)
	return &cp
}

func cloneVisibility(s VisibilitySettings) VisibilitySettings {
	return VisibilitySettings{
		Persona:            cloneBool(s.Persona),
		SmartMatching:      cloneBool(s.SmartMatching),
		ProfilePicture:     cloneBool(s.ProfilePicture),
		Occupation:         cloneBool(s.Occupation),
		ContactInformation: cloneBool(s.ContactInformation),
		ProfileVisibility:  cloneBool(s.ProfileVisibility),
	}
}

func cloneNotifications(p NotificationPreferences) NotificationPreferences {
	return NotificationPreferences{
		NewMatch:           cloneBool(p.NewMatch),
		NewMessage:         cloneBool(p.NewMessage),
		ProfileView:        cloneBool(p.ProfileView),
		EmailNotifications: cloneBool(p.EmailNotifications),
		Theme:              p.Theme,
	}
}

func cloneBool(v *bool) *bool {
	if v == nil {
		return nil
	}
	b := *v
	return &b
}

// Store defines profile and persona read/write operations.
//
// GetProfile returns ErrNotFound for a legitimately missing profile;
// any other error is a transport failure and must stay distinguishable.
// The persona getters return (nil, nil) when no parseable payload exists:
// an absent persona is a value, not an error.
type Store interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	GetPositivePersona(ctx context.Context, userID string) (map[string]any, error)
	GetNegativePersona(ctx context.Context, userID string) (map[string]any, error)
	GetPersonaAnalysis(ctx context.Context, userID string) (*persona.Analysis, error)
	UpdateNotificationPreferences(ctx context.Context, userID string, prefs NotificationPreferences) error
	UpdateVisibilitySettings(ctx context.Context, userID string, settings VisibilitySettings) error
}
