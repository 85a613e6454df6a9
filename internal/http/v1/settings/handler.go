package settings

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cupidlink/cupid-api/internal/platform/auth"
	"github.com/cupidlink/cupid-api/internal/service/notification"
	profilesvc "github.com/cupidlink/cupid-api/internal/service/profile"
)

// Register registers settings and notification endpoints.
func Register(api huma.API, store profilesvc.Store, sink notification.Sink) {
	huma.Register(api, huma.Operation{
		OperationID: "update-notification-preferences",
		Method:      http.MethodPatch,
		Path:        "/settings/notifications",
		Summary:     "Update notification preferences",
		Description: "Replaces the authenticated user's notification preferences.",
		Tags:        []string{"Settings"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *NotificationsUpdateInput) (*UpdateOutput, error) {
		user := auth.UserFromContext(ctx)

		prefs := profilesvc.NotificationPreferences{
			NewMatch:           &input.Body.NewMatch,
			NewMessage:         &input.Body.NewMessage,
			ProfileView:        &input.Body.ProfileView,
			EmailNotifications: &input.Body.EmailNotifications,
			Theme:              input.Body.Theme,
		}
		if err := store.UpdateNotificationPreferences(ctx, user.UID, prefs); err != nil {
			return nil, mapStoreError(err)
		}
		return &UpdateOutput{Body: Ack{Message: "notification preferences saved"}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-visibility-settings",
		Method:      http.MethodPatch,
		Path:        "/settings/visibility",
		Summary:     "Update visibility settings",
		Description: "Replaces the authenticated user's per-field visibility flags. " +
			"Flags omitted from the request are stored as unset and default to visible.",
		Tags: []string{"Settings"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *VisibilityUpdateInput) (*UpdateOutput, error) {
		user := auth.UserFromContext(ctx)

		settings := profilesvc.VisibilitySettings{
			Persona:            input.Body.PersonaVisible,
			SmartMatching:      input.Body.SmartMatching,
			ProfilePicture:     input.Body.ProfilePicture,
			Occupation:         input.Body.Occupation,
			ContactInformation: input.Body.ContactInformation,
			ProfileVisibility:  input.Body.ProfileVisibility,
		}
		if err := store.UpdateVisibilitySettings(ctx, user.UID, settings); err != nil {
			return nil, mapStoreError(err)
		}
		return &UpdateOutput{Body: Ack{Message: "visibility settings saved"}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "send-test-notification",
		Method:        http.MethodPost,
		Path:          "/notifications/test",
		Summary:       "Send a test notification",
		Description:   "Inserts a test notification of the first enabled type so the user can check the bell UI.",
		Tags:          []string{"Settings"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *TestNotificationInput) (*TestNotificationOutput, error) {
		user := auth.UserFromContext(ctx)

		p, err := store.GetProfile(ctx, user.UID)
		if err != nil {
			return nil, mapStoreError(err)
		}

		t := pickTestType(p.Notifications)
		if err := sink.Insert(ctx, notification.NewRecord(user.UID, t)); err != nil {
			return nil, huma.Error500InternalServerError("failed to send test notification")
		}
		return &TestNotificationOutput{Body: TestNotificationData{Type: string(t)}}, nil
	})
}

// pickTestType selects the notification type to exercise, preferring the
// kinds the user actually has enabled.
func pickTestType(prefs profilesvc.NotificationPreferences) notification.Type {
	switch {
	case prefs.NewMessageEnabled():
		return notification.TypeNewMessage
	case prefs.ProfileViewEnabled():
		return notification.TypeProfileView
	default:
		return notification.TypeNewMatch
	}
}

func mapStoreError(err error) error {
	if errors.Is(err, profilesvc.ErrNotFound) {
		return huma.Error404NotFound("profile not found")
	}
	return huma.Error500InternalServerError("internal error")
}
