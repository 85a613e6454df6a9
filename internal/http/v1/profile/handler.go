package profile

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cupidlink/cupid-api/internal/compat"
	"github.com/cupidlink/cupid-api/internal/compose"
	"github.com/cupidlink/cupid-api/internal/platform/auth"
	applog "github.com/cupidlink/cupid-api/internal/platform/logging"
	"github.com/cupidlink/cupid-api/internal/service/notification"
	profilesvc "github.com/cupidlink/cupid-api/internal/service/profile"
	"github.com/cupidlink/cupid-api/internal/visibility"
)

// Deps bundles the collaborators the profile endpoints need.
type Deps struct {
	Store    profilesvc.Store
	Provider compat.Provider
	Sink     notification.Sink
}

// Register registers profile view endpoints.
func Register(api huma.API, deps Deps) {
	huma.Register(api, huma.Operation{
		OperationID: "get-own-profile",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get the viewer's own profile view",
		Description: "Assembles the authenticated user's own profile view, including persona analysis.",
		Tags:        []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *ViewOwnInput) (*ViewOutput, error) {
		user := auth.UserFromContext(ctx)
		viewer := visibility.Viewer{ViewerID: user.UID, OwnerID: user.UID}
		_, out := composeView(ctx, deps, viewer)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-profile-view",
		Method:      http.MethodGet,
		Path:        "/profiles/{userId}",
		Summary:     "Get a profile view",
		Description: "Assembles another user's profile as seen by the authenticated viewer. " +
			"Hidden fields are redacted per the owner's visibility settings; a missing " +
			"profile is reported as a not_found state, not an error.",
		Tags: []string{"Profile"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *ViewInput) (*ViewOutput, error) {
		user := auth.UserFromContext(ctx)
		viewer := visibility.Viewer{ViewerID: user.UID, OwnerID: input.UserID}
		view, out := composeView(ctx, deps, viewer)
		notifyProfileView(ctx, deps, viewer, view)
		return out, nil
	})
}

func composeView(ctx context.Context, deps Deps, viewer visibility.Viewer) (compose.View, *ViewOutput) {
	composer := compose.New(deps.Store, deps.Provider)
	defer composer.Close()
	view := composer.Compose(ctx, viewer)
	return view, &ViewOutput{Body: toView(view)}
}

// notifyProfileView records a PROFILE_VIEW notification for the owner when a
// different user loads their profile and their preferences allow it.
// Fire-and-forget: insert failures are logged, never surfaced to the viewer.
func notifyProfileView(ctx context.Context, deps Deps, viewer visibility.Viewer, view compose.View) {
	if deps.Sink == nil || viewer.IsOwner() || view.Profile.State != compose.StateLoaded {
		return
	}
	owner := view.Profile.Profile
	if owner == nil || !owner.Notifications.ProfileViewEnabled() {
		return
	}

	rec := notification.NewRecord(viewer.OwnerID, notification.TypeProfileView)
	if err := deps.Sink.Insert(ctx, rec); err != nil {
		applog.LogError(ctx, "profile view notification insert failed", err)
		return
	}
	applog.LogAuditEvent(ctx, "view", viewer.ViewerID, "profile", viewer.OwnerID, "success", nil)
}
