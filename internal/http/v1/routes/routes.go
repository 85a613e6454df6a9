// Package routes wires the v1 API surface onto a huma API instance.
package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/cupidlink/cupid-api/internal/compat"
	"github.com/cupidlink/cupid-api/internal/http/v1/profile"
	"github.com/cupidlink/cupid-api/internal/http/v1/settings"
	"github.com/cupidlink/cupid-api/internal/platform/auth"
	"github.com/cupidlink/cupid-api/internal/service/notification"
	profilesvc "github.com/cupidlink/cupid-api/internal/service/profile"
)

// Deps carries the collaborators handlers need.
type Deps struct {
	Store    profilesvc.Store
	Provider compat.Provider
	Sink     notification.Sink
}

// Register applies authentication middleware and registers all v1 routes.
func Register(api huma.API, verifier auth.Verifier, deps Deps) {
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	profile.Register(api, profile.Deps{
		Store:    deps.Store,
		Provider: deps.Provider,
		Sink:     deps.Sink,
	})
	settings.Register(api, deps.Store, deps.Sink)
}
