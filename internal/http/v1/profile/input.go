package profile

// ViewOwnInput for GET /profile (no parameters needed)
type ViewOwnInput struct{}

// ViewInput for GET /profiles/{userId}
type ViewInput struct {
	UserID string `path:"userId" minLength:"1" maxLength:"128" doc:"Profile owner's user ID" example:"user-123"`
}
