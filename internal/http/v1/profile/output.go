package profile

// ViewOutput for GET /profile and GET /profiles/{userId}
type ViewOutput struct {
	Body View
}
