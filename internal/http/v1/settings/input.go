package settings

// NotificationsUpdateInput for PATCH /settings/notifications. The client
// sends the full preference set, so the flags are required.
type NotificationsUpdateInput struct {
	Body struct {
		NewMatch           bool   `json:"newMatch"           required:"true"            doc:"Notify on new matches"        example:"true"`
		NewMessage         bool   `json:"newMessage"         required:"true"            doc:"Notify on new messages"       example:"true"`
		ProfileView        bool   `json:"profileView"        required:"true"            doc:"Notify on profile views"      example:"true"`
		EmailNotifications bool   `json:"emailNotifications" required:"true"            doc:"Send email notifications"     example:"true"`
		Theme              string `json:"theme,omitempty"    enum:"female,male"         doc:"Color theme"                  example:"female"`
	}
}

// VisibilityUpdateInput for PATCH /settings/visibility. Omitted flags are
// stored as unset, which viewers experience as visible: absence is never
// denial.
type VisibilityUpdateInput struct {
	Body struct {
		PersonaVisible     *bool `json:"personaVisible,omitempty"     doc:"Allow other viewers to see persona data"`
		SmartMatching      *bool `json:"smartMatching,omitempty"      doc:"Allow compatibility insight on this profile"`
		ProfilePicture     *bool `json:"profilePicture,omitempty"     doc:"Show profile picture to other viewers"`
		Occupation         *bool `json:"occupation,omitempty"         doc:"Show occupation to other viewers"`
		ContactInformation *bool `json:"contactInformation,omitempty" doc:"Show contact information to other viewers"`
		ProfileVisibility  *bool `json:"profileVisibility,omitempty"  doc:"List this profile in discovery"`
	}
}

// TestNotificationInput for POST /notifications/test (no body needed)
type TestNotificationInput struct{}
