package settings

// Ack confirms a settings mutation.
type Ack struct {
	Message string `json:"message" doc:"Confirmation message" example:"settings saved"`
}

// UpdateOutput for the PATCH endpoints.
type UpdateOutput struct {
	Body Ack
}

// TestNotificationData reports which notification type was sent.
type TestNotificationData struct {
	Type string `json:"type" doc:"Notification type inserted" example:"NEW_MESSAGE"`
}

// TestNotificationOutput for POST /notifications/test (201 Created)
type TestNotificationOutput struct {
	Body TestNotificationData
}
