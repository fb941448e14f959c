package notify

// EmailGateway defines the interface for sending email notifications
type EmailGateway interface {
	// SendEmail sends a plain-text email to a single recipient
	SendEmail(to, subject, body string) error

	// GetName returns the name of the email gateway implementation
	GetName() string
}

// MessageGateway defines the interface for sending guest-facing text
// messages (SMS or in-app push, depending on the deployment)
type MessageGateway interface {
	// SendMessage sends a short text message to a phone number
	SendMessage(phone, message string) error

	// GetName returns the name of the message gateway implementation
	GetName() string
}
