package email

// Email is a single outbound message.
type Email struct {
	To       []string
	Subject  string
	Body     string
	HTMLBody string
}

// OTPData feeds the one-time password template.
type OTPData struct {
	FullName     string
	Code         string
	ValidMinutes int
}
