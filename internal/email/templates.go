package email

import (
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

const otpSubject = "Your VibeNet verification code"

const otpTextTemplate = `Hello {{.FullName}},

Your verification code is {{.Code}}.
It is valid for {{.ValidMinutes}} minutes.

If you did not request this code, you can ignore this email.
`

const otpHTMLTemplate = `<p>Hello {{.FullName}},</p>
<p>Your verification code is <strong>{{.Code}}</strong>.</p>
<p>It is valid for {{.ValidMinutes}} minutes.</p>
<p>If you did not request this code, you can ignore this email.</p>
`

var (
	otpText = texttemplate.Must(texttemplate.New("otp_text").Parse(otpTextTemplate))
	otpHTML = htmltemplate.Must(htmltemplate.New("otp_html").Parse(otpHTMLTemplate))
)

// BuildOTPEmail renders the verification code message for one recipient.
func BuildOTPEmail(to string, data OTPData) (*Email, error) {
	var text, html strings.Builder
	if err := otpText.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	if err := otpHTML.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}

	return &Email{
		To:       []string{to},
		Subject:  otpSubject,
		Body:     text.String(),
		HTMLBody: html.String(),
	}, nil
}
