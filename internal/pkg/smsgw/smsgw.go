package smsgw

import (
	"context"
	"io"
)

// OTPMessage is the payload for a one-time-code SMS.
type OTPMessage struct {
	// Mobile is the destination number without the country prefix.
	Mobile string
	// CountryCode is the numeric dial prefix, e.g. "91".
	CountryCode string
	// Code is the one-time code to embed in the template.
	Code string
	// ExpiryMinutes is how long the code stays valid, forwarded to the
	// gateway so the SMS wording matches the server-side expiry.
	ExpiryMinutes int
}

// SMS abstracts an SMS gateway provider.
type SMS interface {
	io.Closer
	// SendOTP dispatches a one-time-code SMS to the given mobile number.
	SendOTP(ctx context.Context, msg OTPMessage) error
}
