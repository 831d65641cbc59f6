package entity

import (
	"strings"
	"time"
)

// Record is a live one-time-code document. One record exists per
// (channel, destination) key; a new send replaces any prior record.
// The code itself is never stored, only its keyed hash.
type Record struct {
	CodeHash    string    `json:"code_hash"`
	Destination string    `json:"destination"`
	Channel     Channel   `json:"channel"`
	Purpose     Purpose   `json:"purpose"`
	ExpiresAt   time.Time `json:"expires_at"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"max_attempts"`
	CreatedAt   time.Time `json:"created_at"`
}

// Expired reports whether the record is past its expiry at the given time.
func (r Record) Expired(now time.Time) bool {
	return !now.Before(r.ExpiresAt)
}

// Exhausted reports whether the attempt budget is spent.
func (r Record) Exhausted() bool {
	return r.Attempts >= r.MaxAttempts
}

// RecordKey derives the store key for a (channel, destination) pair.
// Every non-alphanumeric rune in the destination is replaced with an
// underscore so email addresses and phone numbers form safe document IDs.
func RecordKey(ch Channel, destination string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, destination)

	return ch.String() + "_" + sanitized
}
