// Package smsgw defines the contract for sending transactional SMS
// messages and ships an MSG91 implementation.
//
// Use cases depend on the SMS interface only; the concrete gateway is
// selected during application wiring.
package smsgw
