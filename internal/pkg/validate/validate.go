// Package validate holds the user-facing field validators shared by the
// verification, engagement, and account modules. The error strings are
// part of the API contract and are asserted verbatim by frontend tests,
// so change them only together with the clients.
package validate

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*\.[a-zA-Z]{2,6}$`)

	lowerRegex = regexp.MustCompile(`[a-z]`)
	upperRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex = regexp.MustCompile(`\d`)

	indianMobileRegex = regexp.MustCompile(`^[6-9]\d{9}$`)

	cleanPhoneRegex = regexp.MustCompile(`[^\d+]`)
	nonDigitRegex   = regexp.MustCompile(`\D`)
	phoneRegex      = regexp.MustCompile(`^[+]?[1-9]\d{6,14}$`)
)

// Email reports whether the address passes the full set of format checks.
func Email(email string) bool {
	email = strings.TrimSpace(email)
	if len(email) < 5 || len(email) > 254 {
		return false
	}

	if !emailRegex.MatchString(email) {
		return false
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return false
	}

	if len(local) == 0 || len(local) > 64 {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}

	if len(domain) == 0 || len(domain) > 253 {
		return false
	}
	if strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return false
	}
	if strings.HasPrefix(domain, "-") || strings.HasSuffix(domain, "-") {
		return false
	}
	if strings.Contains(domain, "..") || !strings.Contains(domain, ".") {
		return false
	}

	tld := domain[strings.LastIndex(domain, ".")+1:]

	return len(tld) >= 2 && len(tld) <= 6
}

// EmailError returns the user-facing message for an invalid address, or
// the empty string when the address is valid.
func EmailError(email string) string {
	if strings.TrimSpace(email) == "" {
		return "Email address is required"
	}

	email = strings.TrimSpace(email)

	if len(email) < 5 {
		return "Email address is too short"
	}
	if len(email) > 254 {
		return "Email address is too long"
	}

	if !strings.Contains(email, "@") {
		return "Email must contain @ symbol"
	}
	if strings.Count(email, "@") != 1 {
		return "Email must contain exactly one @ symbol"
	}

	local, domain, _ := strings.Cut(email, "@")

	if len(local) == 0 {
		return "Email must have content before @"
	}
	if len(local) > 64 {
		return "Email local part is too long"
	}

	if len(domain) == 0 {
		return "Email must have a domain after @"
	}
	if !strings.Contains(domain, ".") {
		return "Email domain must contain at least one dot"
	}

	tld := domain[strings.LastIndex(domain, ".")+1:]
	if len(tld) < 2 {
		return "Email domain extension is too short (minimum 2 characters)"
	}
	if len(tld) > 6 {
		return "Email domain extension is too long (maximum 6 characters)"
	}

	if !Email(email) {
		return "Please enter a valid email address"
	}

	return ""
}

// Phone reports whether the number looks like a dialable international
// number after stripping separators.
func Phone(phone string) bool {
	clean := cleanPhoneRegex.ReplaceAllString(phone, "")

	return phoneRegex.MatchString(clean)
}

// IndianMobile reports whether the number is a bare 10-digit Indian
// mobile number.
func IndianMobile(phone string) bool {
	return indianMobileRegex.MatchString(phone)
}

// IndianMobileError returns the user-facing message for an invalid
// Indian mobile number, or the empty string when the number is valid.
func IndianMobileError(phone string) string {
	digits := nonDigitRegex.ReplaceAllString(phone, "")

	if digits == "" {
		return "Phone number is required"
	}
	if len(digits) != 10 {
		return "Indian mobile numbers must be exactly 10 digits"
	}
	if digits[0] < '6' || digits[0] > '9' {
		return "Indian mobile numbers must start with 9, 8, 7, or 6"
	}

	return ""
}

// Password reports whether the password meets the strength policy.
func Password(password string) bool {
	return len(password) >= 8 &&
		lowerRegex.MatchString(password) &&
		upperRegex.MatchString(password) &&
		digitRegex.MatchString(password)
}

// PasswordError returns the user-facing message for a weak password, or
// the empty string when the password is acceptable.
func PasswordError(password string) string {
	if password == "" {
		return "Password is required"
	}
	if len(password) < 8 {
		return "Password must be at least 8 characters long"
	}
	if !lowerRegex.MatchString(password) {
		return "Password must contain at least one lowercase letter"
	}
	if !upperRegex.MatchString(password) {
		return "Password must contain at least one uppercase letter"
	}
	if !digitRegex.MatchString(password) {
		return "Password must contain at least one number"
	}

	return ""
}
