package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxEmailLength   = 254
	minPasswordLen   = 8
	maxPasswordLen   = 128
	minNameLength    = 2
	maxNameLength    = 100
)

var (
	emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	nameRe  = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)
	uuidRe  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

	// urlRe constrains http(s) URLs to a dotted domain, localhost, or a
	// dotted-quad IP, with an optional port and path.
	urlRe = regexp.MustCompile(`(?i)^https?://(?:(?:[a-z0-9](?:[a-z0-9\-]{0,61}[a-z0-9])?\.)+[a-z]{2,6}\.?|localhost|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})(?::\d+)?(?:/?|[/?]\S+)$`)

	// xssRes are patterns that must never survive into stored content
	// or URLs: script tags, protocol handlers, inline event handlers,
	// CSS expression/url injection.
	xssRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<script`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)\bon\w+\s*=`),
		regexp.MustCompile(`(?i)data:`),
		regexp.MustCompile(`(?i)vbscript:`),
		regexp.MustCompile(`(?i)expression\s*\(`),
		regexp.MustCompile(`(?i)url\s*\(`),
	}
)

// ValidateEmail returns the canonical lower-cased form of an email
// address, or an invalid-format rejection.
func ValidateEmail(value string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(value))
	if email == "" {
		return "", invalidFormat("email", "email is required")
	}
	if len(email) > maxEmailLength {
		return "", invalidFormat("email", "email must be at most 254 characters")
	}
	if !emailRe.MatchString(email) {
		return "", invalidFormat("email", "invalid email format")
	}
	return email, nil
}

// ValidatePassword enforces the password policy: 8-128 characters with
// at least one uppercase letter, one lowercase letter, and one digit.
// The rejection names the specific missing class.
func ValidatePassword(value string) error {
	length := utf8.RuneCountInString(value)
	if length < minPasswordLen {
		return weakPassword("password must be at least 8 characters")
	}
	if length > maxPasswordLen {
		return weakPassword("password must be at most 128 characters")
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	switch {
	case !hasUpper:
		return weakPassword("password must contain at least one uppercase letter")
	case !hasLower:
		return weakPassword("password must contain at least one lowercase letter")
	case !hasDigit:
		return weakPassword("password must contain at least one number")
	}
	return nil
}

// ValidateName returns the trimmed display name, restricted to
// letters, spaces, hyphens, and apostrophes, 2-100 characters.
func ValidateName(value string) (string, error) {
	name := strings.TrimSpace(value)
	if utf8.RuneCountInString(name) < minNameLength {
		return "", invalidFormat("name", "name must be at least 2 characters")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return "", invalidFormat("name", "name must be at most 100 characters")
	}
	if !nameRe.MatchString(name) {
		return "", invalidFormat("name", "name contains invalid characters")
	}
	return name, nil
}

// ValidateUUID returns the lower-cased canonical form of a UUID
// string, or an invalid-format rejection. The field name is carried
// into the rejection so callers can validate several ID fields.
func ValidateUUID(field, value string) (string, error) {
	id := strings.TrimSpace(value)
	if id == "" {
		return "", invalidFormat(field, field+" is required")
	}
	if !uuidRe.MatchString(id) {
		return "", invalidFormat(field, field+" must be a valid UUID")
	}
	return strings.ToLower(id), nil
}

// ValidateURL returns the trimmed URL when it is a safe http(s) URL.
// Any embedded script payload, protocol handler, or event-handler
// attribute rejects the value regardless of scheme validity. Empty
// input passes through empty; URLs are optional fields everywhere.
func ValidateURL(field, value string) (string, error) {
	u := strings.TrimSpace(value)
	if u == "" {
		return "", nil
	}

	if CheckXSS(u) {
		return "", unsafeURL(field, field+" contains unsafe content")
	}

	lower := strings.ToLower(u)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "", unsafeURL(field, field+" must use http or https")
	}

	if !urlRe.MatchString(u) {
		return "", invalidFormat(field, field+" is not a valid URL")
	}

	return u, nil
}

// CheckXSS reports whether a string contains a known script-injection
// pattern.
func CheckXSS(value string) bool {
	if value == "" {
		return false
	}
	for _, re := range xssRes {
		if re.MatchString(value) {
			return true
		}
	}
	return false
}
