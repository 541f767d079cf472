package validation

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Defaults mirroring the platform's field budgets
const (
	MaxTextLength  = 5000
	MaxTitleLength = 200

	DefaultMaxTags      = 10
	DefaultMaxTagLength = 50
	DefaultMaxURLs      = 10
)

// allowedTags is the allow-list of inline tags kept when HTML is
// permitted. Zero attributes are ever kept.
var allowedTags = map[string]bool{
	"b": true, "i": true, "u": true, "strong": true, "em": true,
	"p": true, "br": true, "ul": true, "ol": true, "li": true,
}

var tagCharsRe = regexp.MustCompile(`[^a-z0-9\-_\s]`)

// SanitizeString trims whitespace, truncates to maxLength, neutralizes
// markup (HTML-escaping by default, or stripping to the inline-tag
// allow-list when allowHTML is set), and removes null bytes.
// Callers apply it exactly once per field; escaping is not re-applied
// downstream.
func SanitizeString(value string, maxLength int, allowHTML bool) string {
	if value == "" {
		return ""
	}

	value = strings.TrimSpace(value)
	if maxLength > 0 && utf8.RuneCountInString(value) > maxLength {
		runes := []rune(value)
		value = string(runes[:maxLength])
	}

	if allowHTML {
		value = stripDisallowedHTML(value)
	} else {
		value = html.EscapeString(value)
	}

	return strings.ReplaceAll(value, "\x00", "")
}

// SanitizeText sanitizes plain text content (descriptions, bios)
func SanitizeText(value string) string {
	return SanitizeString(value, MaxTextLength, false)
}

// SanitizeTitle sanitizes title fields
func SanitizeTitle(value string) string {
	return SanitizeString(value, MaxTitleLength, false)
}

// stripDisallowedHTML removes every tag not on the allow-list while
// keeping its inner text. Allowed tags are re-emitted in canonical
// lower-case form with all attributes dropped.
func stripDisallowedHTML(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		if s[i] != '<' {
			b.WriteByte(s[i])
			i++
			continue
		}

		end := strings.IndexByte(s[i:], '>')
		if end < 0 {
			// Unterminated tag: drop the remainder rather than emit raw markup
			break
		}

		name, closing := parseTagName(s[i+1 : i+end])
		if allowedTags[name] {
			if closing {
				b.WriteString("</" + name + ">")
			} else {
				b.WriteString("<" + name + ">")
			}
		}
		i += end + 1
	}

	return b.String()
}

// parseTagName extracts the lower-cased element name from raw tag
// contents like ` /UL ` or `a href="x"` or `br/`.
func parseTagName(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	closing := false
	if strings.HasPrefix(raw, "/") {
		closing = true
		raw = strings.TrimSpace(raw[1:])
	}
	raw = strings.TrimSuffix(raw, "/")

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			continue
		}
		raw = raw[:i]
		break
	}

	return strings.ToLower(raw), closing
}

// SanitizeTags cleans a tag list: at most maxTags entries, lower-cased,
// stripped to [a-z0-9-_ ], entries shorter than 2 characters dropped,
// duplicates removed. The result is set-like; ordering is not part of
// the contract.
func SanitizeTags(tags []string, maxTags, maxTagLength int) []string {
	if len(tags) == 0 {
		return nil
	}
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}

	seen := make(map[string]struct{}, len(tags))
	sanitized := make([]string, 0, len(tags))

	for _, tag := range tags {
		clean := strings.ToLower(SanitizeString(tag, maxTagLength, false))
		clean = tagCharsRe.ReplaceAllString(clean, "")
		clean = strings.TrimSpace(clean)
		if utf8.RuneCountInString(clean) < 2 {
			continue
		}
		if _, dup := seen[clean]; dup {
			continue
		}
		seen[clean] = struct{}{}
		sanitized = append(sanitized, clean)
	}

	return sanitized
}

// SanitizeAttachmentURLs validates at most maxURLs attachment URLs,
// silently dropping invalid entries instead of failing the batch.
func SanitizeAttachmentURLs(urls []string, maxURLs int) []string {
	if len(urls) == 0 {
		return nil
	}
	if len(urls) > maxURLs {
		urls = urls[:maxURLs]
	}

	validated := make([]string, 0, len(urls))
	for _, raw := range urls {
		if u, err := ValidateURL("attachment_urls", raw); err == nil && u != "" {
			validated = append(validated, u)
		}
	}

	return validated
}
