package services

// Default and ceiling for list endpoints. Callers asking for nothing
// get a sane page, callers asking for too much get capped.
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
