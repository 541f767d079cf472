package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// uniqueViolationCode is the PostgreSQL error code for unique
// constraint violations.
const uniqueViolationCode = "23505"

// isUniqueViolation reports whether an error is a unique constraint
// violation, used to map races on unique columns (email, category
// name, tutor user_id) to conflict errors instead of 500s.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolationCode
	}
	return false
}
