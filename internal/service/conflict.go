package service

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"campusmarket/internal/apperr"
)

// mysqlDuplicateEntry is the MySQL error number for unique constraint
// violations.
const mysqlDuplicateEntry = 1062

// translateDuplicate re-classifies a store-level uniqueness violation into a
// field-specific conflict. MySQL names the violated key in the message
// ("Duplicate entry 'x' for key 'users.uni_users_email'"); an unrecognized
// key falls back to the generic conflict. Returns nil when err is not a
// duplicate-entry violation.
func translateDuplicate(err error) *apperr.Error {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) || mysqlErr.Number != mysqlDuplicateEntry {
		return nil
	}

	switch {
	case strings.Contains(mysqlErr.Message, "email"):
		return apperr.Conflict("Email already in use")
	case strings.Contains(mysqlErr.Message, "phone"):
		return apperr.Conflict("Phone number already in use")
	default:
		return apperr.Conflict("This information is already registered")
	}
}
