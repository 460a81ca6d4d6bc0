package xerrors

import "errors"

// Common reusable application errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrSessionExpired = errors.New("session expired or invalid")
	ErrNoIdentity     = errors.New("no user identity resolved")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrVendorRequest  = errors.New("vendor request failed")
)

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
