package interfaces

import "errors"

// Storage-level sentinels. Implementations wrap these so services can branch
// with errors.Is without importing driver packages.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
