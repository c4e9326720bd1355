package models

import "errors"

// Common errors for drive operations.
//
// Absence and foreign ownership share the same NotFound sentinel on purpose:
// a caller probing another user's entity must not be able to tell the two
// apart.
var (
	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Folder errors
	ErrFolderNotFound = errors.New("folder not found")

	// File errors
	ErrFileNotFound = errors.New("file not found")

	// Validation errors
	ErrFieldRequired = errors.New("required field missing")

	// ErrFolderTreeCorrupt is returned when a folder's ancestor chain
	// exceeds the maximum walk depth. This indicates a cycle or other data
	// corruption and is an internal error, never a NotFound.
	ErrFolderTreeCorrupt = errors.New("folder tree corrupt: ancestor chain too deep")
)
