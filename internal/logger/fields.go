package logger

// Standard field keys used across the codebase. Using constants keeps the
// log output greppable and consistent between packages.
const (
	// Request fields
	KeyRequestID = "request_id"
	KeyClientIP  = "client_ip"
	KeyMethod    = "method"
	KeyPath      = "path"
	KeyStatus    = "status"

	// Identity fields
	KeyUserID = "user_id"
	KeyEmail  = "email"

	// Drive entity fields
	KeyFileID   = "file_id"
	KeyFolderID = "folder_id"
	KeyFileName = "file_name"
	KeySize     = "size"

	// Operational fields
	KeyError      = "error"
	KeyDurationMS = "duration_ms"
)
