package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidDate    ErrCode = "INVALID_DATE"
	ErrInvalidRange   ErrCode = "INVALID_RANGE"
	ErrInvalidStatus  ErrCode = "INVALID_STATUS"
	ErrInvalidFormat  ErrCode = "UNSUPPORTED_FORMAT"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Roster / records ──────────────────────────────────────────────
	ErrNoNames            ErrCode = "NO_NAMES"
	ErrNotesRequired      ErrCode = "NOTES_REQUIRED"
	ErrStudentNotFound    ErrCode = "STUDENT_NOT_FOUND"
	ErrInvalidSessionType ErrCode = "INVALID_SESSION_TYPE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal           ErrCode = "INTERNAL_ERROR"
	ErrLiveUpdatesOffline ErrCode = "LIVE_UPDATES_UNAVAILABLE"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid email or password."
	case ErrTokenRequired:
		return "Authentication token is required."
	case ErrTokenInvalid:
		return "Authentication token is invalid."
	case ErrTokenExpired:
		return "Authentication token has expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You are not allowed to access this resource."
	case ErrPermissionDenied:
		return "Permission denied."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrInvalidDate:
		return "Dates must use the YYYY-MM-DD format."
	case ErrInvalidRange:
		return "The start of the range is after its end."
	case ErrInvalidStatus:
		return "Status must be one of Present, Late, Absent, Justified."
	case ErrInvalidFormat:
		return "Unsupported export format."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	// ─── Roster / records ──────────────────────────────────────────────
	case ErrNoNames:
		return "No student names were provided."
	case ErrNotesRequired:
		return "Session notes are required."
	case ErrStudentNotFound:
		return "Student not found."
	case ErrInvalidSessionType:
		return "Session type must be Student or Family."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Internal server error."
	case ErrLiveUpdatesOffline:
		return "Live updates are not available on this server."
	default:
		return "An unexpected error occurred."
	}
}
