package wire

// StatusCode is the SLPv2 error code carried in replies and acks.
type StatusCode uint16

// SLPv2 status codes (RFC 2608 section 7).
const (
	StatusOK                    StatusCode = 0
	StatusLanguageNotSupported  StatusCode = 1
	StatusParseError            StatusCode = 2
	StatusInvalidRegistration   StatusCode = 3
	StatusScopeNotSupported     StatusCode = 4
	StatusAuthenticationUnknown StatusCode = 5
	StatusAuthenticationAbsent  StatusCode = 6
	StatusAuthenticationFailed  StatusCode = 7
	StatusVersionNotSupported   StatusCode = 9
	StatusInternalError         StatusCode = 10
	StatusDABusyNow             StatusCode = 11
	StatusOptionNotUnderstood   StatusCode = 12
	StatusInvalidUpdate         StatusCode = 13
	StatusMessageNotSupported   StatusCode = 14
	StatusRefreshRejected       StatusCode = 15
)

// String returns the status name as it appears in RFC 2608.
func (s StatusCode) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusLanguageNotSupported:
		return "LANGUAGE_NOT_SUPPORTED"
	case StatusParseError:
		return "PARSE_ERROR"
	case StatusInvalidRegistration:
		return "INVALID_REGISTRATION"
	case StatusScopeNotSupported:
		return "SCOPE_NOT_SUPPORTED"
	case StatusAuthenticationUnknown:
		return "AUTHENTICATION_UNKNOWN"
	case StatusAuthenticationAbsent:
		return "AUTHENTICATION_ABSENT"
	case StatusAuthenticationFailed:
		return "AUTHENTICATION_FAILED"
	case StatusVersionNotSupported:
		return "VER_NOT_SUPPORTED"
	case StatusInternalError:
		return "INTERNAL_ERROR"
	case StatusDABusyNow:
		return "DA_BUSY_NOW"
	case StatusOptionNotUnderstood:
		return "OPTION_NOT_UNDERSTOOD"
	case StatusInvalidUpdate:
		return "INVALID_UPDATE"
	case StatusMessageNotSupported:
		return "MSG_NOT_SUPPORTED"
	case StatusRefreshRejected:
		return "REFRESH_REJECTED"
	default:
		return "UNKNOWN"
	}
}

// Err returns nil for StatusOK and a StatusError otherwise.
func (s StatusCode) Err() error {
	if s == StatusOK {
		return nil
	}
	return StatusError{Code: s}
}

// StatusError wraps a non-zero status code as an error.
type StatusError struct {
	Code StatusCode
}

func (e StatusError) Error() string {
	return "slp: status " + e.Code.String()
}
