package gateway

import "fmt"

// ErrorKind classifies a gateway failure for the caller. The controller
// maps kinds to user-facing messages without ever looking at transport
// details.
type ErrorKind int

const (
	// KindNetworkUnreachable means the server could not be reached at all.
	KindNetworkUnreachable ErrorKind = iota
	// KindNotFound means the endpoint or resource does not exist.
	KindNotFound
	// KindServerFault means the server failed internally.
	KindServerFault
	// KindRejected means the server understood and refused the request,
	// with a message of its own.
	KindRejected
)

// Error is a classified gateway failure.
type Error struct {
	Err     error
	Message string
	Kind    ErrorKind
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.kindString(), e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.kindString(), e.Message)
	}
	return e.kindString()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the failure is transient.
func (e *Error) Retryable() bool {
	return e.Kind == KindNetworkUnreachable || e.Kind == KindServerFault
}

// UserMessage returns the notification text shown to the user. These mirror
// the messages the original mobile client displayed.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindNetworkUnreachable:
		return "Tidak dapat terhubung ke server. Periksa koneksi internet."
	case KindNotFound:
		return "Endpoint API tidak ditemukan."
	case KindServerFault:
		return "Terjadi kesalahan pada server."
	case KindRejected:
		if e.Message != "" {
			return e.Message
		}
		return "Permintaan ditolak server."
	default:
		return "Terjadi kesalahan."
	}
}

func (e *Error) kindString() string {
	switch e.Kind {
	case KindNetworkUnreachable:
		return "network unreachable"
	case KindNotFound:
		return "not found"
	case KindServerFault:
		return "server fault"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
