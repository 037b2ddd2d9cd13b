package familyshop

import "errors"

// Kind separates a transport failure (no response reached) from an
// application-level rejection (response received with ok:false or an
// HTTP error status).
type Kind string

const (
	KindTransport Kind = "transport"
	KindRejected  Kind = "rejected"
)

// Error is the single normalized failure type returned by every action.
// Expected failures never surface as anything else.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	return "familyshop: " + e.Message
}

// IsRejected reports whether err is an application-level rejection,
// as opposed to a transport failure.
func IsRejected(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindRejected
}

// Reason extracts the human-readable message from any action error.
func Reason(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
