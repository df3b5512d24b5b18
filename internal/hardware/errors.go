package hardware

import (
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// ErrorKind represents the category of a hardware failure
type ErrorKind int

const (
	// KindIO indicates a generic read/write failure
	KindIO ErrorKind = iota
	// KindPermission indicates the process may not write the setting
	KindPermission
	// KindUnsupported indicates the machine does not expose the setting
	KindUnsupported
	// KindFirmwareUpdateRequired indicates the EC rejected the command version
	KindFirmwareUpdateRequired
	// KindInvalidValue indicates the value is outside what the hardware accepts
	KindInvalidValue
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "I/O Error"
	case KindPermission:
		return "Permission Denied"
	case KindUnsupported:
		return "Unsupported"
	case KindFirmwareUpdateRequired:
		return "Firmware Update Required"
	case KindInvalidValue:
		return "Invalid Value"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// ErrFirmwareUpdateRequired matches any *Error of kind
// KindFirmwareUpdateRequired via errors.Is.
var ErrFirmwareUpdateRequired = &Error{Kind: KindFirmwareUpdateRequired}

// Error is a failed hardware operation.
type Error struct {
	Op   string    // Operation, e.g. "set max charge limit"
	Kind ErrorKind // Category of error
	Err  error     // Underlying error (if any)
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Op, e.Kind, e.Err)
	}
	if e.Op == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

// Unwrap returns the underlying error for error chain inspection
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Op == "" || t.Op == e.Op)
}

// ClassifyWriteError maps a failed write into an *Error.
//
// The cros_ec driver reports EC_RES_INVALID_VERSION as EPROTONOSUPPORT,
// which on Framework laptops means the BIOS predates the command.
func ClassifyWriteError(op string, err error) *Error {
	if err == nil {
		return nil
	}

	var he *Error
	if errors.As(err, &he) {
		return he
	}

	kind := KindIO
	switch {
	case errors.Is(err, unix.EPROTONOSUPPORT):
		kind = KindFirmwareUpdateRequired
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		kind = KindPermission
	case errors.Is(err, unix.ENOENT), errors.Is(err, unix.EOPNOTSUPP), errors.Is(err, unix.ENOTSUP):
		kind = KindUnsupported
	case errors.Is(err, unix.EINVAL), errors.Is(err, unix.ERANGE):
		kind = KindInvalidValue
	}

	return &Error{Op: op, Kind: kind, Err: err}
}
