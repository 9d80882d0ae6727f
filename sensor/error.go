package sensor

import "errors"

// Failure kinds. Match them with errors.Is against a returned *Error.
var (
	ErrExecutableNotFound = errors.New("executable not found")
	ErrCommandFailed      = errors.New("command failed")
	ErrUnexpected         = errors.New("unexpected error")
	ErrSensorFileNotFound = errors.New("sensor file not found")
	ErrSensorRead         = errors.New("sensor read failed")
	ErrSensorParse        = errors.New("sensor parse failed")
)

// Error is a failed sensor read.
type Error struct {
	Kind error
	// Source names the command that was run, e.g. vcgencmd.
	Source string
	// Message is the text reported to clients.
	Message string
	// Path is the sensor file, if one was resolved.
	Path string
	Err  error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Summary names the failure class without its cause.
func (e *Error) Summary() string {
	switch e.Kind {
	case ErrExecutableNotFound:
		return e.Source + " not found"
	case ErrCommandFailed:
		return e.Source + " failed"
	}
	return e.Kind.Error()
}

// Details returns the underlying cause, or the message if there is none.
func (e *Error) Details() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Err.Error()
}
