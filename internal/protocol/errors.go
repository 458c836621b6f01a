package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated          = errors.New("protocol: truncated packet")
	ErrInvalidLength      = errors.New("protocol: invalid packet length")
	ErrTextTooLong        = errors.New("protocol: text exceeds 255 bytes")
	ErrInvalidMagic       = errors.New("protocol: invalid magic")
	ErrInvalidPacketType  = errors.New("protocol: invalid packet type")
	ErrInvalidRequestType = errors.New("protocol: invalid request type")
	ErrInvalidLanguage    = errors.New("protocol: invalid language code")
	ErrInvalidYear        = errors.New("protocol: invalid year")
	ErrInvalidMonth       = errors.New("protocol: invalid month")
	ErrInvalidDay         = errors.New("protocol: invalid day")
	ErrInvalidHour        = errors.New("protocol: invalid hour")
	ErrInvalidMinute      = errors.New("protocol: invalid minute")
	ErrLengthMismatch     = errors.New("protocol: declared length does not match text")
	ErrInvalidText        = errors.New("protocol: text is not valid UTF-8")
)

// ValidationError names the packet field that failed a check.
type ValidationError struct {
	Field string
	Value int
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v (%s=%d)", e.Err, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, value int, err error) error {
	return &ValidationError{Field: field, Value: value, Err: err}
}
