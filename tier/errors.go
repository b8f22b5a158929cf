package tier

import "errors"

var (
	// ErrInvalidTier means a requested tier could not be parsed as an integer.
	ErrInvalidTier = errors.New("tier must be an integer")

	// ErrMarkerArgCount means a tier marker did not have exactly one argument.
	ErrMarkerArgCount = errors.New("tier marker has more that one arguments")

	// ErrMarkerArgType means a tier marker's argument was not an integer.
	ErrMarkerArgType = errors.New("tier marker has non-integer argument")

	// ErrUnexpectedReportRecord means the reporting plugin passed a record that cannot hold
	// extra fields.
	ErrUnexpectedReportRecord = errors.New("unexpected report record type")
)
