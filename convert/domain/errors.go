package domain

import "net/http"

// ErrorCode is the machine-readable taxonomy shared by the validator, the
// converters, and the HTTP layer.
type ErrorCode string

const (
	ErrInvalidFileType        ErrorCode = "InvalidFileType"
	ErrFileTooLarge           ErrorCode = "FileTooLarge"
	ErrFileTooSmall           ErrorCode = "FileTooSmall"
	ErrInvalidFormat          ErrorCode = "InvalidFormat"
	ErrUnsupportedFormat      ErrorCode = "UnsupportedFormat"
	ErrInvalidDimensions      ErrorCode = "InvalidDimensions"
	ErrMissingParameter       ErrorCode = "MissingParameter"
	ErrInvalidQuality         ErrorCode = "InvalidQuality"
	ErrConversionFailed       ErrorCode = "ConversionFailed"
	ErrCorruptedFile          ErrorCode = "CorruptedFile"
	ErrUnsupportedOperation   ErrorCode = "UnsupportedOperation"
	ErrDimensionLimitExceeded ErrorCode = "DimensionLimitExceeded"
	ErrInternalError          ErrorCode = "InternalError"
	ErrEngineError            ErrorCode = "EngineError"
	ErrFileSystemError        ErrorCode = "FileSystemError"
	ErrOutOfMemory            ErrorCode = "OutOfMemory"
)

// httpStatusByCode fixes the code → HTTP status mapping: 400 validation,
// 413 too-large, 415 unsupported media, 422 processing failure, 500 internal.
var httpStatusByCode = map[ErrorCode]int{
	ErrInvalidFileType:        http.StatusUnsupportedMediaType,
	ErrFileTooLarge:           http.StatusRequestEntityTooLarge,
	ErrFileTooSmall:           http.StatusBadRequest,
	ErrInvalidFormat:          http.StatusUnsupportedMediaType,
	ErrUnsupportedFormat:      http.StatusUnsupportedMediaType,
	ErrInvalidDimensions:      http.StatusBadRequest,
	ErrMissingParameter:       http.StatusBadRequest,
	ErrInvalidQuality:         http.StatusBadRequest,
	ErrConversionFailed:       http.StatusUnprocessableEntity,
	ErrCorruptedFile:          http.StatusUnprocessableEntity,
	ErrUnsupportedOperation:   http.StatusBadRequest,
	ErrDimensionLimitExceeded: http.StatusBadRequest,
	ErrInternalError:          http.StatusInternalServerError,
	ErrEngineError:            http.StatusInternalServerError,
	ErrFileSystemError:        http.StatusInternalServerError,
	ErrOutOfMemory:            http.StatusInternalServerError,
}

// HTTPStatus returns the response status for a code. Unknown codes map to
// 500 so a missing table entry can never turn a failure into a success.
func (c ErrorCode) HTTPStatus() int {
	if s, ok := httpStatusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ConversionError carries a taxonomy code through an error return from the
// processing layer. Validation failures use ValidationVerdict instead; this
// type exists for converter and engine errors surfaced after validation.
type ConversionError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ConversionError) Unwrap() error { return e.Err }

// NewConversionError wraps an underlying engine error with a taxonomy code.
func NewConversionError(code ErrorCode, msg string, err error) *ConversionError {
	return &ConversionError{Code: code, Message: msg, Err: err}
}
