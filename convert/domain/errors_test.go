package domain

import (
	"errors"
	"net/http"
	"testing"
)

func TestErrorCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		status int
	}{
		{code: ErrFileTooLarge, status: http.StatusRequestEntityTooLarge},
		{code: ErrFileTooSmall, status: http.StatusBadRequest},
		{code: ErrInvalidFileType, status: http.StatusUnsupportedMediaType},
		{code: ErrUnsupportedFormat, status: http.StatusUnsupportedMediaType},
		{code: ErrUnsupportedOperation, status: http.StatusBadRequest},
		{code: ErrInvalidQuality, status: http.StatusBadRequest},
		{code: ErrInvalidDimensions, status: http.StatusBadRequest},
		{code: ErrConversionFailed, status: http.StatusUnprocessableEntity},
		{code: ErrCorruptedFile, status: http.StatusUnprocessableEntity},
		{code: ErrInternalError, status: http.StatusInternalServerError},
		{code: ErrEngineError, status: http.StatusInternalServerError},
		{code: ErrOutOfMemory, status: http.StatusInternalServerError},
		{code: ErrorCode("SomethingNew"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.HTTPStatus(); got != tt.status {
				t.Errorf("HTTPStatus(%s) = %d, want %d", tt.code, got, tt.status)
			}
		})
	}
}

func TestConversionErrorUnwrap(t *testing.T) {
	inner := errors.New("decoder blew up")
	err := NewConversionError(ErrConversionFailed, "decoding image", inner)

	if !errors.Is(err, inner) {
		t.Error("ConversionError should unwrap to the inner error")
	}
	if err.Error() != "decoding image: decoder blew up" {
		t.Errorf("unexpected message: %q", err.Error())
	}

	bare := NewConversionError(ErrEngineError, "engine offline", nil)
	if bare.Error() != "engine offline" {
		t.Errorf("unexpected message without inner error: %q", bare.Error())
	}
}
