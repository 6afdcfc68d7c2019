package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorMessage(t *testing.T) {
	err := NewInvalidInputError(ErrCodeEmptyText, "Resume text is empty", nil)
	assert.Equal(t, "EMPTY_TEXT: Resume text is empty", err.Error())

	cause := stderrors.New("zip: not a valid zip file")
	err = NewInvalidInputError(ErrCodeExtractionFailed, "Could not read cv.docx", cause)
	assert.Equal(t, "EXTRACTION_FAILED: Could not read cv.docx (caused by: zip: not a valid zip file)", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"invalid input", NewInvalidInputError(ErrCodeMissingField, "m", nil), ErrorTypeInvalidInput},
		{"upstream", NewUpstreamModelError(ErrCodeModelUnavailable, "m", nil), ErrorTypeUpstreamModel},
		{"computation", NewComputationError(ErrCodeAnalysisFailed, "m", nil), ErrorTypeComputation},
		{"not found", NewNotFoundError(ErrCodeSessionNotFound, "m", nil), ErrorTypeNotFound},
		{"io", NewIOError(ErrCodeStorageFailed, "m", nil), ErrorTypeIO},
		{"config", NewConfigError(ErrCodeInvalidConfig, "m", nil), ErrorTypeConfig},
		{"wrapped", fmt.Errorf("handler: %w", NewNotFoundError(ErrCodeSessionNotFound, "m", nil)), ErrorTypeNotFound},
		{"plain error", stderrors.New("boom"), ErrorTypeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypeOf(tt.err))
			assert.True(t, IsType(tt.err, tt.want) || tt.want == ErrorTypeInternal)
		})
	}
	assert.False(t, IsType(stderrors.New("boom"), ErrorTypeInternal))
}

func TestWithContext(t *testing.T) {
	err := NewNotFoundError(ErrCodeSessionNotFound, "Session not found", nil).
		WithContext("session_id", "abc").
		WithContext("kind", "match")
	assert.Equal(t, map[string]any{"session_id": "abc", "kind": "match"}, err.Context)
}

func TestLogErrorExpandsAppError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, slog.LevelDebug)

	err := NewIOError(ErrCodeStorageFailed, "write failed", stderrors.New("disk full")).
		WithContext("session_id", "abc")
	logger.LogError(err, "Failed to persist result", "route", "/api/resume/analyze")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "Failed to persist result", rec["msg"])
	assert.Equal(t, "io", rec["error_type"])
	assert.Equal(t, ErrCodeStorageFailed, rec["error_code"])
	assert.Equal(t, "abc", rec["session_id"])
	assert.Equal(t, "disk full", rec["cause"])
	assert.Equal(t, "/api/resume/analyze", rec["route"])
}

func TestLogErrorPlainError(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerTo(&buf, slog.LevelInfo).LogError(stderrors.New("boom"), "failed")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "boom", rec["error"])
}

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		logger, err := New(level)
		assert.NoError(t, err)
		assert.NotNil(t, logger)
	}
	_, err := New("verbose")
	assert.Error(t, err)
}

func TestWithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	NewLoggerTo(&buf, slog.LevelInfo).With("component", "scorer").Info("done")
	assert.Contains(t, buf.String(), `"component":"scorer"`)
}
