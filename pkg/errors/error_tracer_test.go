package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTracer_CodeIsMessage(t *testing.T) {
	codes := []ErrorCode{
		ConfigParseError, BookConstructError, WorkloadError,
		ConformanceMismatchError, ReportWriteError, ResultPublishError,
	}
	for _, code := range codes {
		tracer := NewTracer(code)
		assert.Equal(t, code.String(), tracer.Error())
	}
}

func TestTracer_WrapAddsStack(t *testing.T) {
	cause := stderrors.New("boom")
	tracer := NewTracer(WorkloadError).Wrap(cause)

	assert.NotNil(t, tracer.StackTrace())
	assert.ErrorIs(t, tracer, cause)
}

func TestTracer_WrapKeepsExistingStack(t *testing.T) {
	cause := pkgerrors.New("boom")
	tracer := NewTracer(BookConstructError).Wrap(cause)

	assert.Equal(t, cause.(StackTracer).StackTrace(), tracer.StackTrace())
}

func TestTracer_UnwrapsThroughWrappers(t *testing.T) {
	tracer := NewTracer(ConformanceMismatchError).Wrap(stderrors.New("depth mismatch"))
	wrapped := fmt.Errorf("uniform/scan: %w", tracer)

	var found *ErrorTracer
	require.True(t, stderrors.As(wrapped, &found))
	assert.Equal(t, ConformanceMismatchError.String(), found.Message)
}
