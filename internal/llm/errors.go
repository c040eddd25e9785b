package llm

import "errors"

var (
	// ErrUnavailable indicates the generative-text endpoint is unreachable.
	ErrUnavailable = errors.New("generative service unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("generative request timed out")

	// ErrInvalidOutput indicates the model response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid generative output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("generative retry attempts exhausted")

	// ErrDisabled indicates generative assistance is switched off in
	// configuration. Callers degrade to their fallback text.
	ErrDisabled = errors.New("generative assistance disabled")
)
