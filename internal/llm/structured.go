package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Validator validates a parsed value after JSON extraction.
// Returns nil if valid, or a descriptive error if invalid.
type Validator[T any] func(T) error

// ExtractJSON extracts a JSON value of type T from raw model output.
// Models asked for JSON still sometimes wrap it in markdown fences or
// surround it with prose; both are tolerated. If validator is non-nil,
// the extracted value is validated before return.
func ExtractJSON[T any](raw string, validator Validator[T]) (T, error) {
	var zero T

	cleaned := stripCodeFences(raw)
	jsonStr := extractBalanced(cleaned)
	if jsonStr == "" {
		return zero, fmt.Errorf("%w: no JSON value found in response", ErrInvalidOutput)
	}

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}

	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}

	return result, nil
}

// stripCodeFences removes markdown code fences (```json ... ``` or ``` ... ```).
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}

// extractBalanced finds the first balanced { ... } or [ ... ] in the text.
func extractBalanced(s string) string {
	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')

	start := objStart
	open, close := byte('{'), byte('}')
	if start == -1 || (arrStart != -1 && arrStart < start) {
		start = arrStart
		open, close = '[', ']'
	}
	if start == -1 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch c {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}

	return ""
}
