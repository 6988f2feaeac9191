package logx

import (
	"bytes"
	"regexp"
)

type SensitiveDataMaskerInterface interface {
	Mask(input []byte) []byte
}

//nolint:gochecknoglobals
var sensitiveDataPatterns = []*regexp.Regexp{
	regexp.MustCompile("(?s)(Authorization: Bearer ).+?(\r)"),
	regexp.MustCompile(`(?s)("[Pp]assword":\s?").+?(")`),
	regexp.MustCompile(`(?s)("accessToken":\s?").+?(")`),
	regexp.MustCompile(`(?s)("refreshToken":\s?").+?(")`),
}

// Keys whose whole JSON value is masked, whatever its shape. Patient
// measurements may arrive nested or malformed, so a pattern stopping at the
// first bracket is not enough.
//
//nolint:gochecknoglobals
var sensitiveValueKeys = []*regexp.Regexp{
	regexp.MustCompile(`"features"\s*:\s*`),
}

var masked = []byte("[MASKED]") //nolint:gochecknoglobals

type SensitiveDataMasker struct {
	valueKeys []*regexp.Regexp
}

// NewSensitiveDataMasker masks credentials and patient measurements.
func NewSensitiveDataMasker() SensitiveDataMasker {
	return SensitiveDataMasker{
		valueKeys: sensitiveValueKeys,
	}
}

// NewCredentialsMasker masks credentials only, leaving measurements readable
// for local debugging.
func NewCredentialsMasker() SensitiveDataMasker {
	return SensitiveDataMasker{}
}

func (s SensitiveDataMasker) Mask(input []byte) []byte {
	for _, pattern := range sensitiveDataPatterns {
		input = pattern.ReplaceAll(input, []byte("${1}[MASKED]${2}"))
	}

	for _, key := range s.valueKeys {
		input = maskValues(input, key)
	}

	return input
}

// maskValues replaces the JSON value following every match of key. Arrays
// and objects keep their outer brackets; a value cut off by truncation is
// masked up to the end of input.
func maskValues(input []byte, key *regexp.Regexp) []byte {
	var out bytes.Buffer

	for {
		loc := key.FindIndex(input)
		if loc == nil {
			out.Write(input)

			return out.Bytes()
		}

		out.Write(input[:loc[1]])
		input = input[loc[1]:]

		end := valueEnd(input)

		switch {
		case end == 0:
		case input[0] == '[' || input[0] == '{':
			out.WriteByte(input[0])
			out.Write(masked)

			if closing := input[end-1]; end > 1 && (closing == ']' || closing == '}') {
				out.WriteByte(closing)
			}
		default:
			out.Write(masked)
		}

		input = input[end:]
	}
}

// valueEnd returns the length of the JSON value at the start of input,
// matching nested brackets and skipping string contents.
func valueEnd(input []byte) int {
	if len(input) == 0 {
		return 0
	}

	depth := 0
	inString := false
	escaped := false

	for i, c := range input {
		switch {
		case inString:
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false

				if depth == 0 {
					return i + 1
				}
			}
		case c == '"':
			inString = true
		case c == '[' || c == '{':
			depth++
		case c == ']' || c == '}':
			if depth == 0 {
				return i
			}

			depth--

			if depth == 0 {
				return i + 1
			}
		case depth == 0 && (c == ',' || c == '\r' || c == '\n'):
			return i
		}
	}

	return len(input)
}
