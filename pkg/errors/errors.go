package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure. Codes are stable and are what tests and
// callers branch on; messages are for people.
type ErrorCode string

const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Root configuration
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Paths
	ErrPathNotFound ErrorCode = "PATH_NOT_FOUND"
	ErrHomeDir      ErrorCode = "HOME_DIR"

	// Fragment sources and commands
	ErrSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"
	ErrSourceRead     ErrorCode = "SOURCE_READ"
	ErrCommandFailed  ErrorCode = "COMMAND_FAILED"
	ErrCommandOutput  ErrorCode = "COMMAND_OUTPUT"

	// Codecs
	ErrFormatParse     ErrorCode = "FORMAT_PARSE"
	ErrFormatSerialize ErrorCode = "FORMAT_SERIALIZE"
	ErrFormatUnknown   ErrorCode = "FORMAT_UNKNOWN"

	// Conditions and the working directory
	ErrWorkingDir   ErrorCode = "WORKING_DIR"
	ErrConditionDir ErrorCode = "CONDITION_DIR"

	// Injection targets
	ErrDirCreate ErrorCode = "DIR_CREATE"
	ErrFileWrite ErrorCode = "FILE_WRITE"
)

// RelconfError is the error type returned by every relconf package. Code
// classifies the failure; Details carries the context a user needs to locate
// it, such as the tool, the fragment or the path involved.
type RelconfError struct {
	Code    ErrorCode
	Message string
	Details map[string]any
	Wrapped error
}

func build(code ErrorCode, message string, wrapped error) *RelconfError {
	return &RelconfError{Code: code, Message: message, Details: map[string]any{}, Wrapped: wrapped}
}

func (e *RelconfError) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
}

func (e *RelconfError) Unwrap() error { return e.Wrapped }

// Is matches any RelconfError carrying the same code, so a bare
// New(code, "") works as a sentinel with errors.Is.
func (e *RelconfError) Is(target error) bool {
	t, ok := target.(*RelconfError)
	return ok && t.Code == e.Code
}

// WithDetail records key on e and returns e for chaining
func (e *RelconfError) WithDetail(key string, value any) *RelconfError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

func New(code ErrorCode, message string) *RelconfError {
	return build(code, message, nil)
}

func Newf(code ErrorCode, format string, args ...any) *RelconfError {
	return build(code, fmt.Sprintf(format, args...), nil)
}

// Wrap adds code and message to err. A nil err gives a nil *RelconfError,
// which is not a nil error once stored in an error interface, so callers
// check err first.
func Wrap(err error, code ErrorCode, message string) *RelconfError {
	if err == nil {
		return nil
	}
	return build(code, message, err)
}

func Wrapf(err error, code ErrorCode, format string, args ...any) *RelconfError {
	if err == nil {
		return nil
	}
	return build(code, fmt.Sprintf(format, args...), err)
}

// chain returns the RelconfErrors reachable from err, outermost first.
// Plain errors between two RelconfErrors are skipped; for joined errors the
// first branch holding a RelconfError is followed.
func chain(err error) []*RelconfError {
	var out []*RelconfError
	for err != nil {
		var re *RelconfError
		if !errors.As(err, &re) {
			break
		}
		out = append(out, re)
		err = re.Wrapped
	}
	return out
}

// IsErrorCode reports whether the outermost RelconfError in err has code
func IsErrorCode(err error, code ErrorCode) bool {
	return GetErrorCode(err) == code
}

// GetErrorCode returns the code of the outermost RelconfError, or ErrUnknown
func GetErrorCode(err error) ErrorCode {
	if c := chain(err); len(c) > 0 {
		return c[0].Code
	}
	return ErrUnknown
}

// HasCode reports whether any RelconfError below err carries code. Unlike
// IsErrorCode it looks past the outermost RelconfError and into every branch
// of a joined error, so it finds a WORKING_DIR failure under the tool context
// added by the pipeline.
func HasCode(err error, code ErrorCode) bool {
	switch e := err.(type) {
	case nil:
		return false
	case *RelconfError:
		return e != nil && (e.Code == code || HasCode(e.Wrapped, code))
	case interface{ Unwrap() []error }:
		for _, branch := range e.Unwrap() {
			if HasCode(branch, code) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		return HasCode(e.Unwrap(), code)
	}
	return false
}

// GetErrorDetails collects the details of every RelconfError in err's
// chain. Outer errors win on conflicting keys, so the tool context added by
// the pipeline sits next to the path recorded where the failure happened.
// It returns nil when err holds no RelconfError.
func GetErrorDetails(err error) map[string]any {
	c := chain(err)
	if len(c) == 0 {
		return nil
	}
	details := map[string]any{}
	for i := len(c) - 1; i >= 0; i-- {
		for k, v := range c[i].Details {
			details[k] = v
		}
	}
	return details
}
