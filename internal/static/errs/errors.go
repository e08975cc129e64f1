package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a request failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUpstream
	KindUnsupportedLanguage
	KindReferenceSolutionFailed
	KindPersistence
	KindJudgeTimeout
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	case KindUnsupportedLanguage:
		return "unsupported_language"
	case KindReferenceSolutionFailed:
		return "reference_solution_failed"
	case KindPersistence:
		return "persistence"
	case KindJudgeTimeout:
		return "judge_timeout"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a failure carrying its Kind. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil || e.Err.Error() == e.Message {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Tag attaches kind to a sentinel error, reusing its text as the message.
func Tag(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}

// KindOf returns the Kind of the outermost *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Message returns the client facing message of err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ReferenceFailure describes the first test case a reference solution did not pass.
type ReferenceFailure struct {
	Language string
	TestCase int
	Status   string
}

func (r *ReferenceFailure) Error() string {
	return fmt.Sprintf("testcase %d failed for language %s (%s)", r.TestCase, r.Language, r.Status)
}

func ReferenceSolutionFailed(language string, testCase int, status string) *Error {
	return &Error{
		Kind:    KindReferenceSolutionFailed,
		Message: fmt.Sprintf("Testcase %d failed for language %s", testCase, language),
		Err:     &ReferenceFailure{Language: language, TestCase: testCase, Status: status},
	}
}

// HTTPStatus maps err to the status code returned by the API.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindUpstream, KindUnsupportedLanguage,
		KindReferenceSolutionFailed, KindJudgeTimeout, KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
