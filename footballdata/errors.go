package footballdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"
)

// Kind classifies a failure
type Kind string

// Error kinds. The HTTP kinds map one-to-one to response statuses; the rest
// describe local or transport failures.
const (
	KindInvalidRequest     Kind = "INVALID_REQUEST"
	KindInvalidToken       Kind = "INVALID_TOKEN"
	KindForbidden          Kind = "FORBIDDEN"
	KindNotFound           Kind = "NOT_FOUND"
	KindRateLimit          Kind = "RATE_LIMIT"
	KindServerError        Kind = "SERVER_ERROR"
	KindServiceUnavailable Kind = "SERVICE_UNAVAILABLE"
	KindAPIError           Kind = "API_ERROR"
	KindNetworkError       Kind = "NETWORK_ERROR"
	KindTimeoutError       Kind = "TIMEOUT_ERROR"
	KindCrossOriginError   Kind = "CROSS_ORIGIN_ERROR"
	KindInvalidCompetition Kind = "INVALID_COMPETITION"
	KindConnectionError    Kind = "CONNECTION_ERROR"
	KindMissingToken       Kind = "MISSING_TOKEN"
	KindDecodeError        Kind = "DECODE_ERROR"
)

// Suggestion is a remediation hint attached to cross-origin failures
type Suggestion struct {
	Title   string   `json:"title" yaml:"title"`
	Options []string `json:"options" yaml:"options"`
}

// Error is the typed error returned by every Client operation
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	// Code is the provider's errorCode for responses outside the fixed status mapping
	Code       string
	Err        error
	Suggestion *Suggestion
	Timestamp  time.Time
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("football-data %s: status %d: %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("football-data %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorKind returns the kind as a plain string
func (e *Error) ErrorKind() string {
	return string(e.Kind)
}

// UserMessage returns the fixed message for the kind, falling back to the
// raw message for kinds without one
func (e *Error) UserMessage() string {
	if msg := FriendlyMessage(e.Kind); msg != "" {
		return msg
	}
	return e.Message
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *Error) IsUnauthorized() bool {
	return e.Kind == KindInvalidToken || e.Kind == KindForbidden || e.Kind == KindMissingToken
}

// IsNotFound checks if the error indicates a not found response
func (e *Error) IsNotFound() bool {
	return e.Kind == KindNotFound
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Timestamp: time.Now()}
}

var friendlyMessages = map[Kind]string{
	KindInvalidToken:       "Invalid access token. Check your credentials.",
	KindRateLimit:          "Too many requests. Wait a few minutes before trying again.",
	KindNotFound:           "No data found for the given filters.",
	KindNetworkError:       "Connection problem. Check your internet connection.",
	KindInvalidCompetition: "League/competition not supported.",
	KindServerError:        "Server error. Try again later.",
	KindServiceUnavailable: "Service temporarily unavailable.",
	KindCrossOriginError:   "Cross-origin request blocked. Use proxy mode or call the API from a server.",
	KindMissingToken:       "API token not configured. Set football_data.api_token.",
	KindTimeoutError:       "The request took too long and was aborted.",
}

// FriendlyMessage returns the fixed user-facing message for kind, or an
// empty string when the kind has none
func FriendlyMessage(kind Kind) string {
	return friendlyMessages[kind]
}

// KindOf returns the kind of err, or an empty Kind when err is not an *Error
func KindOf(err error) Kind {
	var fdErr *Error
	if errors.As(err, &fdErr) {
		return fdErr.Kind
	}
	return ""
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

type statusMapping struct {
	kind    Kind
	message string
}

var statusErrors = map[int]statusMapping{
	http.StatusBadRequest:          {KindInvalidRequest, "Invalid request parameters"},
	http.StatusUnauthorized:        {KindInvalidToken, "Authentication token is invalid or expired"},
	http.StatusForbidden:           {KindForbidden, "Access denied. Check the token permissions"},
	http.StatusNotFound:            {KindNotFound, "Resource not found"},
	http.StatusTooManyRequests:     {KindRateLimit, "Request limit exceeded. Try again in a few minutes"},
	http.StatusInternalServerError: {KindServerError, "Internal server error"},
	http.StatusServiceUnavailable:  {KindServiceUnavailable, "Service temporarily unavailable"},
}

// errorBody is the provider's error payload
type errorBody struct {
	Message   string `json:"message"`
	ErrorCode any    `json:"errorCode"`
}

// errorFromResponse classifies a non-2xx response. Mapped statuses always use
// their fixed kind and message; other statuses use the body when present.
func errorFromResponse(status int, body []byte) *Error {
	e := newError(KindAPIError, fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status)))
	e.StatusCode = status

	var payload errorBody
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			e.Message = payload.Message
		}
		if payload.ErrorCode != nil {
			e.Code = fmt.Sprint(payload.ErrorCode)
		}
	}

	if mapping, ok := statusErrors[status]; ok {
		e.Kind = mapping.kind
		e.Message = mapping.message
	}

	return e
}

func crossOriginSuggestion() *Suggestion {
	return &Suggestion{
		Title: "How to resolve a cross-origin error:",
		Options: []string{
			"1. Route requests through a proxy: set football_data.mode to proxy and football_data.proxy_url",
			"2. Call the API from a server-side process, for example `matchboard serve`",
			"3. Disable cross-origin checks in the browser (development only)",
		},
	}
}

// errorFromTransport classifies a failure that happened before a response
// was received
func errorFromTransport(err error) *Error {
	var fdErr *Error
	if errors.As(err, &fdErr) {
		return fdErr
	}

	var e *Error

	switch {
	case isTimeout(err):
		e = newError(KindTimeoutError, "Request aborted by timeout")
	case isNetworkError(err):
		e = newError(KindNetworkError, "Connection error. Check your internet connection and try again")
	case isCrossOrigin(err):
		e = newError(KindCrossOriginError, "Cross-origin request blocked. Use the proxy or call the API from a server")
		e.Suggestion = crossOriginSuggestion()
	default:
		e = newError(KindConnectionError, "Error connecting to the API")
	}

	e.Err = err
	return e
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isCrossOrigin looks at the cause only; a *url.Error message also carries
// the request URL, which may itself contain "cors".
func isCrossOrigin(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "cors") || strings.Contains(msg, "cross-origin")
}

func isNetworkError(err error) bool {
	var opErr *net.OpError
	var dnsErr *net.DNSError
	return errors.As(err, &opErr) ||
		errors.As(err, &dnsErr) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET)
}
