package climbsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an APIError.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindRequest is a request that could not be built, such as a body that
	// does not encode.
	KindRequest
	KindTimeout
	KindNetwork
	// KindAuthorizationRejected is a 401 for a request that carried the live
	// session token.
	KindAuthorizationRejected
	KindServer
	KindDecode
	// KindStaleSession is a response to a request whose token stopped being
	// the session token while the request was in flight. It was discarded.
	KindStaleSession
)

func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "request"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindAuthorizationRejected:
		return "authorization rejected"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	case KindStaleSession:
		return "stale session"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is against an *APIError of the matching Kind.
var (
	ErrTimeout               = errors.New("climbsdk: request timed out")
	ErrNetwork               = errors.New("climbsdk: network failure")
	ErrAuthorizationRejected = errors.New("climbsdk: authorization rejected")
	ErrServer                = errors.New("climbsdk: server error")
	ErrDecode                = errors.New("climbsdk: response could not be decoded")
	ErrStaleSession          = errors.New("climbsdk: response discarded for stale session")
)

var kindSentinels = map[Kind]error{
	KindTimeout:               ErrTimeout,
	KindNetwork:               ErrNetwork,
	KindAuthorizationRejected: ErrAuthorizationRejected,
	KindServer:                ErrServer,
	KindDecode:                ErrDecode,
	KindStaleSession:          ErrStaleSession,
}

// APIError is the only error shape Request returns. Message is always set
// and is fit to show a user. Payload holds the server's error body when
// there was one.
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
	Payload    json.RawMessage
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("climbsdk: %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("climbsdk: %s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is matches the sentinel for e.Kind.
func (e *APIError) Is(target error) bool {
	s, ok := kindSentinels[e.Kind]
	return ok && s == target
}

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// messageFields are tried in order when pulling a message out of an error
// body.
var messageFields = []string{"message", "error_description", "error", "msg"}

// errorFromResponse builds the APIError for a non-2xx response.
func errorFromResponse(kind Kind, status int, body []byte) *APIError {
	e := &APIError{Kind: kind, StatusCode: status}
	if len(body) > 0 && json.Valid(body) {
		e.Payload = json.RawMessage(body)
	}

	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err == nil {
		for _, key := range messageFields {
			if s, ok := fields[key].(string); ok && s != "" {
				e.Message = s
				break
			}
		}
	}

	if e.Message == "" {
		if kind == KindAuthorizationRejected {
			e.Message = "your session has expired, please log in again"
		} else {
			e.Message = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
		}
	}
	return e
}
