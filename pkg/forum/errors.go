package forum

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind partitions every request failure into exactly one bucket.
type ErrorKind int

const (
	// ServerRejected: a response arrived with a non-2xx status.
	ServerRejected ErrorKind = iota
	// NoResponse: the request was sent but no response came back.
	NoResponse
	// ClientFault: anything else — request construction or response parsing.
	ClientFault
)

// errorEnvelope is the JSON error body the backend writes on failures.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RequestError is the single error type surfaced by every Client operation.
type RequestError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *RequestError) Error() string {
	switch e.Kind {
	case ServerRejected:
		return fmt.Sprintf("server rejected request: %s", e.UserMessage())
	case NoResponse:
		if e.Err != nil {
			return fmt.Sprintf("no response from server: %v", e.Err)
		}
		return "no response from server"
	default:
		if e.Err != nil {
			return fmt.Sprintf("request failed: %v", e.Err)
		}
		return "request failed"
	}
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// UserMessage renders the error the way the forum UI always has.
func (e *RequestError) UserMessage() string {
	switch e.Kind {
	case ServerRejected:
		if e.Message != "" {
			return e.Message
		}
		return fmt.Sprintf("Error: %d", e.StatusCode)
	case NoResponse:
		return "No response from server. Is the backend running?"
	default:
		return "An error occurred during the request."
	}
}

// UserMessage converts any error returned by a Client operation into the
// message shown to the user. Non-RequestError values fall into the
// client-fault bucket.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var re *RequestError
	if errors.As(err, &re) {
		return re.UserMessage()
	}
	return (&RequestError{Kind: ClientFault, Err: err}).UserMessage()
}

func serverRejected(status int, body []byte) *RequestError {
	var env errorEnvelope
	_ = json.Unmarshal(body, &env)
	msg := env.Error
	if msg == "" {
		msg = env.Message
	}
	return &RequestError{Kind: ServerRejected, StatusCode: status, Message: msg}
}

func noResponse(err error) *RequestError {
	return &RequestError{Kind: NoResponse, Err: err}
}

func clientFault(err error) *RequestError {
	return &RequestError{Kind: ClientFault, Err: err}
}
