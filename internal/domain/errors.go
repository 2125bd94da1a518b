package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidDocumentIDs signals that one or more requested ids were not
	// acceptable to the document lookup.
	ErrInvalidDocumentIDs = errors.New("invalid document ids")
	// ErrMissingSimilarity signals a similar-document id with no paired score.
	ErrMissingSimilarity = errors.New("similarity score missing")
	// ErrRemote signals a sibling-service call that failed or returned a
	// non-conforming body.
	ErrRemote = errors.New("remote service error")
)

// RemoteError wraps ErrRemote and carries the verbatim remote response body.
// The transport layer routes the body through unchanged; nothing in between
// interprets it.
type RemoteError struct {
	Service string
	Body    json.RawMessage
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Service, ErrRemote.Error())
}

func (e *RemoteError) Unwrap() error { return ErrRemote }

// NewRemoteError creates a remote error carrying the raw response body.
func NewRemoteError(service string, body json.RawMessage) error {
	return &RemoteError{Service: service, Body: body}
}
