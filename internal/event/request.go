// Package event decodes the notification events Claude Code sends to hooks.
package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
)

const (
	// DefaultMessage is used when the event carries no message key.
	DefaultMessage = "Notification"
	// UnknownProject is the project name used when no working directory is known.
	UnknownProject = "Unknown"
)

// ErrInvalidInput indicates the hook input is not a JSON object.
var ErrInvalidInput = errors.New("invalid hook input")

// Request is a single notification event read from standard input.
type Request struct {
	// Message is the notification body.
	Message string `json:"message"`
	// Type is the raw notification type tag.
	Type string `json:"notification_type"`
	// Cwd is the working directory of the session.
	Cwd string `json:"cwd"`
	// SessionID identifies the Claude Code session.
	SessionID string `json:"session_id"`
}

// Parse decodes a Request from r.
// The input must hold exactly one JSON object, optionally surrounded by
// whitespace. Unknown keys are ignored. A missing message falls back to
// DefaultMessage.
func Parse(r io.Reader) (*Request, error) {
	dec := json.NewDecoder(r)

	var doc json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if trimmed := bytes.TrimSpace(doc); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrInvalidInput)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidInput)
	}

	var raw struct {
		Message   *string `json:"message"`
		Type      string  `json:"notification_type"`
		Cwd       string  `json:"cwd"`
		SessionID string  `json:"session_id"`
	}

	if err := json.Unmarshal(doc, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	req := &Request{
		Message:   DefaultMessage,
		Type:      raw.Type,
		Cwd:       raw.Cwd,
		SessionID: raw.SessionID,
	}
	if raw.Message != nil {
		req.Message = *raw.Message
	}

	return req, nil
}

// Kind returns the notification kind of the request.
func (r *Request) Kind() Kind {
	return ParseKind(r.Type)
}

// ProjectName returns the last element of the working directory,
// or UnknownProject when it is empty.
func (r *Request) ProjectName() string {
	if r.Cwd == "" {
		return UnknownProject
	}
	return filepath.Base(r.Cwd)
}
