package rest

import (
	"errors"
	"fmt"
)

// Kind classifies a failed backend interaction. Every error leaving this
// package is exactly one of these.
type Kind int

const (
	// Unknown covers 5xx and anything unclassified; advise refresh.
	Unknown Kind = iota
	// Network is a transport failure; the request may have completed
	// server-side.
	Network
	// Validation is a 422 with field-level messages.
	Validation
	// Conflict is a 409 natural-key collision.
	Conflict
	// NotFound is a 404 stale local reference.
	NotFound
	// Permission is a 403; terminal until an external grant.
	Permission
	// Auth is a 401; forces logout.
	Auth
)

func (knd Kind) String() string {
	switch knd {
	case Network:
		return "network"
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not found"
	case Permission:
		return "permission"
	case Auth:
		return "auth"
	}
	return "unknown"
}

// Fault is the typed error surfaced by the client.
type Fault struct {
	Kind    Kind
	Status  int
	Message string

	// Fields holds per-field messages from a 422 response.
	Fields map[string]string
}

func (flt *Fault) Error() string {
	if flt.Status == 0 {
		return fmt.Sprintf("%s: %s", flt.Kind, flt.Message)
	}
	return fmt.Sprintf("%s (HTTP %d): %s", flt.Kind, flt.Status, flt.Message)
}

// Classify returns the Fault within err, wrapping anything else as a
// transport failure. Never returns nil for a non-nil err.
func Classify(err error) *Fault {
	if err == nil {
		return nil
	}

	var flt *Fault
	if errors.As(err, &flt) {
		return flt
	}
	return &Fault{Kind: Network, Message: err.Error()}
}

// errorBody is the backend's error envelope.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// fromStatus maps a non-2xx status to a Fault.
func fromStatus(status int, body errorBody) *Fault {
	flt := &Fault{
		Status:  status,
		Message: body.Error,
		Fields:  body.Fields,
	}
	if flt.Message == "" {
		flt.Message = fmt.Sprintf("request failed with status %d", status)
	}

	switch status {
	case 401:
		flt.Kind = Auth
	case 403:
		flt.Kind = Permission
	case 404:
		flt.Kind = NotFound
	case 409:
		flt.Kind = Conflict
	case 422:
		flt.Kind = Validation
	default:
		flt.Kind = Unknown
	}
	return flt
}
