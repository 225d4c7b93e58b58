// Package operation defines pending transcription operation references
// and their lifecycle management.
package operation

import (
	"errors"
	"net/url"
	"strings"
)

// SentinelPrefix marks a submitted text as a pending operation reference
// rather than ordinary chat content. The exact shape is
// "__PENDING_OPERATION:" + operationId + (":" + percentEncodedFileName)?
// and must be preserved for interoperability with the upstream emitter.
const SentinelPrefix = "__PENDING_OPERATION:"

// DefaultDisplayName is used when the reference carries no file name,
// or when the encoded file name cannot be decoded.
const DefaultDisplayName = "audio"

// ErrEmptyOperationID indicates a sentinel-prefixed input with no operation id.
// This is caller misuse, not a recoverable parse failure.
var ErrEmptyOperationID = errors.New("operation reference has empty operation id")

// Ref is an immutable reference to a server-side transcription operation.
// Created once at parse time, never mutated.
type Ref struct {
	OperationID string
	DisplayName string
}

// ParseRef decodes a sentinel-prefixed string into an operation reference.
// It returns (nil, nil) when the input does not carry the sentinel prefix:
// the text is ordinary content and no operation is being referenced.
// A sentinel-prefixed input with an empty operation id returns
// ErrEmptyOperationID.
func ParseRef(text string) (*Ref, error) {
	if !strings.HasPrefix(text, SentinelPrefix) {
		return nil, nil
	}

	parts := strings.SplitN(strings.TrimPrefix(text, SentinelPrefix), ":", 2)
	if parts[0] == "" {
		return nil, ErrEmptyOperationID
	}

	name := DefaultDisplayName
	if len(parts) == 2 && parts[1] != "" {
		if decoded, err := url.PathUnescape(parts[1]); err == nil {
			name = decoded
		}
	}

	return &Ref{
		OperationID: parts[0],
		DisplayName: name,
	}, nil
}
