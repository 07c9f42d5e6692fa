package agent

import (
	"encoding/json"
	"errors"
)

// envelopeKind distinguishes a payload delivered directly from one nested as
// a JSON-encoded string under "body". API Gateway proxy integrations produce
// the nested form.
type envelopeKind int

const (
	envelopeDirect envelopeKind = iota
	envelopeWrapped
)

type envelope struct {
	kind    envelopeKind
	payload json.RawMessage
}

// resolveEnvelope classifies the gateway body by field presence, not by
// parse-and-fallback: a top-level "body" string marks the wrapped form and
// its content becomes the effective payload.
func resolveEnvelope(raw []byte) (envelope, error) {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(raw, &outer); err != nil {
		return envelope{}, &MalformedEnvelopeError{Err: err}
	}

	wrapped, ok := outer["body"]
	if !ok {
		return envelope{kind: envelopeDirect, payload: json.RawMessage(raw)}, nil
	}

	var inner string
	if err := json.Unmarshal(wrapped, &inner); err != nil {
		return envelope{}, &MalformedEnvelopeError{Err: errors.New("body field is not a JSON-encoded string")}
	}
	if !json.Valid([]byte(inner)) {
		return envelope{}, &MalformedEnvelopeError{Err: errors.New("nested body is not valid JSON")}
	}
	return envelope{kind: envelopeWrapped, payload: json.RawMessage(inner)}, nil
}
