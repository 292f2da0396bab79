// Package codec encodes and decodes game states to and from the textual
// payload stored alongside each snapshot row. It is the single place the
// wire/storage payload format lives; Repository and PersistenceWorker never
// interpret the payload string themselves.
package codec

import "encoding/json"

// Codec converts between a concrete game state type S and its textual
// storage form. Encoding is total; Decode reports a DecodeError on malformed
// input.
type Codec[S any] interface {
	Encode(state S) (string, error)
	Decode(payload string) (S, error)
}

// DecodeError wraps a payload that failed to decode, carrying a
// human-readable message without leaking the raw payload to callers that
// only need to know "skip this row".
type DecodeError struct {
	GameType string
	Err      error
}

func (e *DecodeError) Error() string {
	return "codec: failed to decode " + e.GameType + " payload: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// JSON is the reference codec: any self-describing format satisfies the
// spec's only external requirement, round-trip identity, and JSON is what
// every other payload in this system already speaks.
type JSON[S any] struct {
	GameType string
}

// NewJSON builds a JSON codec tagged with the owning game type, used only
// for error messages.
func NewJSON[S any](gameType string) JSON[S] {
	return JSON[S]{GameType: gameType}
}

func (c JSON[S]) Encode(state S) (string, error) {
	b, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c JSON[S]) Decode(payload string) (S, error) {
	var state S
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return state, &DecodeError{GameType: c.GameType, Err: err}
	}
	return state, nil
}
