package tlcfi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Object type discriminators from the TLC-FI contract.
const (
	objectTypeSignal   = 3
	objectTypeDetector = 4
)

type rawPayload struct {
	Params rawParams `json:"params"`
}

type rawParams struct {
	Ticks  json.RawMessage `json:"ticks"`
	Update []rawUpdate     `json:"update"`
}

type rawUpdate struct {
	Objects rawObjects        `json:"objects"`
	States  []json.RawMessage `json:"states"`
}

type rawObjects struct {
	IDs  []string `json:"ids"`
	Type int      `json:"type"`
}

type rawState struct {
	State json.RawMessage `json:"state"`
}

var jsonNull = []byte("null")

// DecodeUpdate turns one isolated UpdateState payload into a typed Update.
//
// Object types other than signal and detector yield an Update with no
// entries: the capture contains message types this converter does not
// cover, and those must pass through without failing the run. A null
// state drops its (id, state) pair; the id array and state array having
// different lengths violates the TLC-FI contract and is not recoverable.
func DecodeUpdate(payload []byte) (Update, error) {
	var raw rawPayload
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Update{}, fmt.Errorf("tlcfi: decode payload: %w", err)
	}

	tick, err := decodeTick(raw.Params.Ticks)
	if err != nil {
		return Update{}, err
	}

	if len(raw.Params.Update) == 0 {
		return Update{Tick: tick, Kind: KindUnsupported}, nil
	}
	update := raw.Params.Update[0]

	var kind EntityKind
	switch update.Objects.Type {
	case objectTypeSignal:
		kind = KindSignal
	case objectTypeDetector:
		kind = KindDetector
	default:
		return Update{Tick: tick, Kind: KindUnsupported}, nil
	}

	if update.Objects.IDs == nil {
		return Update{Tick: tick, Kind: kind}, nil
	}
	if len(update.Objects.IDs) != len(update.States) {
		return Update{}, fmt.Errorf("%w: %d ids vs %d states",
			ErrLengthMismatch, len(update.Objects.IDs), len(update.States))
	}

	entries := make([]Entry, 0, len(update.Objects.IDs))
	for i, name := range update.Objects.IDs {
		code, changed, err := decodeStateCode(update.States[i])
		if err != nil {
			return Update{}, fmt.Errorf("%w (id %q)", err, name)
		}
		if !changed {
			continue
		}
		entries = append(entries, Entry{Name: name, Code: code})
	}

	return Update{Tick: tick, Kind: kind, Entries: entries}, nil
}

func decodeTick(raw json.RawMessage) (uint64, error) {
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return 0, ErrMissingTick
	}
	var tick uint64
	if err := json.Unmarshal(raw, &tick); err != nil {
		return 0, ErrMissingTick
	}
	return tick, nil
}

// decodeStateCode reads the `state` member of one state object. A missing
// or null state means the controller reported no change for the entity.
func decodeStateCode(raw json.RawMessage) (code uint64, changed bool, err error) {
	var state rawState
	if err := json.Unmarshal(raw, &state); err != nil {
		return 0, false, ErrMalformedState
	}
	if len(state.State) == 0 || bytes.Equal(state.State, jsonNull) {
		return 0, false, nil
	}
	if err := json.Unmarshal(state.State, &code); err != nil {
		return 0, false, ErrMalformedState
	}
	return code, true, nil
}
