package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Key names one of the fixed per-guest values the saga persists between
// stages: the pending order echo, the pending checkout draft, and the
// last-chosen audience filter.
type Key string

const (
	KeyOrder    Key = "order"
	KeyDraft    Key = "draft"
	KeyAudience Key = "audience"
)

var ErrNotFound = errors.New("session value not found")

// Store holds per-guest saga state keyed by session id. Values survive a full
// page reload at any stage, which is why they live here and not in memory.
type Store interface {
	Get(ctx context.Context, sessionID string, key Key, out interface{}) error
	Set(ctx context.Context, sessionID string, key Key, value interface{}) error
	Delete(ctx context.Context, sessionID string, key Key) error
	Close() error
}

const schemaVersion = 1

// envelope wraps every stored payload with a schema version so stored state
// can evolve without corrupting older guests' sessions. Unknown versions read
// as not-found.
type envelope struct {
	V    int             `json:"v"`
	Data json.RawMessage `json:"data"`
}

func encode(value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal session value failed: %w", err)
	}
	wrapped, err := json.Marshal(envelope{V: schemaVersion, Data: data})
	if err != nil {
		return nil, fmt.Errorf("marshal envelope failed: %w", err)
	}
	return wrapped, nil
}

func decode(raw []byte, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unmarshal envelope failed: %w", err)
	}
	if env.V != schemaVersion {
		return ErrNotFound
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("unmarshal session value failed: %w", err)
	}
	return nil
}
