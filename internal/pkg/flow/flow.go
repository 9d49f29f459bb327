// Package flow keeps the short-lived navigation context that links the steps of a
// multi-page interaction (checkout, registration, password recovery, email change).
// Records expire on their own and are discarded as soon as a flow completes.
package flow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind names the interaction a record belongs to
type Kind string

const (
	KindCheckout     Kind = "checkout"
	KindRegistration Kind = "registration"
	KindRecovery     Kind = "recovery"
	KindEmailChange  Kind = "email_change"
)

// ErrNotFound is returned for missing, expired or foreign records
var ErrNotFound = errors.New("flow record not found")

// Record is one flow's saved context
type Record struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Decode unmarshals the record payload into v
func (r *Record) Decode(v any) error {
	if len(r.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Payload, v); err != nil {
		return fmt.Errorf("failed to decode %s flow payload: %w", r.Kind, err)
	}
	return nil
}

// Store persists records until ttl elapses
type Store interface {
	Put(ctx context.Context, rec *Record, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
}

// Manager creates, loads and discards flow records
type Manager struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// NewManager creates a flow manager whose records live for ttl after their last save
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		ttl:   ttl,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Start creates a new record of kind holding payload
func (m *Manager) Start(ctx context.Context, kind Kind, payload any) (*Record, error) {
	now := m.now()
	rec := &Record{
		ID:        uuid.NewString(),
		Kind:      kind,
		CreatedAt: now,
	}
	if err := m.Save(ctx, rec, payload); err != nil {
		return nil, err
	}
	return rec, nil
}

// Load fetches record id, checks it belongs to kind and decodes its payload into out
func (m *Manager) Load(ctx context.Context, id string, kind Kind, out any) (*Record, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	rec, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Kind != kind {
		return nil, ErrNotFound
	}
	if out != nil {
		if err := rec.Decode(out); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// Save replaces the record payload and restarts its ttl
func (m *Manager) Save(ctx context.Context, rec *Record, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s flow payload: %w", rec.Kind, err)
	}
	rec.Payload = raw
	rec.UpdatedAt = m.now()

	if err := m.store.Put(ctx, rec, m.ttl); err != nil {
		return fmt.Errorf("failed to save %s flow: %w", rec.Kind, err)
	}
	return nil
}

// Discard removes record id; a missing record is not an error
func (m *Manager) Discard(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to discard flow: %w", err)
	}
	return nil
}
