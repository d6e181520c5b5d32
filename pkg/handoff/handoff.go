// Package handoff passes a typed value from one screen to the next for a
// single visitor, the server-side stand-in for browser navigation state.
//
// A Mailbox holds at most one value per visitor. Send replaces it, Receive
// reads it without consuming it (the receiving screen re-reads it across its
// own form posts), and Close ends the exchange. Values expire after the TTL
// even when nobody closes them.
package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrNoVisitor = errors.New("handoff: visitor id is empty")

// Storage is the subset of fiber.Storage the mailbox needs. Get returns
// nil, nil for a missing key.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Delete(key string) error
}

type Mailbox[T any] struct {
	store Storage
	name  string
	ttl   time.Duration
}

// New creates a mailbox whose keys are namespaced by name.
func New[T any](store Storage, name string, ttl time.Duration) *Mailbox[T] {
	return &Mailbox[T]{store: store, name: name, ttl: ttl}
}

func (m *Mailbox[T]) key(visitor string) string {
	return "handoff:" + m.name + ":" + visitor
}

// Send stores v for visitor, replacing any earlier value.
func (m *Mailbox[T]) Send(ctx context.Context, visitor string, v T) error {
	if visitor == "" {
		return ErrNoVisitor
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("handoff %s: encode: %w", m.name, err)
	}
	if err := m.store.Set(m.key(visitor), b, m.ttl); err != nil {
		return fmt.Errorf("handoff %s: store: %w", m.name, err)
	}
	return nil
}

// Receive returns the pending value for visitor. ok is false when there is
// none or it expired.
func (m *Mailbox[T]) Receive(ctx context.Context, visitor string) (v T, ok bool, err error) {
	if visitor == "" {
		return v, false, nil
	}
	if err := ctx.Err(); err != nil {
		return v, false, err
	}
	b, err := m.store.Get(m.key(visitor))
	if err != nil {
		return v, false, fmt.Errorf("handoff %s: load: %w", m.name, err)
	}
	if len(b) == 0 {
		return v, false, nil
	}
	if err := json.Unmarshal(b, &v); err != nil {
		// A value we cannot read is as good as none; drop it.
		_ = m.store.Delete(m.key(visitor))
		return v, false, nil
	}
	return v, true, nil
}

// Close discards the pending value for visitor, if any.
func (m *Mailbox[T]) Close(ctx context.Context, visitor string) error {
	if visitor == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.store.Delete(m.key(visitor)); err != nil {
		return fmt.Errorf("handoff %s: delete: %w", m.name, err)
	}
	return nil
}
