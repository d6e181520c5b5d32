package handoff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofiber/storage/memory/v2"
)

type payload struct {
	ID    int    `json:"id"`
	Phone string `json:"phone"`
}

func newMailbox(t *testing.T, ttl time.Duration) (*Mailbox[payload], *memory.Storage) {
	t.Helper()
	store := memory.New(memory.Config{GCInterval: 50 * time.Millisecond})
	t.Cleanup(func() { _ = store.Close() })
	return New[payload](store, "reschedule", ttl), store
}

func TestMailbox_SendReceiveClose(t *testing.T) {
	ctx := context.Background()
	mb, _ := newMailbox(t, time.Minute)

	if _, ok, err := mb.Receive(ctx, "v1"); ok || err != nil {
		t.Fatalf("Receive() on empty mailbox = ok %v, err %v", ok, err)
	}

	if err := mb.Send(ctx, "v1", payload{ID: 7, Phone: "9876543210"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	// Receive peeks: the reschedule screen reads it on every post.
	for i := 0; i < 2; i++ {
		got, ok, err := mb.Receive(ctx, "v1")
		if err != nil || !ok {
			t.Fatalf("Receive() #%d = ok %v, err %v", i, ok, err)
		}
		if got.ID != 7 || got.Phone != "9876543210" {
			t.Errorf("Receive() = %+v", got)
		}
	}

	if _, ok, _ := mb.Receive(ctx, "v2"); ok {
		t.Error("another visitor must not see v1's value")
	}

	if err := mb.Close(ctx, "v1"); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, ok, _ := mb.Receive(ctx, "v1"); ok {
		t.Error("value still present after Close")
	}
}

func TestMailbox_SendReplaces(t *testing.T) {
	ctx := context.Background()
	mb, _ := newMailbox(t, time.Minute)

	_ = mb.Send(ctx, "v1", payload{ID: 1})
	_ = mb.Send(ctx, "v1", payload{ID: 2})

	got, ok, _ := mb.Receive(ctx, "v1")
	if !ok || got.ID != 2 {
		t.Errorf("Receive() = %+v, %v; want ID 2", got, ok)
	}
}

func TestMailbox_Expires(t *testing.T) {
	ctx := context.Background()
	mb, _ := newMailbox(t, time.Second)

	_ = mb.Send(ctx, "v1", payload{ID: 1})
	time.Sleep(2500 * time.Millisecond)

	if _, ok, _ := mb.Receive(ctx, "v1"); ok {
		t.Error("value should have expired")
	}
}

func TestMailbox_CorruptValueIsDropped(t *testing.T) {
	ctx := context.Background()
	mb, store := newMailbox(t, time.Minute)

	_ = store.Set(mb.key("v1"), []byte("{not json"), time.Minute)

	if _, ok, err := mb.Receive(ctx, "v1"); ok || err != nil {
		t.Errorf("Receive() = ok %v, err %v", ok, err)
	}
	if b, _ := store.Get(mb.key("v1")); b != nil {
		t.Error("corrupt value should be deleted")
	}
}

func TestMailbox_EmptyVisitor(t *testing.T) {
	ctx := context.Background()
	mb, _ := newMailbox(t, time.Minute)

	if err := mb.Send(ctx, "", payload{}); !errors.Is(err, ErrNoVisitor) {
		t.Errorf("Send() error = %v, want ErrNoVisitor", err)
	}
	if _, ok, err := mb.Receive(ctx, ""); ok || err != nil {
		t.Errorf("Receive() = ok %v, err %v", ok, err)
	}
}
