package storage

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
)

func TestInlineStore_EncodesDataURI(t *testing.T) {
	store := NewInlineStore()

	data := []byte{0x89, 0x50, 0x4E, 0x47}
	ref, err := store.Store(context.Background(), data, "image/png")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if ref.URL != "" {
		t.Fatalf("inline store must not populate the url arm")
	}

	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
	if ref.Inline != want {
		t.Fatalf("inline = %q, want %q", ref.Inline, want)
	}
}

func TestInlineStore_DefaultsContentType(t *testing.T) {
	store := NewInlineStore()

	ref, err := store.Store(context.Background(), []byte{1}, "")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if !strings.HasPrefix(ref.Inline, "data:image/jpeg;base64,") {
		t.Fatalf("missing content type should default to jpeg, got %q", ref.Inline)
	}
}

func TestInlineStore_RemoveIsNoOp(t *testing.T) {
	store := NewInlineStore()
	ref, err := store.Store(context.Background(), []byte{1}, "image/png")
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if err := store.Remove(context.Background(), ref); err != nil {
		t.Fatalf("Remove: %v", err)
	}
}
