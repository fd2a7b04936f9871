package blobstore

import (
	"context"
	"errors"
	"testing"
)

func TestFilesystemStore(t *testing.T) {
	ctx := context.Background()
	store, err := NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilesystem failed: %v", err)
	}

	t.Run("PutAndGet", func(t *testing.T) {
		payload := []byte("fake jpeg bytes")
		if err := store.Put(ctx, "photos/abc-123", payload, "image/jpeg"); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		data, contentType, err := store.Get(ctx, "photos/abc-123")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(data) != string(payload) {
			t.Errorf("data = %q, want %q", data, payload)
		}
		if contentType != "image/jpeg" {
			t.Errorf("contentType = %q, want image/jpeg", contentType)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		_, _, err := store.Get(ctx, "photos/never-uploaded")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("MissingSidecarDefaults", func(t *testing.T) {
		if err := store.Put(ctx, "photos/no-type", []byte("x"), ""); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		_, contentType, err := store.Get(ctx, "photos/no-type")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if contentType != "application/octet-stream" {
			t.Errorf("contentType = %q, want the octet-stream default", contentType)
		}
	})

	t.Run("RejectsBadKeys", func(t *testing.T) {
		for _, key := range []string{"../etc/passwd", "photos/../../secret", "/absolute", ""} {
			if err := store.Put(ctx, key, []byte("x"), "text/plain"); err == nil {
				t.Errorf("Put accepted unsafe key %q", key)
			}
			if _, _, err := store.Get(ctx, key); err == nil {
				t.Errorf("Get accepted unsafe key %q", key)
			}
		}
	})
}

func TestValidKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"photos/abc-123", true},
		{"photos/a/b/c.jpg", true},
		{"a_b.c-d", true},
		{"", false},
		{"/leading-slash", false},
		{"..", false},
		{"photos/../escape", false},
		{"photos/has space", false},
		{"-leading-dash", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := ValidKey(tt.key); got != tt.want {
				t.Errorf("ValidKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}
