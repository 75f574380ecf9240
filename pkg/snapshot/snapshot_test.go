package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"torch", "torch"},
		{"Torch==1.2", "torch-1-2"},
		{"opencv-python*", "opencv-python"},
		{"  git+https://github.com/org/repo  ", "git-https-github-com-org-repo"},
		{"***", "snapshot"},
		{"", "snapshot"},
		{"a___b", "a___b"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SafeName(tt.in); got != tt.want {
				t.Errorf("SafeName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	snap := New("Torch==1.2", "report body")
	if snap.ID == "" {
		t.Error("expected a generated ID")
	}
	if snap.Name != "torch-1-2" {
		t.Errorf("unexpected name %q", snap.Name)
	}
	if snap.Query != "Torch==1.2" || snap.Body != "report body" {
		t.Errorf("query or body not carried: %+v", snap)
	}
	if snap.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	snap := New("torch", "body")
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Query != "torch" || got.Body != "body" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestFileStore_GetMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFileStore_ListNewestFirst(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, q := range []string{"first", "second", "third"} {
		snap := New(q, "body")
		snap.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := store.Save(ctx, snap); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	snaps, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(snaps) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(snaps))
	}
	if snaps[0].Query != "third" || snaps[2].Query != "first" {
		t.Errorf("expected newest first, got %q .. %q", snaps[0].Query, snaps[2].Query)
	}
}

func TestFileStore_Delete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	snap := New("torch", "body")
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Delete(ctx, snap.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, snap.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again is a no-op.
	if err := store.Delete(ctx, snap.ID); err != nil {
		t.Errorf("second delete should not error, got %v", err)
	}
}
