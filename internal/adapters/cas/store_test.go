package cas_test

import (
	"os"
	"path/filepath"
	"testing"

	"go.trai.ch/den/internal/adapters/cas"
	"go.trai.ch/den/internal/core/domain"
)

func TestStore_PutAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	storePath := filepath.Join(tmpDir, "source-builds.json")

	store, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	entry := domain.SourceBuildCacheEntry{
		Key:    "abc123",
		Record: &domain.PackageRecord{Name: "foo", Version: "1.0.0"},
		Fresh:  true,
	}

	if err := store.Put(entry); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get("abc123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil")
	}

	if got.Record == nil || got.Record.Name != "foo" {
		t.Errorf("expected record foo, got %+v", got.Record)
	}
	if !got.Fresh {
		t.Error("expected entry to be fresh")
	}
}

func TestStore_MissingKey(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := cas.NewStore(filepath.Join(tmpDir, "source-builds.json"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	got, err := store.Get("nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing key, got %+v", got)
	}
}

func TestStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	storePath := filepath.Join(tmpDir, "source-builds.json")

	store1, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore 1 failed: %v", err)
	}

	entry := domain.SourceBuildCacheEntry{
		Key:   "persisted",
		Fresh: false,
	}
	if err := store1.Put(entry); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	// A fresh instance reading the same file sees the entry.
	store2, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore 2 failed: %v", err)
	}

	got, err := store2.Get("persisted")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil")
	}
	if got.Key != "persisted" {
		t.Errorf("expected key %q, got %q", "persisted", got.Key)
	}
}

func TestStore_StaleWhenArtifactMissing(t *testing.T) {
	tmpDir := t.TempDir()
	storePath := filepath.Join(tmpDir, "source-builds.json")

	store, err := cas.NewStore(storePath)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	artifact := filepath.Join(tmpDir, "pkg-1.0.0.conda")
	if err := os.WriteFile(artifact, []byte("artifact"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	entry := domain.SourceBuildCacheEntry{
		Key:          "with-artifact",
		Record:       &domain.PackageRecord{Name: "pkg", Version: "1.0.0"},
		ArtifactPath: artifact,
		Fresh:        true,
	}
	if err := store.Put(entry); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get("with-artifact")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil || !got.Fresh {
		t.Fatalf("expected fresh entry while artifact exists, got %+v", got)
	}

	if err := os.Remove(artifact); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	got, err = store.Get("with-artifact")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil")
	}
	if got.Fresh {
		t.Error("expected entry to go stale once its artifact is gone")
	}
}
