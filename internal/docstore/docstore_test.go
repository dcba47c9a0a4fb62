package docstore

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func testLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMeta(id, hash string, created time.Time) Metadata {
	return Metadata{
		ID:          id,
		Filename:    id + ".pdf",
		Title:       "Doc " + id,
		FilePath:    "/uploads/" + id + ".pdf",
		ContentHash: hash,
		Pages:       3,
		Words:       1200,
		Sentences:   80,
		Tokens:      1596,
		CreatedAt:   created,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(path, testLog())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	created := time.Now().UTC().Truncate(time.Second)
	want := testMeta("doc-a", "hash-a", created)
	if err := s.Put(ctx, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "doc-a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil for a stored document")
	}
	if got.Filename != want.Filename || got.Title != want.Title ||
		got.FilePath != want.FilePath || got.ContentHash != want.ContentHash {
		t.Errorf("Get = %+v, want %+v", got, want)
	}
	if got.Pages != 3 || got.Words != 1200 || got.Sentences != 80 || got.Tokens != 1596 {
		t.Errorf("counts did not survive the round trip: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestGetMissing(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"), testLog())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	got, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Errorf("Get = %+v, want nil for an unknown id", got)
	}
}

func TestFindByHash(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"), testLog())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)
	if err := s.Put(ctx, testMeta("doc-a", "shared-hash", now)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.FindByHash(ctx, "shared-hash")
	if err != nil {
		t.Fatalf("FindByHash: %v", err)
	}
	if got == nil || got.ID != "doc-a" {
		t.Errorf("FindByHash = %+v, want doc-a", got)
	}

	miss, err := s.FindByHash(ctx, "unseen-hash")
	if err != nil {
		t.Fatalf("FindByHash: %v", err)
	}
	if miss != nil {
		t.Errorf("FindByHash = %+v, want nil for an unseen hash", miss)
	}
}

func TestListNewestFirst(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"), testLog())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)
	if err := s.Put(ctx, testMeta("older", "h1", base.Add(-time.Hour))); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, testMeta("newer", "h2", base)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	docs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("List returned %d documents, want 2", len(docs))
	}
	if docs[0].ID != "newer" || docs[1].ID != "older" {
		t.Errorf("List order = [%s %s], want newest first", docs[0].ID, docs[1].ID)
	}
}

func TestDelete(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"), testLog())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.Put(ctx, testMeta("doc-a", "h", time.Now().UTC())); err != nil {
		t.Fatalf("Put: %v", err)
	}

	existed, err := s.Delete(ctx, "doc-a")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !existed {
		t.Error("Delete reported no row for a stored document")
	}

	got, err := s.Get(ctx, "doc-a")
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if got != nil {
		t.Errorf("document survived deletion: %+v", got)
	}

	existed, err = s.Delete(ctx, "doc-a")
	if err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if existed {
		t.Error("second Delete reported a row")
	}
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	s, err := Open(path, testLog())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ctx := context.Background()
	if err := s.Put(ctx, testMeta("doc-a", "h", time.Now().UTC().Truncate(time.Second))); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path, testLog())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Get(ctx, "doc-a")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if got == nil {
		t.Error("document missing after reopen")
	}
}
