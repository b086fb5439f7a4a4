package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveAndRemove(t *testing.T) {
	store := NewLocalStore(t.TempDir(), 0, []string{".pdf", "jpg"}, nil)

	relPath, err := store.Save(DealDir(7), "receipt.PDF", []byte("content"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(relPath, filepath.Join("deal_7")) {
		t.Fatalf("expected file under deal_7, got %q", relPath)
	}
	if !strings.HasSuffix(relPath, ".pdf") {
		t.Fatalf("expected lowered extension, got %q", relPath)
	}

	absPath, err := store.Open(relPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil || string(data) != "content" {
		t.Fatalf("stored content mismatch: %q %v", data, err)
	}

	if err := store.Remove(relPath); err != nil {
		t.Fatalf("remove: %v", err)
	}
	// Removing twice is fine.
	if err := store.Remove(relPath); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if _, err := store.Open(relPath); err == nil {
		t.Fatalf("expected open to fail after remove")
	}
}

func TestSaveRejectsBadUploads(t *testing.T) {
	store := NewLocalStore(t.TempDir(), 4, []string{".pdf"}, nil)

	if _, err := store.Save(DealDir(1), "malware.exe", []byte("x")); !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("expected ErrUnsupportedFile, got %v", err)
	}
	if _, err := store.Save(DealDir(1), "big.pdf", []byte("12345")); !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestSaveScreensContentType(t *testing.T) {
	store := NewLocalStore(t.TempDir(), 0, nil, []string{"application/pdf"})

	if _, err := store.Save(DealDir(1), "real.pdf", []byte("%PDF-1.4 content")); err != nil {
		t.Fatalf("save pdf: %v", err)
	}
	if _, err := store.Save(DealDir(1), "fake.pdf", []byte("just text")); !errors.Is(err, ErrUnsupportedFile) {
		t.Fatalf("expected ErrUnsupportedFile for mismatched content, got %v", err)
	}
}

func TestResolveRejectsEscapes(t *testing.T) {
	store := NewLocalStore(t.TempDir(), 0, nil, nil)

	for _, path := range []string{"../etc/passwd", "/etc/passwd", "."} {
		if _, err := store.Open(path); err == nil {
			t.Fatalf("expected %q to be rejected", path)
		}
	}
}

func TestRemoveDir(t *testing.T) {
	store := NewLocalStore(t.TempDir(), 0, nil, nil)

	relPath, err := store.Save(PaymentDir(3, 9), "a.txt", []byte("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.RemoveDir(DealDir(3)); err != nil {
		t.Fatalf("remove dir: %v", err)
	}
	if _, err := store.Open(relPath); err == nil {
		t.Fatalf("expected file gone with its deal directory")
	}
}
