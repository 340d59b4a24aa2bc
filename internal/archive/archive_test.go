package archive

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestArchiveFile(t *testing.T) {
	tmpDir := t.TempDir()

	cardsFile := filepath.Join(tmpDir, "sentences.csv")
	if err := os.WriteFile(cardsFile, []byte("front,back\n"), 0644); err != nil {
		t.Fatalf("Failed to create cards file: %v", err)
	}

	archived, err := ArchiveFile(cardsFile)
	if err != nil {
		t.Fatalf("ArchiveFile failed: %v", err)
	}

	if _, err := os.Stat(cardsFile); !os.IsNotExist(err) {
		t.Error("Cards file still exists after archiving")
	}

	if filepath.Dir(archived) != filepath.Join(tmpDir, "archive") {
		t.Errorf("Archived into unexpected directory: %s", archived)
	}

	name := filepath.Base(archived)
	if !strings.HasPrefix(name, "sentences-") || !strings.HasSuffix(name, ".csv") {
		t.Errorf("Unexpected archive name: %s", name)
	}

	data, err := os.ReadFile(archived)
	if err != nil {
		t.Fatalf("Failed to read archived file: %v", err)
	}
	if string(data) != "front,back\n" {
		t.Errorf("Archived content changed: %q", data)
	}
}

func TestArchiveFile_NonExistent(t *testing.T) {
	archived, err := ArchiveFile(filepath.Join(t.TempDir(), "missing.csv"))
	if err != nil {
		t.Errorf("Expected no error for a missing file, got: %v", err)
	}
	if archived != "" {
		t.Errorf("Expected empty path, got %s", archived)
	}
}

func TestArchiveFile_Directory(t *testing.T) {
	if _, err := ArchiveFile(t.TempDir()); err == nil {
		t.Error("Expected error when archiving a directory")
	}
}

func TestArchiveFile_MultipleArchives(t *testing.T) {
	tmpDir := t.TempDir()
	cardsFile := filepath.Join(tmpDir, "present.csv")

	var paths []string
	for i := 0; i < 2; i++ {
		if err := os.WriteFile(cardsFile, []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create cards file: %v", err)
		}
		archived, err := ArchiveFile(cardsFile)
		if err != nil {
			t.Fatalf("ArchiveFile failed on iteration %d: %v", i, err)
		}
		paths = append(paths, archived)
		time.Sleep(10 * time.Millisecond)
	}

	if paths[0] == paths[1] {
		t.Errorf("Both archives got the same path: %s", paths[0])
	}

	entries, err := os.ReadDir(filepath.Join(tmpDir, "archive"))
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 archived files, got %d", len(entries))
	}
}
