package ingestion

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bai-viet.txt")
	content := "Hà Nội là thủ đô của Việt Nam."
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	parser := NewParser("vi")
	doc, err := parser.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	if doc.Content != content {
		t.Errorf("content mismatch: got %q", doc.Content)
	}
	if doc.Title != "bai-viet" {
		t.Errorf("expected title 'bai-viet', got %q", doc.Title)
	}
	if doc.Language != "vi" {
		t.Errorf("expected language 'vi', got %q", doc.Language)
	}
	if !strings.HasPrefix(doc.SourceURL, "file://") {
		t.Errorf("expected file:// source URL, got %q", doc.SourceURL)
	}
	if len(doc.Checksum) != 64 {
		t.Errorf("expected hex sha-256 checksum, got %q", doc.Checksum)
	}
	if doc.ID == "" {
		t.Error("expected a generated document id")
	}
}

func TestParseFile_SameContentSameChecksum(t *testing.T) {
	parser := NewParser("vi")

	first := parser.Parse("https://example.vn/a", "a", "nội dung giống nhau")
	second := parser.Parse("https://example.vn/b", "b", "nội dung giống nhau")

	if first.Checksum != second.Checksum {
		t.Error("identical content should produce identical checksums")
	}
	if first.ID == second.ID {
		t.Error("each parse should generate a fresh document id")
	}
}

func TestParseFile_RejectsUnsupportedExtension(t *testing.T) {
	parser := NewParser("vi")

	if _, err := parser.ParseFile("document.pdf"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestParseFile_RejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	parser := NewParser("vi")
	if _, err := parser.ParseFile(path); err == nil {
		t.Fatal("expected error for empty file")
	}
}
