package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Document is a parsed source ready for chunking. SourceURL is the natural
// key; two parses of the same location collide on it at insert time.
type Document struct {
	ID        string
	SourceURL string
	Title     string
	Language  string
	Checksum  string
	Content   string
}

type Parser struct {
	// Language tag recorded on every parsed document
	Language string
}

func NewParser(language string) *Parser {
	return &Parser{Language: language}
}

// ParseFile reads a cleaned .txt file into a Document. The file path becomes
// the source URL under the file scheme.
func (p *Parser) ParseFile(path string) (*Document, error) {
	path = strings.TrimSpace(path)

	ext := filepath.Ext(path)
	if ext != ".txt" {
		return nil, fmt.Errorf("unsupported file type %s (expected .txt)", ext)
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	if len(bytes) == 0 {
		return nil, fmt.Errorf("file %s is empty", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	filename := filepath.Base(path)
	title := strings.TrimSuffix(filename, ext)

	return p.Parse("file://"+absPath, title, string(bytes)), nil
}

// Parse builds a Document from already-fetched content.
func (p *Parser) Parse(sourceURL, title, content string) *Document {
	checksum := sha256.Sum256([]byte(content))

	return &Document{
		ID:        uuid.New().String(),
		SourceURL: sourceURL,
		Title:     title,
		Language:  p.Language,
		Checksum:  hex.EncodeToString(checksum[:]),
		Content:   content,
	}
}
