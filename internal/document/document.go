package document

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"
)

// Document holds a loaded rules document with derived metadata.
type Document struct {
	Path      string
	Hash      string // "sha256:<hex>"
	Raw       string // original content
	LineCount int
}

// Load reads a rules document from disk once and computes its hash and
// line count. The document is never re-read after this point.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	raw := string(data)
	sum := sha256.Sum256(data)

	return &Document{
		Path:      path,
		Hash:      fmt.Sprintf("sha256:%x", sum),
		Raw:       raw,
		LineCount: countLines(raw),
	}, nil
}

// countLines counts the lines of content. A trailing newline does not
// produce a spurious final empty line.
func countLines(content string) int {
	if content == "" {
		return 0
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		return len(lines) - 1
	}
	return len(lines)
}
