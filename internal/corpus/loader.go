package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadDir reads supplemental documents from dir. Plain text, markdown and
// PDF files are supported; anything else is skipped. Files are loaded in
// name order so repeated ingestions see the corpus in the same order.
// A missing directory is not an error: the seed corpus stands alone.
func LoadDir(dir string) ([]Document, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read documents dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var docs []Document
	for _, name := range names {
		path := filepath.Join(dir, name)
		var text string
		switch strings.ToLower(filepath.Ext(name)) {
		case ".txt", ".md":
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", name, err)
			}
			text = string(data)
		case ".pdf":
			text, err = extractPDFText(path)
			if err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", name, err)
			}
		default:
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, Document{ID: name, Text: text})
	}
	return docs, nil
}
