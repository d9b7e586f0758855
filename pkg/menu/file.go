package menu

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// ReadFile reads and parses the data file at path.
func ReadFile(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu file: %w", err)
	}
	doc, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	log.Debugf("Parsed %d menu items from %s", doc.Len(), path)
	return doc, nil
}

// WriteFile writes d to path in one call, keeping the file mode of an
// existing file.
func WriteFile(path string, d *Document) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, d.Bytes(), mode); err != nil {
		return fmt.Errorf("write menu file: %w", err)
	}
	return nil
}
