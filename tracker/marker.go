package tracker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MarkerStore keeps one small file per calendar date holding the effective
// seconds accumulated that day.
type MarkerStore struct {
	dir    string
	prefix string
}

func NewMarkerStore(dir, prefix string) *MarkerStore {
	if prefix == "" {
		prefix = ".elapsed_"
	}
	return &MarkerStore{dir: dir, prefix: prefix}
}

// Path returns the marker file for a YYYY-MM-DD date.
func (m *MarkerStore) Path(date string) string {
	return filepath.Join(m.dir, m.prefix+date+".txt")
}

// Load returns the stored seconds for date. A missing, unreadable or
// malformed marker counts as zero.
func (m *MarkerStore) Load(date string) int64 {
	data, err := os.ReadFile(m.Path(date))
	if err != nil {
		return 0
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func (m *MarkerStore) Save(date string, secs int64) error {
	if secs < 0 {
		return errors.New("elapsed seconds must be non-negative")
	}
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("create marker dir: %w", err)
	}
	if err := os.WriteFile(m.Path(date), []byte(strconv.FormatInt(secs, 10)), 0o644); err != nil {
		return fmt.Errorf("write marker: %w", err)
	}
	return nil
}
