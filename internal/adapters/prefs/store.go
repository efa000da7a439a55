// Package prefs implements the persisted preference store and the search
// path inputs derived from it.
package prefs

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/symres/internal/core/domain"
	"go.trai.ch/zerr"
)

type document struct {
	XMLName xml.Name `xml:"Preferences"`
	Entries []entry  `xml:"Entry"`
}

type entry struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

// Store implements ports.PreferenceStore as an XML file of key/value entries.
// The whole file is rewritten on every Set.
type Store struct {
	path string

	mu     sync.RWMutex
	values map[string]string
}

// Open loads the store at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the in-memory entries with the file's current content.
// On error the previous entries are kept.
func (s *Store) Reload() error {
	values, err := readDocument(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.values = values
	s.mu.Unlock()
	return nil
}

func readDocument(path string) (map[string]string, error) {
	values := make(map[string]string)

	//nolint:gosec // path is the configured preferences file
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return values, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPrefsReadFailed.Error()), "path", path)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return values, nil
	}

	var doc document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrPrefsParseFailed.Error()), "path", path)
	}
	for _, e := range doc.Entries {
		values[e.Key] = e.Value
	}
	return values, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Get returns the stored value and whether it was present.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key and persists the store. An empty value removes the key.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.values[key]
	if value == "" {
		delete(s.values, key)
	} else {
		s.values[key] = value
	}

	if err := s.flush(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

// flush writes the entries sorted by key to a temporary file and renames it
// over the store, so readers see either the old or the new document.
func (s *Store) flush() error {
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	doc := document{Entries: make([]entry, 0, len(keys))}
	for _, k := range keys {
		doc.Entries = append(doc.Entries, entry{Key: k, Value: s.values[k]})
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrPrefsWriteFailed.Error())
	}
	data = append([]byte(xml.Header), data...)
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPrefsWriteFailed.Error()), "path", s.path)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*"+domain.TempSuffix)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPrefsWriteFailed.Error()), "path", s.path)
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrPrefsWriteFailed.Error()), "path", s.path)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrPrefsWriteFailed.Error()), "path", s.path)
	}
	return nil
}
