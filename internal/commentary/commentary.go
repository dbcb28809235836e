// Package commentary loads verse commentary from JSON files and serves
// chapter and verse lookups. Commentary is optional: a missing directory
// yields an empty store, not an error.
package commentary

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/Scriptura/core/canon"
	"github.com/FocuswithJustin/Scriptura/core/errors"
	"github.com/FocuswithJustin/Scriptura/internal/logging"
)

// document is the on-disk JSON shape. Chapter and verse keys are strings,
// matching how the commentary files are authored.
type document struct {
	Meta  documentMeta            `json:"meta"`
	Books map[string]documentBook `json:"books"`
}

type documentMeta struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type documentBook struct {
	ID       string                       `json:"id,omitempty"`
	Chapters map[string]map[string]string `json:"chapters"`
}

// Source is one loaded commentary, keyed by canonical book name.
type Source struct {
	id    string
	title string
	books map[string]map[int]map[int]string
}

// Info describes a loaded source for listings.
type Info struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Books int    `json:"books"`
}

// Store holds every loaded commentary source.
type Store struct {
	sources map[string]*Source
	order   []string
}

// Load reads every *.json file in dir. Files that fail to parse are logged
// and skipped. A missing directory yields an empty store.
func Load(dir string) (*Store, error) {
	s := &Store{sources: make(map[string]*Source)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Warn("commentary directory not found", "dir", dir)
			return s, nil
		}
		return nil, fmt.Errorf("reading commentary directory: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".json") {
			continue
		}
		src, err := loadSource(filepath.Join(dir, name))
		if err != nil {
			logging.Warn("failed to load commentary", "file", name, "error", err)
			continue
		}
		if src.id == "" {
			src.id = strings.TrimSuffix(name, filepath.Ext(name))
		}
		key := strings.ToLower(src.id)
		if _, dup := s.sources[key]; dup {
			logging.Warn("duplicate commentary id, keeping the first", "id", key, "file", name)
			continue
		}
		s.sources[key] = src
		s.order = append(s.order, key)
		logging.Info("loaded commentary", "id", key, "books", len(src.books))
	}
	return s, nil
}

func loadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing commentary JSON: %w", err)
	}

	src := &Source{
		id:    doc.Meta.ID,
		title: doc.Meta.Title,
		books: make(map[string]map[int]map[int]string),
	}
	for rawName, book := range doc.Books {
		b, ok := canon.Resolve(rawName)
		if !ok && book.ID != "" {
			b, ok = canon.Resolve(book.ID)
		}
		if !ok {
			logging.Warn("skipping unknown commentary book", "file", filepath.Base(path), "book", rawName)
			continue
		}
		chapters := make(map[int]map[int]string, len(book.Chapters))
		for chKey, verses := range book.Chapters {
			ch, err := strconv.Atoi(chKey)
			if err != nil || ch < 1 {
				continue
			}
			notes := make(map[int]string, len(verses))
			for vKey, note := range verses {
				v, err := strconv.Atoi(vKey)
				if err != nil || v < 1 {
					continue
				}
				notes[v] = note
			}
			if len(notes) > 0 {
				chapters[ch] = notes
			}
		}
		if len(chapters) > 0 {
			src.books[b.Name] = chapters
		}
	}
	if len(src.books) == 0 {
		return nil, fmt.Errorf("no usable books in %s", filepath.Base(path))
	}
	return src, nil
}

// Empty reports whether any source loaded.
func (s *Store) Empty() bool {
	return len(s.order) == 0
}

// Sources lists the loaded commentaries.
func (s *Store) Sources() []Info {
	out := make([]Info, 0, len(s.order))
	for _, key := range s.order {
		src := s.sources[key]
		out = append(out, Info{ID: key, Title: src.title, Books: len(src.books)})
	}
	return out
}

// source resolves a source id; an empty id selects the first loaded source.
func (s *Store) source(id string) (*Source, error) {
	if s.Empty() {
		return nil, errors.NewNotFound("commentary", id)
	}
	if id == "" {
		return s.sources[s.order[0]], nil
	}
	src, ok := s.sources[strings.ToLower(id)]
	if !ok {
		return nil, errors.NewNotFound("commentary", id)
	}
	return src, nil
}

// Chapter returns every note of one chapter keyed by verse number.
func (s *Store) Chapter(sourceID, book string, chapter int) (map[int]string, error) {
	src, err := s.source(sourceID)
	if err != nil {
		return nil, err
	}
	b, ok := canon.Resolve(book)
	if !ok {
		return nil, errors.NewUnknownBook(book)
	}
	notes, ok := src.books[b.Name][chapter]
	if !ok {
		return nil, errors.NewNotFound("commentary chapter", fmt.Sprintf("%s %d", b.Name, chapter))
	}
	out := make(map[int]string, len(notes))
	for v, note := range notes {
		out[v] = note
	}
	return out, nil
}

// Note returns the note for one verse.
func (s *Store) Note(sourceID, book string, chapter, verse int) (string, error) {
	src, err := s.source(sourceID)
	if err != nil {
		return "", err
	}
	b, ok := canon.Resolve(book)
	if !ok {
		return "", errors.NewUnknownBook(book)
	}
	note, ok := src.books[b.Name][chapter][verse]
	if !ok {
		return "", errors.NewNotFound("commentary note", fmt.Sprintf("%s %d:%d", b.Name, chapter, verse))
	}
	return note, nil
}
