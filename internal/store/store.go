// Package store loads Bible texts from a data directory and serves verse
// lookups over them. Supported sources are JSON (plain, gzip, or xz
// compressed) and Zefania XML (plain or xz compressed). The store is
// read-only once loaded, so every operation is safe for concurrent use
// without locking.
package store

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/Scriptura/core/errors"
	"github.com/FocuswithJustin/Scriptura/internal/logging"
	"github.com/FocuswithJustin/Scriptura/internal/validation"
)

// Options controls loading.
type Options struct {
	// DefaultVersion selects the version Resolve returns for an empty
	// name. When unset the first loaded version (sorted by file name)
	// becomes the default.
	DefaultVersion string

	// MaxFileSize caps individual data files. Zero applies
	// validation.MaxFileSize.
	MaxFileSize int64
}

// Store is the version registry.
type Store struct {
	versions   map[string]*Version // lowercased key -> version
	order      []string            // keys in load order
	defaultKey string
}

// Info is one entry of the versions listing.
type Info struct {
	Key string `json:"key"`
	Meta
	Hash    string `json:"hash"`
	Books   int    `json:"books"`
	Verses  int    `json:"verses"`
	Default bool   `json:"default,omitempty"`
}

// Stats summarizes the loaded store for the status endpoint.
type Stats struct {
	Versions       int    `json:"versions"`
	Verses         int    `json:"verses"`
	DefaultVersion string `json:"default_version"`
}

// Load reads every recognized data file in dir. Files that fail to load are
// logged and skipped; loading fails only when dir is unreadable, no version
// loads at all, or the configured default version is absent.
func Load(dir string, opts Options) (*Store, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading data directory: %w", err)
	}
	maxSize := opts.MaxFileSize
	if maxSize == 0 {
		maxSize = validation.MaxFileSize
	}

	s := &Store{versions: make(map[string]*Version)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		kind := sourceKind(name)
		if kind == srcUnknown {
			continue
		}
		if err := validation.ValidateFilename(name); err != nil {
			logging.Warn("skipping data file", "file", name, "error", err)
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logging.Warn("skipping data file", "file", name, "error", err)
			continue
		}
		if info.Size() > maxSize {
			logging.Warn("skipping oversized data file", "file", name, "size", info.Size(), "max", maxSize)
			continue
		}

		v, err := loadFile(filepath.Join(dir, name), kind)
		if err != nil {
			logging.Error("failed to load version", "file", name, "error", err)
			continue
		}
		key := strings.ToLower(versionKey(name))
		if _, dup := s.versions[key]; dup {
			logging.Warn("duplicate version key, keeping the first", "key", key, "file", name)
			continue
		}
		s.versions[key] = v
		v.key = key
		s.order = append(s.order, key)
		logging.VersionLoaded(key, v.BookCount(), v.VerseCount(),
			"name", v.meta.Name, "hash", v.hash)
	}

	if len(s.order) == 0 {
		return nil, fmt.Errorf("no versions loaded from %s", dir)
	}

	if opts.DefaultVersion != "" {
		v, err := s.Resolve(opts.DefaultVersion)
		if err != nil {
			return nil, fmt.Errorf("default version: %w", err)
		}
		s.defaultKey = v.key
	} else {
		s.defaultKey = s.order[0]
	}
	return s, nil
}

// Resolve finds a version by registry key, shortname, module, or full name,
// case-insensitively. An empty name resolves to the default version.
func (s *Store) Resolve(name string) (*Version, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return s.versions[s.defaultKey], nil
	}
	if v, ok := s.versions[want]; ok {
		return v, nil
	}
	for _, key := range s.order {
		v := s.versions[key]
		if strings.ToLower(v.meta.ShortName) == want ||
			strings.ToLower(v.meta.Module) == want ||
			strings.ToLower(v.meta.Name) == want {
			return v, nil
		}
	}
	return nil, errors.NewNotFound("version", name)
}

// Default returns the default version.
func (s *Store) Default() *Version {
	return s.versions[s.defaultKey]
}

// Versions lists every loaded version in load order.
func (s *Store) Versions() []Info {
	out := make([]Info, 0, len(s.order))
	for _, key := range s.order {
		v := s.versions[key]
		out = append(out, Info{
			Key:     key,
			Meta:    v.meta,
			Hash:    v.hash,
			Books:   v.BookCount(),
			Verses:  v.VerseCount(),
			Default: key == s.defaultKey,
		})
	}
	return out
}

// Stats summarizes the store.
func (s *Store) Stats() Stats {
	total := 0
	for _, v := range s.versions {
		total += v.VerseCount()
	}
	return Stats{Versions: len(s.versions), Verses: total, DefaultVersion: s.defaultKey}
}

type srcKind int

const (
	srcUnknown srcKind = iota
	srcJSON
	srcJSONGz
	srcJSONXz
	srcXML
	srcXMLXz
)

func sourceKind(name string) srcKind {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return srcJSON
	case strings.HasSuffix(lower, ".json.gz"):
		return srcJSONGz
	case strings.HasSuffix(lower, ".json.xz"):
		return srcJSONXz
	case strings.HasSuffix(lower, ".xml"):
		return srcXML
	case strings.HasSuffix(lower, ".xml.xz"):
		return srcXMLXz
	default:
		return srcUnknown
	}
}

// versionKey derives the registry key from a file name by stripping the
// recognized extensions: "kjv.json.xz" -> "kjv".
func versionKey(name string) string {
	for _, suffix := range []string{".xz", ".gz", ".json", ".xml"} {
		name = strings.TrimSuffix(name, suffix)
	}
	return name
}

// loadFile reads, hashes, decompresses, and parses one data file.
func loadFile(path string, kind srcKind) (*Version, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if _, err := validation.ValidateFileType(bytes.NewReader(raw), filepath.Base(path)); err != nil {
		return nil, err
	}
	sum := blake3.Sum256(raw)
	hash := hex.EncodeToString(sum[:])

	data, err := decompress(raw, kind)
	if err != nil {
		return nil, err
	}

	var meta Meta
	var records []record
	switch kind {
	case srcJSON, srcJSONGz, srcJSONXz:
		meta, records, err = parseJSON(data)
	case srcXML, srcXMLXz:
		meta, records, err = parseZefania(data)
	default:
		err = fmt.Errorf("unrecognized data file %s", path)
	}
	if err != nil {
		return nil, err
	}

	v, dropped := buildVersion("", meta, hash, records)
	if dropped > 0 {
		logging.Warn("dropped unresolvable verses", "file", filepath.Base(path), "count", dropped)
	}
	if v.VerseCount() == 0 {
		return nil, fmt.Errorf("no usable verses in %s", path)
	}
	return v, nil
}
