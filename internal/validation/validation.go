// Package validation screens user-supplied filenames, paths, references,
// and version payloads before they reach the store or the parser.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"
)

// Limits on user-controlled input. Filename and path caps follow common
// filesystem bounds; the reference and batch caps bound parser work per
// request.
const (
	MaxFileSize          = 256 << 20
	MaxFilenameLength    = 255
	MaxPathLength        = 4096
	MaxReferenceLength   = 512
	MaxVersionNameLength = 128
	MaxBatchReferences   = 256
)

// Errors surfaced to callers, matched with errors.Is.
var (
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrPathTooLong      = errors.New("path too long")
	ErrFilenameTooLong  = errors.New("filename too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrInvalidReference = errors.New("invalid reference")
	ErrInvalidVersion   = errors.New("invalid version name")
)

// ValidateFilename rejects names that could escape a directory or be
// mistaken for something else: separators, control characters, a leading
// hyphen, and the reserved "." and ".." entries.
func ValidateFilename(filename string) error {
	switch {
	case filename == "":
		return ErrInvalidFilename
	case len(filename) > MaxFilenameLength:
		return ErrFilenameTooLong
	case filename == "." || filename == "..":
		return fmt.Errorf("%w: reserved name", ErrInvalidFilename)
	case strings.ContainsAny(filename, `/\`):
		return fmt.Errorf("%w: path separator", ErrInvalidFilename)
	case strings.ContainsFunc(filename, unicode.IsControl):
		return fmt.Errorf("%w: control character", ErrInvalidFilename)
	case strings.HasPrefix(filename, "-"):
		return fmt.Errorf("%w: leading hyphen", ErrInvalidFilename)
	}
	return nil
}

// ValidatePath applies length and character limits to a path. It does not
// resolve the path against a base directory; callers that open files still
// go through the OS checks.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.ContainsFunc(path, unicode.IsControl) {
		return fmt.Errorf("%w: control character", ErrInvalidCharacter)
	}
	return nil
}

// ValidateReference checks transport-level sanity of a scripture reference
// before it reaches the parser. The parser owns the syntax rules; this only
// rejects input no legitimate reference could contain.
func ValidateReference(reference string) error {
	if strings.TrimSpace(reference) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidReference)
	}
	if len(reference) > MaxReferenceLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidReference, MaxReferenceLength)
	}
	if strings.ContainsFunc(reference, unicode.IsControl) {
		return fmt.Errorf("%w: control character", ErrInvalidReference)
	}
	return nil
}

// ValidateVersionName checks a user-supplied version name or key.
// An empty name is valid and means the default version.
func ValidateVersionName(name string) error {
	if name == "" {
		return nil
	}
	if len(name) > MaxVersionNameLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidVersion, MaxVersionNameLength)
	}
	if strings.ContainsFunc(name, unicode.IsControl) {
		return fmt.Errorf("%w: control character", ErrInvalidVersion)
	}
	return nil
}

// FileType identifies a payload format accepted by the store.
type FileType string

const (
	FileTypeGzip    FileType = "gzip"
	FileTypeXZ      FileType = "xz"
	FileTypeSQLite  FileType = "sqlite"
	FileTypeXML     FileType = "xml"
	FileTypeJSON    FileType = "json"
	FileTypeUnknown FileType = "unknown"
)

// magicPrefixes maps leading byte signatures to the formats the store
// accepts. XML and JSON have no signature and are handled by the text check.
var magicPrefixes = []struct {
	prefix []byte
	kind   FileType
}{
	{[]byte{0x1f, 0x8b}, FileTypeGzip},
	{[]byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}, FileTypeXZ},
	{[]byte("SQLite format 3"), FileTypeSQLite},
}

// ValidateFileType reads the leading bytes of a payload and checks them
// against the type its filename extension claims. Returns the settled type,
// or an error when signature and extension disagree.
func ValidateFileType(reader io.Reader, filename string) (FileType, error) {
	hdr := make([]byte, 512)
	n, err := io.ReadFull(reader, hdr)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return FileTypeUnknown, fmt.Errorf("failed to read file header: %w", err)
	}
	hdr = hdr[:n]

	detected := detectFileTypeFromMagic(hdr)
	expected := detectFileTypeFromExtension(filename)

	switch {
	case detected == expected:
		return detected, nil
	case detected == FileTypeUnknown:
		// No signature recognized. Text formats just have to look like
		// text; anything else passes on the extension's word.
		if (expected == FileTypeXML || expected == FileTypeJSON) && !isLikelyText(hdr) {
			return FileTypeUnknown, fmt.Errorf("file type mismatch: %s extension with non-text content", expected)
		}
		return expected, nil
	case expected == FileTypeUnknown:
		return detected, nil
	}
	return FileTypeUnknown, fmt.Errorf("file type mismatch: extension says %s, content says %s", expected, detected)
}

func detectFileTypeFromMagic(buf []byte) FileType {
	for _, sig := range magicPrefixes {
		if bytes.HasPrefix(buf, sig.prefix) {
			return sig.kind
		}
	}
	return FileTypeUnknown
}

func detectFileTypeFromExtension(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		return FileTypeGzip
	case ".xz":
		return FileTypeXZ
	case ".sqlite", ".sqlite3", ".db":
		return FileTypeSQLite
	case ".xml":
		return FileTypeXML
	case ".json":
		return FileTypeJSON
	}
	return FileTypeUnknown
}

// isLikelyText reports whether buf reads as text. A NUL byte disqualifies
// outright; otherwise at least 95% of the low bytes must be printable.
// Bytes at 0x7f and above belong to UTF-8 sequences and count toward
// neither side.
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 || bytes.IndexByte(buf, 0) >= 0 {
		return false
	}
	printable, control := 0, 0
	for _, b := range buf {
		switch {
		case b == '\t' || b == '\n' || b == '\r':
			printable++
		case b >= 0x20 && b <= 0x7e:
			printable++
		case b < 0x20:
			control++
		}
	}
	return printable > 0 && float64(printable)/float64(printable+control) > 0.95
}
