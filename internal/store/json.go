package store

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// jsonBible is the on-disk JSON shape: a meta block plus a flat verse list.
type jsonBible struct {
	Meta   Meta        `json:"meta"`
	Verses []jsonVerse `json:"verses"`
}

type jsonVerse struct {
	BookName string `json:"book_name"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse"`
	Text     string `json:"text"`
}

func decompress(raw []byte, kind srcKind) ([]byte, error) {
	switch kind {
	case srcJSONXz, srcXMLXz:
		xzReader, err := xz.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("xz decompress: %w", err)
		}
		return io.ReadAll(xzReader)
	case srcJSONGz:
		gzReader, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("gzip decompress: %w", err)
		}
		defer gzReader.Close()
		return io.ReadAll(gzReader)
	default:
		return raw, nil
	}
}

func parseJSON(data []byte) (Meta, []record, error) {
	var doc jsonBible
	if err := json.Unmarshal(data, &doc); err != nil {
		return Meta{}, nil, fmt.Errorf("parsing JSON bible: %w", err)
	}
	records := make([]record, 0, len(doc.Verses))
	for _, v := range doc.Verses {
		records = append(records, record{book: v.BookName, chapter: v.Chapter, verse: v.Verse, text: v.Text})
	}
	return doc.Meta, records, nil
}
